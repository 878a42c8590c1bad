package model

// Mutation inputs. Pointer fields are optional: nil means the caller did not
// supply the field, which for partial updates means "leave unchanged" — with
// the one documented exception of UpdateShelfBookRating, where a nil rating
// means "clear".

// CreateUserInput creates the caller's profile
type CreateUserInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
}

// AddBookToShelfInput fully replaces the caller's shelf entry for a book
type AddBookToShelfInput struct {
	BookID         string    `json:"bookId" validate:"required"`
	Shelf          string    `json:"shelf" validate:"required"`
	Rating         *int      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	CustomShelfIDs *[]string `json:"customShelfIds,omitempty"`
	StartedAt      *string   `json:"startedAt,omitempty"`
	FinishedAt     *string   `json:"finishedAt,omitempty"`
	PagesRead      *int      `json:"pagesRead,omitempty" validate:"omitempty,min=0"`
}

// UpdateBookShelfInput partially updates the caller's shelf entry: only the
// supplied optional fields are written.
type UpdateBookShelfInput struct {
	BookID         string    `json:"bookId" validate:"required"`
	Shelf          string    `json:"shelf" validate:"required"`
	Rating         *int      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	CustomShelfIDs *[]string `json:"customShelfIds,omitempty"`
	StartedAt      *string   `json:"startedAt,omitempty"`
	FinishedAt     *string   `json:"finishedAt,omitempty"`
	PagesRead      *int      `json:"pagesRead,omitempty" validate:"omitempty,min=0"`
}

// CreateReviewInput posts a review of a book
type CreateReviewInput struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// CreateCustomShelfInput creates a named custom shelf
type CreateCustomShelfInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateCustomShelfInput renames a custom shelf and optionally replaces its
// description
type UpdateCustomShelfInput struct {
	ShelfID     string  `json:"shelfId" validate:"required"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// LendBookInput records a new loan
type LendBookInput struct {
	BookID       string `json:"bookId" validate:"required"`
	BorrowerName string `json:"borrowerName" validate:"required,min=1,max=200"`
}

// UpdateLoanInput corrects the borrower name on an existing loan
type UpdateLoanInput struct {
	LoanID       string `json:"loanId" validate:"required"`
	BorrowerName string `json:"borrowerName" validate:"required,min=1,max=200"`
}

// CacheBookInput writes an entry into the book metadata cache
type CacheBookInput struct {
	ISBN      string   `json:"isbn" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Authors   []string `json:"authors,omitempty"`
	CoverURL  string   `json:"coverUrl,omitempty" validate:"omitempty,url"`
	PageCount *int     `json:"pageCount,omitempty" validate:"omitempty,min=1"`
}

// RecordActivityInput appends an event to the caller's activity feed
type RecordActivityInput struct {
	EventType string         `json:"eventType" validate:"required"`
	Payload   map[string]any `json:"payload,omitempty"`
}
