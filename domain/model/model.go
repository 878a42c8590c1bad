// Package model defines the reading-tracker domain entities and the typed
// inputs for every mutation. Field names mirror the stored attribute names.
package model

// Shelf status labels for a user-book entry
const (
	ShelfWantToRead = "WANT_TO_READ"
	ShelfReading    = "READING"
	ShelfRead       = "READ"
)

// Friend edge statuses
const (
	FriendStatusPending  = "PENDING"
	FriendStatusAccepted = "ACCEPTED"
)

// User is a registered reader profile
type User struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Book is a cached copy of external book metadata, keyed by ISBN. Cache
// entries expire; consumers must tolerate absence.
type Book struct {
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	CoverURL  string   `json:"coverUrl,omitempty"`
	PageCount int      `json:"pageCount,omitempty"`
	TTL       int64    `json:"ttl,omitempty"`
}

// UserBook is one shelf entry: the association between a user and a book.
// The (userId, bookId) key is unique; re-adding a book overwrites the entry.
type UserBook struct {
	UserID         string   `json:"userId"`
	BookID         string   `json:"bookId"`
	Shelf          string   `json:"shelf"`
	CustomShelfIDs []string `json:"customShelfIds,omitempty"`
	Rating         int      `json:"rating,omitempty"`
	StartedAt      string   `json:"startedAt,omitempty"`
	FinishedAt     string   `json:"finishedAt,omitempty"`
	PagesRead      int      `json:"pagesRead,omitempty"`
	AddedAt        string   `json:"addedAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// Review is one user's review of a book
type Review struct {
	BookID    string `json:"bookId"`
	ReviewID  string `json:"reviewId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// Friend is a directed friendship edge from UserID to FriendID
type Friend struct {
	UserID    string `json:"userId"`
	FriendID  string `json:"friendId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Activity is one feed event. Events expire after their retention window.
type Activity struct {
	UserID    string         `json:"userId"`
	Timestamp string         `json:"timestamp"`
	EventType string         `json:"eventType"`
	Payload   map[string]any `json:"payload,omitempty"`
	TTL       int64          `json:"ttl,omitempty"`
}

// ReadingStats holds aggregated counters for one user and period
// (e.g. "2026" or "2026-08")
type ReadingStats struct {
	UserID         string  `json:"userId"`
	Period         string  `json:"period"`
	BooksRead      int     `json:"booksRead"`
	PagesRead      int     `json:"pagesRead"`
	AvgRating      float64 `json:"avgRating,omitempty"`
	ReviewsWritten int     `json:"reviewsWritten,omitempty"`
}

// CustomShelf is a user-defined collection. BookRatings is a sparse map from
// bookId to a shelf-local rating; keys come and go independently of the
// shelf's lifecycle.
type CustomShelf struct {
	UserID      string         `json:"userId"`
	ShelfID     string         `json:"shelfId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	BookRatings map[string]int `json:"bookRatings,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// BookLoan records a physical book lent to someone. ReturnedAt absent means
// the loan is active; once set it is never cleared.
type BookLoan struct {
	UserID       string `json:"userId"`
	LoanID       string `json:"loanId"`
	BookID       string `json:"bookId"`
	BorrowerName string `json:"borrowerName"`
	LentAt       string `json:"lentAt"`
	ReturnedAt   string `json:"returnedAt,omitempty"`
}
