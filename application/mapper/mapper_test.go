package mapper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"betterreads-backend/application/mapper"
	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
	"betterreads-backend/infrastructure/persistence/memory"
	"betterreads-backend/pkg/auth"
	apperrors "betterreads-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTables = ports.Tables{
	Users:         "users",
	Books:         "books",
	UserBooks:     "user-books",
	Reviews:       "reviews",
	Friends:       "friends",
	Activity:      "activity",
	ReadingStats:  "reading-stats",
	CustomShelves: "custom-shelves",
	BookLoans:     "book-loans",
}

// fakeClock advances one second per reading so written timestamps are
// strictly increasing.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestMapper(t *testing.T) (*mapper.Mapper, ports.Store) {
	t.Helper()

	store := memory.NewStore(ports.Schemas(testTables))
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}

	m := mapper.NewMapper(store, testTables, zap.NewNop(),
		mapper.WithClock(clock.Now),
		mapper.WithIDGenerator(newID),
	)
	return m, store
}

func authedCtx(sub string) context.Context {
	return auth.SetUserInContext(context.Background(), &auth.UserContext{Sub: sub})
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestOperationsRejectMissingIdentity(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := context.Background()

	_, err := m.Me(ctx)
	assert.True(t, apperrors.IsUnauthenticated(err))

	_, err = m.CreateUser(ctx, model.CreateUserInput{Email: "a@b.com", DisplayName: "A"})
	assert.True(t, apperrors.IsUnauthenticated(err))

	_, err = m.MyBooks(ctx)
	assert.True(t, apperrors.IsUnauthenticated(err))

	err = m.RemoveBookFromShelf(ctx, "book-1")
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestCreateUserAndLookup(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	created, err := m.CreateUser(ctx, model.CreateUserInput{
		Email:       "reader@example.com",
		DisplayName: "Reader",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	me, err := m.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, me)

	byEmail, err := m.GetUserByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.UserID)

	_, err = m.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddBookToShelfOverwrites(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	first, err := m.AddBookToShelf(ctx, model.AddBookToShelfInput{
		BookID: "book-1",
		Shelf:  model.ShelfReading,
		Rating: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, first.Rating)

	// Re-adding fully replaces the entry; the rating from the first add
	// must not survive.
	second, err := m.AddBookToShelf(ctx, model.AddBookToShelfInput{
		BookID: "book-1",
		Shelf:  model.ShelfRead,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShelfRead, second.Shelf)
	assert.Zero(t, second.Rating)

	books, err := m.MyBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Zero(t, books[0].Rating)
}

func TestUpdateBookShelfMandatoryOnly(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	added, err := m.AddBookToShelf(ctx, model.AddBookToShelfInput{
		BookID:    "book-1",
		Shelf:     model.ShelfReading,
		Rating:    intPtr(5),
		StartedAt: strPtr("2026-01-01"),
	})
	require.NoError(t, err)

	updated, err := m.UpdateBookShelf(ctx, model.UpdateBookShelfInput{
		BookID: "book-1",
		Shelf:  model.ShelfRead,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ShelfRead, updated.Shelf)
	assert.True(t, updated.UpdatedAt > added.UpdatedAt)
	// Unsupplied optional fields stay untouched.
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "2026-01-01", updated.StartedAt)
	assert.Equal(t, added.AddedAt, updated.AddedAt)
}

func TestUpdateBookShelfSubsetOfFields(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	_, err := m.AddBookToShelf(ctx, model.AddBookToShelfInput{
		BookID:    "book-1",
		Shelf:     model.ShelfReading,
		StartedAt: strPtr("2026-01-01"),
	})
	require.NoError(t, err)

	updated, err := m.UpdateBookShelf(ctx, model.UpdateBookShelfInput{
		BookID:    "book-1",
		Shelf:     model.ShelfRead,
		Rating:    intPtr(3),
		PagesRead: intPtr(212),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, 212, updated.PagesRead)
	assert.Equal(t, "2026-01-01", updated.StartedAt)
	assert.Empty(t, updated.FinishedAt)
}

func TestUpdateBookShelfMissingEntry(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	_, err := m.UpdateBookShelf(ctx, model.UpdateBookShelfInput{
		BookID: "never-added",
		Shelf:  model.ShelfRead,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBooksOnShelf(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	for i, shelf := range []string{model.ShelfReading, model.ShelfRead, model.ShelfReading} {
		_, err := m.AddBookToShelf(ctx, model.AddBookToShelfInput{
			BookID: fmt.Sprintf("book-%d", i),
			Shelf:  shelf,
		})
		require.NoError(t, err)
	}

	reading, err := m.BooksOnShelf(ctx, model.ShelfReading)
	require.NoError(t, err)
	assert.Len(t, reading, 2)
	for _, entry := range reading {
		assert.Equal(t, model.ShelfReading, entry.Shelf)
	}
}

func TestShelvesAreCallerScoped(t *testing.T) {
	m, _ := newTestMapper(t)

	_, err := m.AddBookToShelf(authedCtx("user-1"), model.AddBookToShelfInput{
		BookID: "book-1",
		Shelf:  model.ShelfReading,
	})
	require.NoError(t, err)

	books, err := m.MyBooks(authedCtx("user-2"))
	require.NoError(t, err)
	assert.Empty(t, books)

	// But the public per-user view sees them.
	books, err = m.UserBooks(authedCtx("user-2"), "user-1")
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestMyReviewsNewestFirstCapped(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	for i := 0; i < 5; i++ {
		_, err := m.CreateReview(ctx, model.CreateReviewInput{
			BookID:  fmt.Sprintf("book-%d", i),
			Rating:  4,
			Content: fmt.Sprintf("review %d", i),
		})
		require.NoError(t, err)
	}

	reviews, err := m.MyReviews(ctx, intPtr(3))
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "review 4", reviews[0].Content)
	assert.True(t, reviews[0].CreatedAt > reviews[1].CreatedAt)
	assert.True(t, reviews[1].CreatedAt > reviews[2].CreatedAt)
}

func TestBookReviewsDefaultLimit(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	for i := 1; i <= 25; i++ {
		_, err := m.CreateReview(ctx, model.CreateReviewInput{
			BookID:  "book-1",
			Rating:  4,
			Content: fmt.Sprintf("review %d", i),
		})
		require.NoError(t, err)
	}

	// Unspecified limit caps the feed at 20, newest first.
	reviews, err := m.BookReviews(ctx, "book-1", nil)
	require.NoError(t, err)
	require.Len(t, reviews, 20)
	assert.Equal(t, "review 25", reviews[0].Content)
	assert.Equal(t, "review 6", reviews[19].Content)
}

func TestCreateReviewMintsIDs(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	a, err := m.CreateReview(ctx, model.CreateReviewInput{BookID: "book-1", Rating: 5, Content: "great"})
	require.NoError(t, err)
	b, err := m.CreateReview(ctx, model.CreateReviewInput{BookID: "book-1", Rating: 2, Content: "meh"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ReviewID)
	assert.NotEqual(t, a.ReviewID, b.ReviewID)
	assert.Equal(t, "user-1", a.UserID)
}

func TestAddFriend(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	edge, err := m.AddFriend(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, model.FriendStatusPending, edge.Status)
	assert.Equal(t, "user-1", edge.UserID)
	assert.Equal(t, "user-2", edge.FriendID)

	_, err = m.AddFriend(ctx, "user-1")
	assert.True(t, apperrors.IsValidation(err))

	friends, err := m.Friends(ctx)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestCustomShelfLifecycle(t *testing.T) {
	m, store := newTestMapper(t)
	ctx := authedCtx("user-1")

	shelf, err := m.CreateCustomShelf(ctx, model.CreateCustomShelfInput{Name: "Favorites"})
	require.NoError(t, err)
	assert.Equal(t, "Favorites", shelf.Name)
	assert.Empty(t, shelf.Description)
	assert.Equal(t, shelf.CreatedAt, shelf.UpdatedAt)

	// The description key must be absent, not empty.
	raw, err := store.Get(ctx, testTables.CustomShelves,
		ports.Key{"userId": "user-1", "shelfId": shelf.ShelfID})
	require.NoError(t, err)
	_, present := raw["description"]
	assert.False(t, present)

	updated, err := m.UpdateCustomShelf(ctx, model.UpdateCustomShelfInput{
		ShelfID:     shelf.ShelfID,
		Name:        "Favorites!",
		Description: strPtr("top picks"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Favorites!", updated.Name)
	assert.Equal(t, "top picks", updated.Description)
	assert.Equal(t, shelf.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt > shelf.UpdatedAt)

	require.NoError(t, m.DeleteCustomShelf(ctx, shelf.ShelfID))
	shelves, err := m.MyCustomShelves(ctx)
	require.NoError(t, err)
	assert.Empty(t, shelves)
}

func TestUpdateShelfBookRatingSetThenClear(t *testing.T) {
	m, store := newTestMapper(t)
	ctx := authedCtx("user-1")

	shelf, err := m.CreateCustomShelf(ctx, model.CreateCustomShelfInput{Name: "SF"})
	require.NoError(t, err)

	// First rating write creates the map.
	rated, err := m.UpdateShelfBookRating(ctx, shelf.ShelfID, "book-1", intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"book-1": 5}, rated.BookRatings)

	// A second book's rating lands beside the first.
	rated, err = m.UpdateShelfBookRating(ctx, shelf.ShelfID, "book-2", intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"book-1": 5, "book-2": 3}, rated.BookRatings)

	// Clearing removes only the addressed key and still advances updatedAt.
	cleared, err := m.UpdateShelfBookRating(ctx, shelf.ShelfID, "book-1", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"book-2": 3}, cleared.BookRatings)
	assert.True(t, cleared.UpdatedAt > rated.UpdatedAt)

	raw, err := store.Get(ctx, testTables.CustomShelves,
		ports.Key{"userId": "user-1", "shelfId": shelf.ShelfID})
	require.NoError(t, err)
	ratings, ok := raw["bookRatings"].(map[string]any)
	require.True(t, ok)
	_, present := ratings["book-1"]
	assert.False(t, present)
}

func TestUpdateShelfBookRatingMissingShelf(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	_, err := m.UpdateShelfBookRating(ctx, "no-such-shelf", "book-1", intPtr(4))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoanLifecycle(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	loan, err := m.LendBook(ctx, model.LendBookInput{BookID: "book-1", BorrowerName: "Sam"})
	require.NoError(t, err)
	assert.NotEmpty(t, loan.LoanID)
	assert.NotEmpty(t, loan.LentAt)
	assert.Empty(t, loan.ReturnedAt)

	other, err := m.LendBook(ctx, model.LendBookInput{BookID: "book-2", BorrowerName: "Alex"})
	require.NoError(t, err)

	returned, err := m.ReturnBook(ctx, loan.LoanID)
	require.NoError(t, err)
	assert.NotEmpty(t, returned.ReturnedAt)

	active, err := m.ActiveLoans(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, other.LoanID, active[0].LoanID)

	all, err := m.MyLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	renamed, err := m.UpdateLoan(ctx, model.UpdateLoanInput{LoanID: other.LoanID, BorrowerName: "Alexis"})
	require.NoError(t, err)
	assert.Equal(t, "Alexis", renamed.BorrowerName)

	require.NoError(t, m.DeleteLoan(ctx, loan.LoanID))
	all, err = m.MyLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLoansForBook(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	first, err := m.LendBook(ctx, model.LendBookInput{BookID: "book-1", BorrowerName: "Sam"})
	require.NoError(t, err)
	_, err = m.ReturnBook(ctx, first.LoanID)
	require.NoError(t, err)

	// Re-lending mints a second loan of the same book.
	second, err := m.LendBook(ctx, model.LendBookInput{BookID: "book-1", BorrowerName: "Alex"})
	require.NoError(t, err)
	_, err = m.LendBook(ctx, model.LendBookInput{BookID: "book-2", BorrowerName: "Sam"})
	require.NoError(t, err)

	history, err := m.LoansForBook(ctx, "book-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	ids := []string{history[0].LoanID, history[1].LoanID}
	assert.ElementsMatch(t, []string{first.LoanID, second.LoanID}, ids)

	// History is caller-scoped like every other loan query.
	other, err := m.LoansForBook(authedCtx("user-2"), "book-1")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestReturnBookMissingLoan(t *testing.T) {
	m, _ := newTestMapper(t)

	_, err := m.ReturnBook(authedCtx("user-1"), "no-such-loan")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookCache(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	cached, err := m.CacheBook(ctx, model.CacheBookInput{
		ISBN:    "9780441013593",
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
	})
	require.NoError(t, err)
	assert.Greater(t, cached.TTL, int64(0))

	book, err := m.GetBook(ctx, "9780441013593")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = m.GetBook(ctx, "0000000000000")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestActivityFeed(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := authedCtx("user-1")

	for i := 0; i < 3; i++ {
		_, err := m.RecordActivity(ctx, model.RecordActivityInput{
			EventType: "BOOK_FINISHED",
			Payload:   map[string]any{"bookId": fmt.Sprintf("book-%d", i)},
		})
		require.NoError(t, err)
	}

	feed, err := m.ActivityFeed(ctx, nil)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.True(t, feed[0].Timestamp > feed[1].Timestamp)
	assert.Greater(t, feed[0].TTL, int64(0))
}
