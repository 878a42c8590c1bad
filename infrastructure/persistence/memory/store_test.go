package memory_test

import (
	"context"
	"fmt"
	"testing"

	"betterreads-backend/application/ports"
	"betterreads-backend/infrastructure/persistence/memory"
	apperrors "betterreads-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tables = ports.Tables{
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

func newStore() *memory.Store {
	return memory.NewStore(ports.Schemas(tables))
}

func TestGetPutDelete(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	key := ports.Key{"userId": "u1"}

	_, err := s.Get(ctx, tables.Users, key)
	assert.True(t, apperrors.IsNotFound(err))

	item, err := s.Put(ctx, tables.Users, key, ports.Item{"email": "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", item["userId"])

	got, err := s.Get(ctx, tables.Users, key)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got["email"])

	require.NoError(t, s.Delete(ctx, tables.Users, key))
	err = s.Delete(ctx, tables.Users, key)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateMissingKey(t *testing.T) {
	s := newStore()
	_, err := s.Update(context.Background(), tables.Users,
		ports.Key{"userId": "u1"},
		[]ports.Directive{ports.Set("email", "a@b.com")})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateDirectiveSemantics(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	key := ports.Key{"userId": "u1", "shelfId": "s1"}

	_, err := s.Put(ctx, tables.CustomShelves, key, ports.Item{"name": "SF"})
	require.NoError(t, err)

	// SetIfAbsent creates the map, SetNested fills it.
	item, err := s.Update(ctx, tables.CustomShelves, key, []ports.Directive{
		ports.SetIfAbsent("bookRatings", map[string]any{}),
		ports.SetNested("bookRatings", "b1", 5),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b1": 5}, item["bookRatings"])

	// SetIfAbsent on an existing map leaves it alone.
	item, err = s.Update(ctx, tables.CustomShelves, key, []ports.Directive{
		ports.SetIfAbsent("bookRatings", map[string]any{}),
		ports.SetNested("bookRatings", "b2", 3),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b1": 5, "b2": 3}, item["bookRatings"])

	// RemoveNested deletes exactly one key.
	item, err = s.Update(ctx, tables.CustomShelves, key, []ports.Directive{
		ports.RemoveNested("bookRatings", "b1"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b2": 3}, item["bookRatings"])
}

func TestQueryOrderingAndLimit(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Put(ctx, tables.Activity,
			ports.Key{"userId": "u1", "timestamp": fmt.Sprintf("2026-01-0%dT00:00:00Z", i+1)},
			ports.Item{"eventType": "E"})
		require.NoError(t, err)
	}

	asc, err := s.Query(ctx, tables.Activity, ports.Query{
		PartitionName:  "userId",
		PartitionValue: "u1",
	})
	require.NoError(t, err)
	require.Len(t, asc, 5)
	assert.Equal(t, "2026-01-01T00:00:00Z", asc[0]["timestamp"])

	desc, err := s.Query(ctx, tables.Activity, ports.Query{
		PartitionName:  "userId",
		PartitionValue: "u1",
		Descending:     true,
		Limit:          2,
	})
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "2026-01-05T00:00:00Z", desc[0]["timestamp"])
	assert.Equal(t, "2026-01-04T00:00:00Z", desc[1]["timestamp"])
}

func TestQueryLimitAppliesBeforeFilter(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	// Three loans in sort order; the first two are returned.
	for i, returned := range []bool{true, true, false} {
		attrs := ports.Item{"bookId": "b1"}
		if returned {
			attrs["returnedAt"] = "2026-01-01T00:00:00Z"
		}
		_, err := s.Put(ctx, tables.BookLoans,
			ports.Key{"userId": "u1", "loanId": fmt.Sprintf("l%d", i)}, attrs)
		require.NoError(t, err)
	}

	// Limit 2 scans the first two loans, and the filter then drops both:
	// the active loan beyond the scan window is not returned.
	items, err := s.Query(ctx, tables.BookLoans, ports.Query{
		PartitionName:   "userId",
		PartitionValue:  "u1",
		Limit:           2,
		FilterNotExists: "returnedAt",
	})
	require.NoError(t, err)
	assert.Empty(t, items)

	// Without a limit the filter sees everything.
	items, err = s.Query(ctx, tables.BookLoans, ports.Query{
		PartitionName:   "userId",
		PartitionValue:  "u1",
		FilterNotExists: "returnedAt",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "l2", items[0]["loanId"])
}

func TestQuerySecondaryIndex(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	for i, shelf := range []string{"READING", "READ", "READING"} {
		_, err := s.Put(ctx, tables.UserBooks,
			ports.Key{"userId": "u1", "bookId": fmt.Sprintf("b%d", i)},
			ports.Item{"shelf": shelf})
		require.NoError(t, err)
	}

	items, err := s.Query(ctx, tables.UserBooks, ports.Query{
		Index:          ports.IndexByShelf,
		PartitionName:  "userId",
		PartitionValue: "u1",
		SortName:       "shelf",
		SortValue:      "READING",
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestQueryUnknownIndex(t *testing.T) {
	s := newStore()
	_, err := s.Query(context.Background(), tables.Users, ports.Query{
		Index:          "noSuchIndex",
		PartitionName:  "email",
		PartitionValue: "a@b.com",
	})
	assert.Error(t, err)
}

func TestReturnedItemsAreCopies(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	key := ports.Key{"userId": "u1"}

	_, err := s.Put(ctx, tables.Users, key, ports.Item{"email": "a@b.com"})
	require.NoError(t, err)

	got, err := s.Get(ctx, tables.Users, key)
	require.NoError(t, err)
	got["email"] = "mutated"

	again, err := s.Get(ctx, tables.Users, key)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", again["email"])
}
