package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
)

// UserBooks returns all shelf entries for the given user
func (m *Mapper) UserBooks(ctx context.Context, userID string) ([]model.UserBook, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.UserBooks, ports.Query{
		PartitionName:  "userId",
		PartitionValue: userID,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.UserBook](items)
}

// MyBooks returns the caller's shelf entries
func (m *Mapper) MyBooks(ctx context.Context) ([]model.UserBook, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}
	return m.UserBooks(ctx, sub)
}

// BooksOnShelf returns the caller's entries on one shelf status, served by
// the shelf index.
func (m *Mapper) BooksOnShelf(ctx context.Context, shelf string) ([]model.UserBook, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.UserBooks, ports.Query{
		Index:          ports.IndexByShelf,
		PartitionName:  "userId",
		PartitionValue: sub,
		SortName:       "shelf",
		SortValue:      shelf,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.UserBook](items)
}

// AddBookToShelf fully replaces the caller's shelf entry for a book.
// Optional fields absent from the input are absent from the stored item,
// including any values a previous entry carried.
func (m *Mapper) AddBookToShelf(ctx context.Context, input model.AddBookToShelfInput) (*model.UserBook, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	now := m.timestamp()
	attrs := ports.Item{
		"shelf":     input.Shelf,
		"addedAt":   now,
		"updatedAt": now,
	}
	if input.CustomShelfIDs != nil {
		attrs["customShelfIds"] = *input.CustomShelfIDs
	}
	if input.Rating != nil {
		attrs["rating"] = *input.Rating
	}
	if input.StartedAt != nil {
		attrs["startedAt"] = *input.StartedAt
	}
	if input.FinishedAt != nil {
		attrs["finishedAt"] = *input.FinishedAt
	}
	if input.PagesRead != nil {
		attrs["pagesRead"] = *input.PagesRead
	}

	item, err := m.store.Put(ctx, m.tables.UserBooks,
		ports.Key{"userId": sub, "bookId": input.BookID}, attrs)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.UserBook](item)
}

// UpdateBookShelf partially updates the caller's shelf entry: shelf and
// updatedAt always, then exactly the optional fields the caller supplied.
func (m *Mapper) UpdateBookShelf(ctx context.Context, input model.UpdateBookShelfInput) (*model.UserBook, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	directives := []ports.Directive{
		ports.Set("shelf", input.Shelf),
		ports.Set("updatedAt", m.timestamp()),
	}
	if input.CustomShelfIDs != nil {
		directives = append(directives, ports.Set("customShelfIds", *input.CustomShelfIDs))
	}
	if input.Rating != nil {
		directives = append(directives, ports.Set("rating", *input.Rating))
	}
	if input.StartedAt != nil {
		directives = append(directives, ports.Set("startedAt", *input.StartedAt))
	}
	if input.FinishedAt != nil {
		directives = append(directives, ports.Set("finishedAt", *input.FinishedAt))
	}
	if input.PagesRead != nil {
		directives = append(directives, ports.Set("pagesRead", *input.PagesRead))
	}

	item, err := m.store.Update(ctx, m.tables.UserBooks,
		ports.Key{"userId": sub, "bookId": input.BookID}, directives)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.UserBook](item)
}

// RemoveBookFromShelf deletes the caller's shelf entry for a book
func (m *Mapper) RemoveBookFromShelf(ctx context.Context, bookID string) error {
	sub, err := m.subject(ctx)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, m.tables.UserBooks,
		ports.Key{"userId": sub, "bookId": bookID})
}
