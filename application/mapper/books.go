package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
)

// GetBook reads a cached book metadata entry by ISBN. Cache entries expire,
// so a NotFound here is an ordinary outcome.
func (m *Mapper) GetBook(ctx context.Context, isbn string) (*model.Book, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	item, err := m.store.Get(ctx, m.tables.Books, ports.Key{"isbn": isbn})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.Book](item)
}

// CacheBook writes a book metadata cache entry with a fresh expiration
func (m *Mapper) CacheBook(ctx context.Context, input model.CacheBookInput) (*model.Book, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	attrs := ports.Item{
		"title": input.Title,
		"ttl":   m.now().UTC().Add(bookCacheTTL).Unix(),
	}
	if len(input.Authors) > 0 {
		attrs["authors"] = input.Authors
	}
	if input.CoverURL != "" {
		attrs["coverUrl"] = input.CoverURL
	}
	if input.PageCount != nil {
		attrs["pageCount"] = *input.PageCount
	}

	item, err := m.store.Put(ctx, m.tables.Books,
		ports.Key{"isbn": input.ISBN}, attrs)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.Book](item)
}
