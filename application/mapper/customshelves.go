package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"

	"go.uber.org/zap"
)

// MyCustomShelves returns the caller's custom shelves
func (m *Mapper) MyCustomShelves(ctx context.Context) ([]model.CustomShelf, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.CustomShelves, ports.Query{
		PartitionName:  "userId",
		PartitionValue: sub,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.CustomShelf](items)
}

// CreateCustomShelf creates a shelf under a freshly minted id. The
// bookRatings map is not initialized here; the first rating write creates it.
func (m *Mapper) CreateCustomShelf(ctx context.Context, input model.CreateCustomShelfInput) (*model.CustomShelf, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	now := m.timestamp()
	attrs := ports.Item{
		"name":      input.Name,
		"createdAt": now,
		"updatedAt": now,
	}
	if input.Description != nil {
		attrs["description"] = *input.Description
	}

	shelfID := m.newID()
	item, err := m.store.Put(ctx, m.tables.CustomShelves,
		ports.Key{"userId": sub, "shelfId": shelfID}, attrs)
	if err != nil {
		return nil, err
	}

	m.logger.Info("custom shelf created",
		zap.String("userId", sub),
		zap.String("shelfId", shelfID),
	)
	return model.Decode[model.CustomShelf](item)
}

// UpdateCustomShelf renames a shelf and, when supplied, replaces its
// description.
func (m *Mapper) UpdateCustomShelf(ctx context.Context, input model.UpdateCustomShelfInput) (*model.CustomShelf, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	directives := []ports.Directive{
		ports.Set("name", input.Name),
		ports.Set("updatedAt", m.timestamp()),
	}
	if input.Description != nil {
		directives = append(directives, ports.Set("description", *input.Description))
	}

	item, err := m.store.Update(ctx, m.tables.CustomShelves,
		ports.Key{"userId": sub, "shelfId": input.ShelfID}, directives)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.CustomShelf](item)
}

// DeleteCustomShelf removes a shelf. Shelf entries referencing it through
// customShelfIds are left untouched.
func (m *Mapper) DeleteCustomShelf(ctx context.Context, shelfID string) error {
	sub, err := m.subject(ctx)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, m.tables.CustomShelves,
		ports.Key{"userId": sub, "shelfId": shelfID})
}

// UpdateShelfBookRating sets or clears one book's rating inside a shelf's
// bookRatings map. A supplied rating first ensures the map exists, then
// assigns the nested key; a nil rating removes the key. Both branches
// advance updatedAt.
func (m *Mapper) UpdateShelfBookRating(ctx context.Context, shelfID, bookID string, rating *int) (*model.CustomShelf, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	var directives []ports.Directive
	if rating != nil {
		directives = []ports.Directive{
			ports.SetIfAbsent("bookRatings", map[string]any{}),
			ports.SetNested("bookRatings", bookID, *rating),
			ports.Set("updatedAt", m.timestamp()),
		}
	} else {
		directives = []ports.Directive{
			ports.RemoveNested("bookRatings", bookID),
			ports.Set("updatedAt", m.timestamp()),
		}
	}

	item, err := m.store.Update(ctx, m.tables.CustomShelves,
		ports.Key{"userId": sub, "shelfId": shelfID}, directives)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.CustomShelf](item)
}
