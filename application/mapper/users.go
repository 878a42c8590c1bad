package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
	apperrors "betterreads-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetUser returns any user's profile by id
func (m *Mapper) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	item, err := m.store.Get(ctx, m.tables.Users, ports.Key{"userId": userID})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.User](item)
}

// Me returns the caller's own profile
func (m *Mapper) Me(ctx context.Context) (*model.User, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	item, err := m.store.Get(ctx, m.tables.Users, ports.Key{"userId": sub})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.User](item)
}

// GetUserByEmail looks a user up through the email index
func (m *Mapper) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.Users, ports.Query{
		Index:          ports.IndexByEmail,
		PartitionName:  "email",
		PartitionValue: email,
		Limit:          1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("user")
	}
	return model.Decode[model.User](items[0])
}

// CreateUser writes the caller's profile, keyed by the caller's identity.
// Re-creating overwrites the existing profile.
func (m *Mapper) CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	now := m.timestamp()
	item, err := m.store.Put(ctx, m.tables.Users,
		ports.Key{"userId": sub},
		ports.Item{
			"email":       input.Email,
			"displayName": input.DisplayName,
			"createdAt":   now,
			"updatedAt":   now,
		})
	if err != nil {
		return nil, err
	}

	m.logger.Info("user created", zap.String("userId", sub))
	return model.Decode[model.User](item)
}
