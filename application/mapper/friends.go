package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
	apperrors "betterreads-backend/pkg/errors"
)

// Friends returns the caller's friend edges
func (m *Mapper) Friends(ctx context.Context) ([]model.Friend, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.Friends, ports.Query{
		PartitionName:  "userId",
		PartitionValue: sub,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.Friend](items)
}

// AddFriend records a pending friend edge from the caller to friendID
func (m *Mapper) AddFriend(ctx context.Context, friendID string) (*model.Friend, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}
	if friendID == sub {
		return nil, apperrors.NewValidationError("cannot add yourself as a friend")
	}

	item, err := m.store.Put(ctx, m.tables.Friends,
		ports.Key{"userId": sub, "friendId": friendID},
		ports.Item{
			"status":    model.FriendStatusPending,
			"createdAt": m.timestamp(),
		})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.Friend](item)
}
