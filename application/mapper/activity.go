package mapper

import (
	"context"
	"time"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
)

// ActivityFeed returns the caller's most recent feed events, newest first,
// capped at limit (default 20).
func (m *Mapper) ActivityFeed(ctx context.Context, limit *int) ([]model.Activity, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.Activity, ports.Query{
		PartitionName:  "userId",
		PartitionValue: sub,
		Descending:     true,
		Limit:          limitOrDefault(limit),
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.Activity](items)
}

// RecordActivity appends an event to the caller's feed. Events are keyed by
// timestamp and expire after the retention window.
func (m *Mapper) RecordActivity(ctx context.Context, input model.RecordActivityInput) (*model.Activity, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	attrs := ports.Item{
		"eventType": input.EventType,
		"ttl":       now.Add(activityTTL).Unix(),
	}
	if input.Payload != nil {
		attrs["payload"] = input.Payload
	}

	item, err := m.store.Put(ctx, m.tables.Activity,
		ports.Key{"userId": sub, "timestamp": now.Format(time.RFC3339)},
		attrs)
	if err != nil {
		return nil, err
	}
	return model.Decode[model.Activity](item)
}
