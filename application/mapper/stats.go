package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
)

// ReadingStats returns the caller's aggregated counters across all periods
func (m *Mapper) ReadingStats(ctx context.Context) ([]model.ReadingStats, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.ReadingStats, ports.Query{
		PartitionName:  "userId",
		PartitionValue: sub,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.ReadingStats](items)
}
