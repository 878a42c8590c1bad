package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"

	"go.uber.org/zap"
)

// BookReviews returns the most recent reviews of a book, newest first,
// capped at limit (default 20).
func (m *Mapper) BookReviews(ctx context.Context, bookID string, limit *int) ([]model.Review, error) {
	if _, err := m.subject(ctx); err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.Reviews, ports.Query{
		PartitionName:  "bookId",
		PartitionValue: bookID,
		Descending:     true,
		Limit:          limitOrDefault(limit),
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.Review](items)
}

// MyReviews returns the caller's reviews, newest first, through the user
// index.
func (m *Mapper) MyReviews(ctx context.Context, limit *int) ([]model.Review, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.Reviews, ports.Query{
		Index:          ports.IndexByUser,
		PartitionName:  "userId",
		PartitionValue: sub,
		Descending:     true,
		Limit:          limitOrDefault(limit),
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.Review](items)
}

// CreateReview posts the caller's review of a book under a freshly minted
// review id.
func (m *Mapper) CreateReview(ctx context.Context, input model.CreateReviewInput) (*model.Review, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	reviewID := m.newID()
	item, err := m.store.Put(ctx, m.tables.Reviews,
		ports.Key{"bookId": input.BookID, "reviewId": reviewID},
		ports.Item{
			"userId":    sub,
			"rating":    input.Rating,
			"content":   input.Content,
			"createdAt": m.timestamp(),
		})
	if err != nil {
		return nil, err
	}

	m.logger.Info("review created",
		zap.String("bookId", input.BookID),
		zap.String("reviewId", reviewID),
	)
	return model.Decode[model.Review](item)
}
