// Package mapper translates resolver operations into store requests. Each
// operation scopes its key to the caller's identity, builds the item or the
// ordered update directives, executes exactly one store call, and decodes
// the result into a typed entity.
package mapper

import (
	"context"
	"time"

	"betterreads-backend/application/ports"
	"betterreads-backend/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// defaultFeedLimit caps chronological list queries when the caller does
	// not supply a limit
	defaultFeedLimit = 20

	// bookCacheTTL is how long cached book metadata stays readable
	bookCacheTTL = 30 * 24 * time.Hour

	// activityTTL is the retention window for activity feed events
	activityTTL = 90 * 24 * time.Hour
)

// Mapper executes resolver operations against the store
type Mapper struct {
	store  ports.Store
	tables ports.Tables
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Mapper, primarily for tests
type Option func(*Mapper)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(m *Mapper) { m.now = now }
}

// WithIDGenerator replaces the id source
func WithIDGenerator(newID func() string) Option {
	return func(m *Mapper) { m.newID = newID }
}

// NewMapper creates a Mapper over the given store and collection names
func NewMapper(store ports.Store, tables ports.Tables, logger *zap.Logger, opts ...Option) *Mapper {
	m := &Mapper{
		store:  store,
		tables: tables,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// subject returns the authenticated caller's identity, rejecting requests
// without one before any store access.
func (m *Mapper) subject(ctx context.Context) (string, error) {
	return auth.Subject(ctx)
}

// timestamp returns the current instant in the stored timestamp format
func (m *Mapper) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

// limitOrDefault resolves an optional feed limit
func limitOrDefault(limit *int) int32 {
	if limit == nil || *limit <= 0 {
		return defaultFeedLimit
	}
	return int32(*limit)
}
