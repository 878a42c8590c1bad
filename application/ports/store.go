// Package ports defines the contracts between the entity mapper and the
// infrastructure layer: the key-value store abstraction, the field-level
// update directives, and the collection schemas.
package ports

import "context"

// Item is one stored record as an attribute map
type Item map[string]any

// Key addresses one item by its primary key attributes (partition key and,
// where the collection defines one, sort key).
type Key map[string]any

// DirectiveKind identifies a field-level update instruction
type DirectiveKind int

const (
	// DirectiveSet assigns a top-level attribute
	DirectiveSet DirectiveKind = iota
	// DirectiveSetIfAbsent assigns a top-level attribute only when it does
	// not exist yet, leaving any existing value untouched
	DirectiveSetIfAbsent
	// DirectiveSetNested assigns one key inside a map attribute. The parent
	// map must exist; pair with SetIfAbsent to initialize it.
	DirectiveSetNested
	// DirectiveRemoveNested removes one key from a map attribute
	DirectiveRemoveNested
)

// Directive is a single field-level instruction within an atomic update.
// An update is an ordered list of directives applied as one store call:
// mandatory directives first, then one per optional field the caller
// actually supplied.
type Directive struct {
	Kind      DirectiveKind
	Name      string // attribute name; parent map name for nested kinds
	NestedKey string // map key for nested kinds
	Value     any    // unused for DirectiveRemoveNested
}

// Set builds a directive assigning a top-level attribute
func Set(name string, value any) Directive {
	return Directive{Kind: DirectiveSet, Name: name, Value: value}
}

// SetIfAbsent builds a directive assigning an attribute only when absent
func SetIfAbsent(name string, value any) Directive {
	return Directive{Kind: DirectiveSetIfAbsent, Name: name, Value: value}
}

// SetNested builds a directive assigning one key inside a map attribute
func SetNested(name, nestedKey string, value any) Directive {
	return Directive{Kind: DirectiveSetNested, Name: name, NestedKey: nestedKey, Value: value}
}

// RemoveNested builds a directive removing one key from a map attribute
func RemoveNested(name, nestedKey string) Directive {
	return Directive{Kind: DirectiveRemoveNested, Name: name, NestedKey: nestedKey}
}

// Query describes a partition scan over a collection's primary key or one of
// its secondary indexes.
type Query struct {
	// Index selects a secondary index by name; empty queries the primary key
	Index string
	// PartitionName and PartitionValue form the equality condition on the
	// selected index's partition key
	PartitionName  string
	PartitionValue any
	// SortName and SortValue, when set, add an equality condition on the
	// selected index's sort key (e.g. shelf on the byShelf index)
	SortName  string
	SortValue any
	// Descending reverses the sort-key order (newest-first feeds)
	Descending bool
	// Limit caps the number of items scanned; zero means no cap. The cap is
	// applied before any filter, so a filtered query can return fewer than
	// Limit matching items even when more exist.
	Limit int32
	// FilterNotExists, when set, drops scanned items that carry the named
	// attribute (e.g. returnedAt for active loans)
	FilterNotExists string
}

// Store is a per-collection key-value store. Writes against a single key are
// atomic and isolated; no cross-key or cross-collection atomicity is provided.
// Update and Delete against a missing key fail with a not-found error.
type Store interface {
	// Get returns the item at key, or a not-found error
	Get(ctx context.Context, table string, key Key) (Item, error)
	// Put fully replaces (or creates) the item at key and returns it
	Put(ctx context.Context, table string, key Key, attrs Item) (Item, error)
	// Update applies the ordered directives atomically and returns the
	// resulting item
	Update(ctx context.Context, table string, key Key, directives []Directive) (Item, error)
	// Delete removes the item at key
	Delete(ctx context.Context, table string, key Key) error
	// Query returns the items matching q in sort-key order
	Query(ctx context.Context, table string, q Query) ([]Item, error)
}
