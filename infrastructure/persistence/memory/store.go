// Package memory provides an in-memory implementation of the store contract
// for tests and local development. It mirrors the backing store's semantics:
// per-key atomicity, sort-key ordering on queries, and a scan cap applied
// before any filter.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"betterreads-backend/application/ports"
	apperrors "betterreads-backend/pkg/errors"
)

// Store is a thread-safe in-memory ports.Store
type Store struct {
	mu      sync.RWMutex
	schemas map[string]ports.TableSchema
	tables  map[string]map[string]ports.Item
}

// NewStore creates an empty store aware of the given collection layout
func NewStore(schemas []ports.TableSchema) *Store {
	byName := make(map[string]ports.TableSchema, len(schemas))
	tables := make(map[string]map[string]ports.Item, len(schemas))
	for _, s := range schemas {
		byName[s.Name] = s
		tables[s.Name] = make(map[string]ports.Item)
	}
	return &Store{schemas: byName, tables: tables}
}

var _ ports.Store = (*Store)(nil)

// Get returns a copy of the item at key
func (s *Store) Get(ctx context.Context, table string, key ports.Key) (ports.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, schema, err := s.tableFor(table)
	if err != nil {
		return nil, err
	}

	item, ok := items[keyString(schema, key)]
	if !ok {
		return nil, apperrors.NewNotFoundError("item")
	}
	return copyItem(item), nil
}

// Put fully replaces the item at key
func (s *Store) Put(ctx context.Context, table string, key ports.Key, attrs ports.Item) (ports.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, schema, err := s.tableFor(table)
	if err != nil {
		return nil, err
	}

	merged := make(ports.Item, len(key)+len(attrs))
	for k, v := range attrs {
		merged[k] = v
	}
	for k, v := range key {
		merged[k] = v
	}

	items[keyString(schema, key)] = copyItem(merged)
	return merged, nil
}

// Update applies the directives in order against the existing item
func (s *Store) Update(ctx context.Context, table string, key ports.Key, directives []ports.Directive) (ports.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, schema, err := s.tableFor(table)
	if err != nil {
		return nil, err
	}

	ks := keyString(schema, key)
	item, ok := items[ks]
	if !ok {
		return nil, apperrors.NewNotFoundError("item")
	}

	updated := copyItem(item)
	for _, d := range directives {
		if err := applyDirective(updated, d); err != nil {
			return nil, err
		}
	}

	items[ks] = updated
	return copyItem(updated), nil
}

// Delete removes the item at key
func (s *Store) Delete(ctx context.Context, table string, key ports.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, schema, err := s.tableFor(table)
	if err != nil {
		return err
	}

	ks := keyString(schema, key)
	if _, ok := items[ks]; !ok {
		return apperrors.NewNotFoundError("item")
	}
	delete(items, ks)
	return nil
}

// Query scans one partition in sort-key order. The scan cap is applied
// before the filter, matching the backing store.
func (s *Store) Query(ctx context.Context, table string, q ports.Query) ([]ports.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, schema, err := s.tableFor(table)
	if err != nil {
		return nil, err
	}

	sortKey := schema.SortKey
	if q.Index != "" {
		index, ok := indexFor(schema, q.Index)
		if !ok {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("table %s has no index %s", table, q.Index))
		}
		sortKey = index.SortKey
	}

	var matched []ports.Item
	for _, item := range items {
		if fmt.Sprint(item[q.PartitionName]) != fmt.Sprint(q.PartitionValue) {
			continue
		}
		if q.SortName != "" && fmt.Sprint(item[q.SortName]) != fmt.Sprint(q.SortValue) {
			continue
		}
		matched = append(matched, copyItem(item))
	}

	if sortKey != "" {
		sort.Slice(matched, func(i, j int) bool {
			less := compareValues(matched[i][sortKey], matched[j][sortKey]) < 0
			if q.Descending {
				return !less
			}
			return less
		})
	}

	if q.Limit > 0 && len(matched) > int(q.Limit) {
		matched = matched[:q.Limit]
	}

	if q.FilterNotExists != "" {
		filtered := make([]ports.Item, 0, len(matched))
		for _, item := range matched {
			if _, present := item[q.FilterNotExists]; !present {
				filtered = append(filtered, item)
			}
		}
		matched = filtered
	}

	return matched, nil
}

func (s *Store) tableFor(table string) (map[string]ports.Item, ports.TableSchema, error) {
	schema, ok := s.schemas[table]
	if !ok {
		return nil, ports.TableSchema{}, apperrors.NewUnavailableError("memory", nil).
			WithCode("TableNotFound").
			WithDetails(map[string]interface{}{"table": table})
	}
	return s.tables[table], schema, nil
}

func indexFor(schema ports.TableSchema, name string) (ports.IndexSchema, bool) {
	for _, index := range schema.Indexes {
		if index.Name == name {
			return index, true
		}
	}
	return ports.IndexSchema{}, false
}

func applyDirective(item ports.Item, d ports.Directive) error {
	switch d.Kind {
	case ports.DirectiveSet:
		item[d.Name] = d.Value
	case ports.DirectiveSetIfAbsent:
		if _, ok := item[d.Name]; !ok {
			item[d.Name] = d.Value
		}
	case ports.DirectiveSetNested:
		parent, ok := item[d.Name].(map[string]any)
		if !ok {
			return apperrors.NewInternalError(
				fmt.Sprintf("attribute %s is not a map", d.Name))
		}
		parent[d.NestedKey] = d.Value
	case ports.DirectiveRemoveNested:
		if parent, ok := item[d.Name].(map[string]any); ok {
			delete(parent, d.NestedKey)
		}
	default:
		return apperrors.NewInternalError(fmt.Sprintf("unknown directive kind %d", d.Kind))
	}
	return nil
}

func keyString(schema ports.TableSchema, key ports.Key) string {
	parts := []string{fmt.Sprint(key[schema.PartitionKey])}
	if schema.SortKey != "" {
		parts = append(parts, fmt.Sprint(key[schema.SortKey]))
	}
	return strings.Join(parts, "\x1f")
}

func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func copyItem(item ports.Item) ports.Item {
	out := make(ports.Item, len(item))
	for k, v := range item {
		if m, ok := v.(map[string]any); ok {
			nested := make(map[string]any, len(m))
			for nk, nv := range m {
				nested[nk] = nv
			}
			out[k] = nested
			continue
		}
		out[k] = v
	}
	return out
}
