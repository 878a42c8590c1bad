package model

import (
	"encoding/json"

	"betterreads-backend/application/ports"
	apperrors "betterreads-backend/pkg/errors"
)

// Decode converts a store item into a typed entity via its json tags. Store
// items carry plain Go values (strings, numbers, slices, maps), so a JSON
// round trip is exact for this data model.
func Decode[T any](item ports.Item) (*T, error) {
	raw, err := json.Marshal(map[string]any(item))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode store item").WithCause(err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, apperrors.NewInternalError("failed to decode store item").WithCause(err)
	}
	return out, nil
}

// DecodeList converts a list of store items into typed entities
func DecodeList[T any](items []ports.Item) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		entity, err := Decode[T](item)
		if err != nil {
			return nil, err
		}
		out = append(out, *entity)
	}
	return out, nil
}
