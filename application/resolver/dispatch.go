// Package resolver routes GraphQL-shaped requests to mapper operations. The
// binding table is static: every resolvable (type, field) pair maps to one
// handler, and anything outside the table fails NotImplemented without
// touching the store.
package resolver

import (
	"context"
	"encoding/json"
	"time"

	"betterreads-backend/application/mapper"
	apperrors "betterreads-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// GraphQL parent type names
const (
	TypeQuery    = "Query"
	TypeMutation = "Mutation"
)

// Request is one resolver invocation: the parent type, the field, and the
// raw field arguments.
type Request struct {
	TypeName  string          `json:"typeName"`
	FieldName string          `json:"fieldName"`
	Arguments json.RawMessage `json:"arguments"`
}

// MetricsRecorder receives per-operation timing. Nil recorders are allowed.
type MetricsRecorder interface {
	RecordOperation(field string, duration time.Duration, err error)
}

type binding struct {
	typeName  string
	fieldName string
}

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher owns the binding table and executes requests against it
type Dispatcher struct {
	mapper   *mapper.Mapper
	validate *validator.Validate
	logger   *zap.Logger
	metrics  MetricsRecorder
	bindings map[binding]handlerFunc
}

// NewDispatcher builds a dispatcher over the given mapper. metrics may be nil.
func NewDispatcher(m *mapper.Mapper, logger *zap.Logger, metrics MetricsRecorder) *Dispatcher {
	d := &Dispatcher{
		mapper:   m,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
	d.bindings = d.buildBindings()
	return d
}

// Dispatch resolves one request. Unknown (type, field) pairs fail
// NotImplemented; everything else is delegated to exactly one mapper
// operation.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	handler, ok := d.bindings[binding{req.TypeName, req.FieldName}]
	if !ok {
		d.logger.Warn("no binding for field",
			zap.String("typeName", req.TypeName),
			zap.String("fieldName", req.FieldName),
		)
		return nil, apperrors.NewNotImplementedError(req.TypeName + "." + req.FieldName)
	}

	start := time.Now()
	result, err := handler(ctx, req.Arguments)
	if d.metrics != nil {
		d.metrics.RecordOperation(req.FieldName, time.Since(start), err)
	}

	if err != nil {
		d.logger.Debug("operation failed",
			zap.String("fieldName", req.FieldName),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// decodeArgs unmarshals and validates field arguments into T
func decodeArgs[T any](d *Dispatcher, raw json.RawMessage) (*T, error) {
	args := new(T)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, args); err != nil {
			return nil, apperrors.NewValidationError("malformed arguments").WithCause(err)
		}
	}
	if err := d.validate.Struct(args); err != nil {
		return nil, validationError(err)
	}
	return args, nil
}

// validationError converts validator failures into a Validation error with
// per-field details.
func validationError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid arguments").WithCause(err)
	}

	details := make(map[string]interface{}, len(fieldErrors))
	for _, fe := range fieldErrors {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid arguments").WithDetails(details)
}
