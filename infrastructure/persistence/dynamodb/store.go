// Package dynamodb implements the key-value store contract on Amazon
// DynamoDB. Field-level update directives are rendered through the SDK's
// expression builder, so the shape of each UpdateItem request varies with
// the directives supplied — mandatory assignments first, then one per
// optional field present in the caller's input.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"betterreads-backend/application/ports"
	apperrors "betterreads-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// Client is the subset of the DynamoDB API the store uses
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements ports.Store against DynamoDB tables
type Store struct {
	client Client
	logger *zap.Logger
}

// NewStore creates a DynamoDB-backed store
func NewStore(client Client, logger *zap.Logger) *Store {
	return &Store{client: client, logger: logger}
}

var _ ports.Store = (*Store)(nil)

// Get retrieves a single item by primary key
func (s *Store) Get(ctx context.Context, table string, key ports.Key) (ports.Item, error) {
	av, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       av,
	})
	if err != nil {
		return nil, s.translateError("GetItem", table, err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("item")
	}

	return unmarshalItem(result.Item)
}

// Put fully replaces the addressed item, creating it if absent
func (s *Store) Put(ctx context.Context, table string, key ports.Key, attrs ports.Item) (ports.Item, error) {
	merged := make(ports.Item, len(key)+len(attrs))
	for k, v := range attrs {
		merged[k] = v
	}
	for k, v := range key {
		merged[k] = v
	}

	av, err := attributevalue.MarshalMap(map[string]any(merged))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal item").WithCause(err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return nil, s.translateError("PutItem", table, err)
	}

	s.logger.Debug("item written",
		zap.String("table", table),
		zap.Int("attributes", len(merged)),
	)

	return merged, nil
}

// Update applies the ordered directives as one atomic UpdateItem call.
// The item must already exist; updating a missing key fails NotFound rather
// than creating a partial item.
func (s *Store) Update(ctx context.Context, table string, key ports.Key, directives []ports.Directive) (ports.Item, error) {
	if len(directives) == 0 {
		return nil, apperrors.NewInternalError("update requires at least one directive")
	}

	av, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	update, err := buildUpdate(directives)
	if err != nil {
		return nil, err
	}

	// Condition on key existence; DynamoDB would otherwise create a
	// partial item on update of a missing key.
	condition := keyExistsCondition(key)

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update expression").WithCause(err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       av,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, s.translateError("UpdateItem", table, err)
	}

	return unmarshalItem(result.Attributes)
}

// Delete removes the addressed item; deleting a missing key fails NotFound
func (s *Store) Delete(ctx context.Context, table string, key ports.Key) error {
	av, err := marshalKey(key)
	if err != nil {
		return err
	}

	expr, err := expression.NewBuilder().
		WithCondition(keyExistsCondition(key)).
		Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build condition expression").WithCause(err)
	}

	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(table),
		Key:                       av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		return s.translateError("DeleteItem", table, err)
	}

	return nil
}

// Query scans one partition of the primary key or a secondary index
func (s *Store) Query(ctx context.Context, table string, q ports.Query) ([]ports.Item, error) {
	keyCondition := expression.Key(q.PartitionName).Equal(expression.Value(q.PartitionValue))
	if q.SortName != "" {
		keyCondition = keyCondition.And(
			expression.Key(q.SortName).Equal(expression.Value(q.SortValue)))
	}

	builder := expression.NewBuilder().WithKeyCondition(keyCondition)
	if q.FilterNotExists != "" {
		builder = builder.WithFilter(expression.AttributeNotExists(expression.Name(q.FilterNotExists)))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query expression").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!q.Descending),
	}
	if q.Index != "" {
		input.IndexName = aws.String(q.Index)
	}
	if q.FilterNotExists != "" {
		input.FilterExpression = expr.Filter()
	}
	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, s.translateError("Query", table, err)
	}

	items := make([]ports.Item, 0, len(result.Items))
	for _, raw := range result.Items {
		item, err := unmarshalItem(raw)
		if err != nil {
			s.logger.Warn("failed to unmarshal item",
				zap.String("table", table),
				zap.Error(err),
			)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// buildUpdate renders the directive list into an update expression
func buildUpdate(directives []ports.Directive) (expression.UpdateBuilder, error) {
	var update expression.UpdateBuilder

	for _, d := range directives {
		switch d.Kind {
		case ports.DirectiveSet:
			update = update.Set(expression.Name(d.Name), expression.Value(d.Value))
		case ports.DirectiveSetIfAbsent:
			update = update.Set(
				expression.Name(d.Name),
				expression.IfNotExists(expression.Name(d.Name), expression.Value(d.Value)),
			)
		case ports.DirectiveSetNested:
			update = update.Set(nestedPath(d), expression.Value(d.Value))
		case ports.DirectiveRemoveNested:
			update = update.Remove(nestedPath(d))
		default:
			return update, apperrors.NewInternalError(fmt.Sprintf("unknown directive kind %d", d.Kind))
		}
	}

	return update, nil
}

// nestedPath addresses one map entry. The nested key is a single path
// element even when it contains dots, so ids like "978.0441" stay a map key
// rather than splitting into path segments.
func nestedPath(d ports.Directive) expression.NameBuilder {
	return expression.Name(d.Name).AppendName(expression.NameNoDotSplit(d.NestedKey))
}

// keyExistsCondition requires every key attribute to already exist
func keyExistsCondition(key ports.Key) expression.ConditionBuilder {
	var condition expression.ConditionBuilder
	first := true
	for name := range key {
		exists := expression.AttributeExists(expression.Name(name))
		if first {
			condition = exists
			first = false
		} else {
			condition = condition.And(exists)
		}
	}
	return condition
}

func marshalKey(key ports.Key) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal key").WithCause(err)
	}
	return av, nil
}

func unmarshalItem(raw map[string]types.AttributeValue) (ports.Item, error) {
	var item map[string]any
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal item").WithCause(err)
	}
	return item, nil
}

// translateError maps SDK failures onto the application error kinds. The
// only condition this store attaches is key existence, so a failed
// conditional check means the addressed item is missing.
func (s *Store) translateError(operation, table string, err error) error {
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return apperrors.NewNotFoundError("item")
	}

	var tableMissing *types.ResourceNotFoundException
	if errors.As(err, &tableMissing) {
		return apperrors.NewUnavailableError("dynamodb", err).WithCode("TableNotFound")
	}

	s.logger.Error("DynamoDB call failed",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Error(err),
	)

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewUnavailableError("dynamodb", err).WithCode(apiErr.ErrorCode())
	}

	return apperrors.NewUnavailableError("dynamodb", err)
}
