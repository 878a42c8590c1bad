// Package mocks provides test doubles for AWS clients
package mocks

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type apiCall[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// DynamoDBClient is an expectation-based mock: each operation delegates to
// its function field, and unset fields fail the test on first call.
type DynamoDBClient struct {
	GetFunc    apiCall[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	PutFunc    apiCall[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	UpdateFunc apiCall[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput]
	DeleteFunc apiCall[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput]
	QueryFunc  apiCall[dynamodb.QueryInput, dynamodb.QueryOutput]
}

// NewDynamoDBClient creates a mock whose operations all fail until replaced
func NewDynamoDBClient(t *testing.T) *DynamoDBClient {
	return &DynamoDBClient{
		GetFunc:    unexpected[dynamodb.GetItemInput, dynamodb.GetItemOutput](t),
		PutFunc:    unexpected[dynamodb.PutItemInput, dynamodb.PutItemOutput](t),
		UpdateFunc: unexpected[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput](t),
		DeleteFunc: unexpected[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput](t),
		QueryFunc:  unexpected[dynamodb.QueryInput, dynamodb.QueryOutput](t),
	}
}

func unexpected[T, U any](t *testing.T) apiCall[T, U] {
	return func(ctx context.Context, params *T, optFns ...func(*dynamodb.Options)) (*U, error) {
		t.Fatal("unexpected DynamoDB call")
		return nil, nil
	}
}

func (m *DynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetFunc(ctx, params, optFns...)
}

func (m *DynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutFunc(ctx, params, optFns...)
}

func (m *DynamoDBClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return m.UpdateFunc(ctx, params, optFns...)
}

func (m *DynamoDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return m.DeleteFunc(ctx, params, optFns...)
}

func (m *DynamoDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}
