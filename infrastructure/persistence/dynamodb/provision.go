package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"betterreads-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProvisionClient is the subset of the DynamoDB API table provisioning uses
type ProvisionClient interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	UpdateTimeToLive(ctx context.Context, params *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

// Provision creates every collection in the layout, including secondary
// indexes and expiration attributes. Existing tables are left as they are.
// Intended for DynamoDB Local and fresh environments.
func Provision(ctx context.Context, client ProvisionClient, schemas []ports.TableSchema, logger *zap.Logger) error {
	for _, schema := range schemas {
		if err := provisionTable(ctx, client, schema, logger); err != nil {
			return fmt.Errorf("provisioning table %s: %w", schema.Name, err)
		}
	}
	return nil
}

func provisionTable(ctx context.Context, client ProvisionClient, schema ports.TableSchema, logger *zap.Logger) error {
	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(schema.Name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: attributeDefinitions(schema),
		KeySchema:            keySchema(schema.PartitionKey, schema.SortKey),
	}

	for _, index := range schema.Indexes {
		input.GlobalSecondaryIndexes = append(input.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName: aws.String(index.Name),
			KeySchema: keySchema(index.PartitionKey, index.SortKey),
			Projection: &types.Projection{
				ProjectionType: types.ProjectionTypeAll,
			},
		})
	}

	if _, err := client.CreateTable(ctx, input); err != nil {
		var exists *types.ResourceInUseException
		if errors.As(err, &exists) {
			logger.Debug("table already exists", zap.String("table", schema.Name))
			return nil
		}
		return err
	}

	if err := waitForActive(ctx, client, schema.Name); err != nil {
		return err
	}

	if schema.TTLAttribute != "" {
		if _, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
			TableName: aws.String(schema.Name),
			TimeToLiveSpecification: &types.TimeToLiveSpecification{
				AttributeName: aws.String(schema.TTLAttribute),
				Enabled:       aws.Bool(true),
			},
		}); err != nil {
			return err
		}
	}

	logger.Info("table created",
		zap.String("table", schema.Name),
		zap.Int("indexes", len(schema.Indexes)),
	)
	return nil
}

func waitForActive(ctx context.Context, client ProvisionClient, table string) error {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		})
		if err == nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return fmt.Errorf("table %s not active after 30s", table)
}

// attributeDefinitions collects the key attributes of the primary key and
// every index, deduplicated. All key attributes in this data model are
// strings.
func attributeDefinitions(schema ports.TableSchema) []types.AttributeDefinition {
	seen := make(map[string]bool)
	var defs []types.AttributeDefinition

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		defs = append(defs, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}

	add(schema.PartitionKey)
	add(schema.SortKey)
	for _, index := range schema.Indexes {
		add(index.PartitionKey)
		add(index.SortKey)
	}
	return defs
}

func keySchema(partitionKey, sortKey string) []types.KeySchemaElement {
	elements := []types.KeySchemaElement{
		{AttributeName: aws.String(partitionKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		elements = append(elements, types.KeySchemaElement{
			AttributeName: aws.String(sortKey),
			KeyType:       types.KeyTypeRange,
		})
	}
	return elements
}
