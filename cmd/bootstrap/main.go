// The bootstrap command provisions the full table layout, including
// secondary indexes and expiration attributes. Point DYNAMODB_ENDPOINT at
// DynamoDB Local for development.
package main

import (
	"context"
	"log"
	"time"

	"betterreads-backend/application/ports"
	"betterreads-backend/infrastructure/di"
	dynamostore "betterreads-backend/infrastructure/persistence/dynamodb"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := di.InitializeContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Shutdown(ctx)

	schemas := ports.Schemas(container.Config.Tables)
	if err := dynamostore.Provision(ctx, container.DynamoDBClient, schemas, container.Logger); err != nil {
		container.Logger.Fatal("provisioning failed", zap.Error(err))
	}

	container.Logger.Info("all tables provisioned", zap.Int("tables", len(schemas)))
}
