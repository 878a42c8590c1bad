package di

import (
	"context"
	"fmt"

	"betterreads-backend/application/mapper"
	"betterreads-backend/application/ports"
	"betterreads-backend/application/resolver"
	"betterreads-backend/infrastructure/config"
	dynamostore "betterreads-backend/infrastructure/persistence/dynamodb"
	"betterreads-backend/pkg/auth"
	"betterreads-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, instrumented for tracing when
// enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		observability.InstrumentAWSClients(&awsCfg)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at DynamoDB Local
// when an endpoint override is configured
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates a metrics publisher, or nil when metrics are
// disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("BetterReads/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideTracer creates a tracer, or nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("betterreads-backend")
}

// ProvideStore creates the DynamoDB-backed store
func ProvideStore(client *awsdynamodb.Client, logger *zap.Logger) ports.Store {
	return dynamostore.NewStore(client, logger)
}

// ProvideMapper creates the entity mapper over the configured tables
func ProvideMapper(store ports.Store, cfg *config.Config, logger *zap.Logger) *mapper.Mapper {
	return mapper.NewMapper(store, cfg.Tables, logger)
}

// ProvideDispatcher creates the resolver dispatcher
func ProvideDispatcher(m *mapper.Mapper, logger *zap.Logger, metrics *observability.Metrics) *resolver.Dispatcher {
	if metrics == nil {
		return resolver.NewDispatcher(m, logger, nil)
	}
	return resolver.NewDispatcher(m, logger, metrics)
}

// ProvideJWTValidator creates the token validator for the HTTP surface
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}
