// Package di wires the application together. The container is initialized
// explicitly, provider by provider, so the whole dependency graph is visible
// in one place.
package di

import (
	"context"

	"betterreads-backend/application/mapper"
	"betterreads-backend/application/ports"
	"betterreads-backend/application/resolver"
	"betterreads-backend/infrastructure/config"
	"betterreads-backend/pkg/auth"
	"betterreads-backend/pkg/observability"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DynamoDBClient *awsdynamodb.Client
	Store          ports.Store
	Mapper         *mapper.Mapper
	Dispatcher     *resolver.Dispatcher
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	JWTValidator   *auth.JWTValidator
}

// InitializeContainer builds the full dependency graph from environment
// configuration
func InitializeContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg, cfg)
	metrics := ProvideMetrics(ProvideCloudWatchClient(awsCfg), cfg, logger)
	store := ProvideStore(dynamoClient, logger)
	m := ProvideMapper(store, cfg, logger)
	dispatcher := ProvideDispatcher(m, logger, metrics)

	var validator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		validator, err = ProvideJWTValidator(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		DynamoDBClient: dynamoClient,
		Store:          store,
		Mapper:         m,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Tracer:         ProvideTracer(cfg),
		JWTValidator:   validator,
	}, nil
}

// Shutdown flushes buffered telemetry and the logger
func (c *Container) Shutdown(ctx context.Context) {
	if c.Metrics != nil {
		c.Metrics.Flush(ctx)
	}
	_ = c.Logger.Sync()
}
