package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerCall is the PutMetricData batch ceiling
const maxDatumsPerCall = 20

// CloudWatchAPI is the subset of the CloudWatch API the publisher uses
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics buffers datums and publishes them to CloudWatch in batches.
// Publishing is best-effort; failures are logged and dropped.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// NewMetrics creates a metrics publisher for the given namespace
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordOperation records one resolver operation's latency and outcome
func (m *Metrics) RecordOperation(field string, duration time.Duration, err error) {
	dims := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(field)},
	}

	m.add(types.MetricDatum{
		MetricName: aws.String("OperationLatency"),
		Dimensions: dims,
		Unit:       types.StandardUnitMilliseconds,
		Value:      aws.Float64(float64(duration.Milliseconds())),
		Timestamp:  aws.Time(time.Now()),
	})

	errValue := 0.0
	if err != nil {
		errValue = 1.0
	}
	m.add(types.MetricDatum{
		MetricName: aws.String("OperationErrors"),
		Dimensions: dims,
		Unit:       types.StandardUnitCount,
		Value:      aws.Float64(errValue),
		Timestamp:  aws.Time(time.Now()),
	})
}

func (m *Metrics) add(datum types.MetricDatum) {
	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	shouldFlush := len(m.buffer) >= maxDatumsPerCall
	m.mu.Unlock()

	if shouldFlush {
		m.Flush(context.Background())
	}
}

// Flush publishes all buffered datums
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	batch := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	for len(batch) > 0 {
		n := len(batch)
		if n > maxDatumsPerCall {
			n = maxDatumsPerCall
		}

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch[:n],
		})
		if err != nil {
			m.logger.Warn("failed to publish metrics", zap.Error(err))
		}
		batch = batch[n:]
	}
}
