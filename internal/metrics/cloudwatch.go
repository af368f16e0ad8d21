package metrics

import (
	"context"
	"log"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
)

// CloudWatch publishes one latency datum per operation, dimensioned by operation and outcome.
// Publishing failures are logged and never reach the caller.
type CloudWatch struct {
	client    aws.CloudWatchAPI
	namespace string
	nowFunc   func() time.Time
}

// NewCloudWatch publishes operation latencies under namespace.
func NewCloudWatch(client aws.CloudWatchAPI, namespace string) *CloudWatch {
	return &CloudWatch{client: client, namespace: namespace, nowFunc: time.Now}
}

func (c *CloudWatch) ObserveOperation(ctx context.Context, operation string, success bool, took time.Duration) {
	_, err := c.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(c.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("OperationLatency"),
				Dimensions: []cwtypes.Dimension{
					{Name: sdkaws.String("Operation"), Value: sdkaws.String(operation)},
					{Name: sdkaws.String("Outcome"), Value: sdkaws.String(outcome(success))},
				},
				Unit:      cwtypes.StandardUnitMilliseconds,
				Value:     sdkaws.Float64(float64(took.Microseconds()) / 1000),
				Timestamp: sdkaws.Time(c.nowFunc()),
			},
		},
	})
	if err != nil {
		log.Printf("[metrics] put metric data for %s: %v", operation, err)
	}
}
