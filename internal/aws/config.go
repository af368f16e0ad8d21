package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// DefaultRegion is used when Settings.Region is empty.
const DefaultRegion = "us-east-1"

// Settings selects the region and, for LocalStack, an endpoint shared by every client.
type Settings struct {
	Region   string
	Endpoint string // e.g. http://localhost:4566; empty uses the public endpoints
}

// LoadAWSConfig loads the shared SDK config for s. Credentials come from the default chain.
func LoadAWSConfig(ctx context.Context, s Settings) (sdkaws.Config, error) {
	region := s.Region
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if s.Endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(s.Endpoint)
	}

	return cfg, nil
}
