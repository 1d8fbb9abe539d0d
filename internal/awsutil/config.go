package awsutil

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/jordangarrison/aws-tools/internal/config"
)

// LoadConfig builds the SDK configuration the tools hang their clients off.
// Region and profile are optional; whatever is unset falls through to the
// SDK's default resolution chain (environment, shared config, IMDS).
func LoadConfig(ctx context.Context, cfg *config.AWSConfig) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}
	return awsCfg, nil
}
