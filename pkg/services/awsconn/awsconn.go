// Package awsconn builds the shared AWS SDK configuration used by every
// service client in the deployer.
package awsconn

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	aConfig "github.com/aws/aws-sdk-go-v2/config"

	"web-deployer/config"
)

// NewConfig initializes the AWS SDK config with the discovered credential
// and config files, the selected profile and region, and an optional
// endpoint override for local development against a LocalStack-style stack.
func NewConfig(ctx context.Context, cfg *config.AWSConfig) (aws.Config, error) {
	opts := []func(*aConfig.LoadOptions) error{}

	if len(cfg.CredentialPath) > 0 {
		opts = append(opts, aConfig.WithSharedCredentialsFiles(cfg.CredentialPath))
	}
	if len(cfg.ConfigPath) > 0 {
		opts = append(opts, aConfig.WithSharedConfigFiles(cfg.ConfigPath))
	}
	if cfg.ProfileName != "" {
		opts = append(opts, aConfig.WithSharedConfigProfile(cfg.ProfileName))
	}
	if cfg.Region != "" {
		opts = append(opts, aConfig.WithRegion(cfg.Region))
	}
	if endpoint := os.Getenv("WEBDEPLOY_ENDPOINT_URL"); endpoint != "" {
		opts = append(opts, aConfig.WithBaseEndpoint(endpoint))
	}

	return aConfig.LoadDefaultConfig(ctx, opts...)
}
