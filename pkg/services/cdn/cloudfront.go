package cdn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/pkg/errors"
)

const (
	// DefaultPollInterval is the pause between invalidation status polls.
	DefaultPollInterval = 10 * time.Second
	// DefaultMaxWait bounds how long Wait blocks for an invalidation.
	DefaultMaxWait = 5 * time.Minute

	invalidationCompleted = "Completed"
)

// CloudFrontAPI is the slice of the CloudFront client the invalidator needs.
type CloudFrontAPI interface {
	ListDistributions(ctx context.Context, params *cloudfront.ListDistributionsInput, optFns ...func(*cloudfront.Options)) (*cloudfront.ListDistributionsOutput, error)
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
	GetInvalidation(ctx context.Context, params *cloudfront.GetInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetInvalidationOutput, error)
}

// CloudFrontInvalidator implements InvalidatorI against the CloudFront API.
type CloudFrontInvalidator struct {
	Client       CloudFrontAPI
	PollInterval time.Duration
	MaxWait      time.Duration

	// now feeds the caller reference; injectable for tests.
	now func() time.Time
}

// NewCloudFrontInvalidator creates an invalidator with default poll settings
// backed by a real CloudFront client.
func NewCloudFrontInvalidator(cfg aws.Config) *CloudFrontInvalidator {
	return &CloudFrontInvalidator{
		Client:       cloudfront.NewFromConfig(cfg),
		PollInterval: DefaultPollInterval,
		MaxWait:      DefaultMaxWait,
		now:          time.Now,
	}
}

// DistributionIDForDomain walks the account's distributions and matches the
// domain against the CloudFront-issued domain name or any configured alias.
func (c *CloudFrontInvalidator) DistributionIDForDomain(ctx context.Context, domain string) (string, error) {
	var marker *string
	for {
		output, err := c.Client.ListDistributions(ctx, &cloudfront.ListDistributionsInput{Marker: marker})
		if err != nil {
			return "", errors.Wrap(err, "Failed to list distributions")
		}
		list := output.DistributionList
		if list == nil {
			break
		}

		for _, dist := range list.Items {
			if aws.ToString(dist.DomainName) == domain {
				return aws.ToString(dist.Id), nil
			}
			if dist.Aliases == nil {
				continue
			}
			for _, alias := range dist.Aliases.Items {
				if alias == domain {
					return aws.ToString(dist.Id), nil
				}
			}
		}

		if !aws.ToBool(list.IsTruncated) {
			break
		}
		marker = list.NextMarker
	}
	return "", fmt.Errorf("no distribution found for domain %s", domain)
}

// Invalidate creates a wildcard invalidation for every path on the
// distribution. The caller reference only needs to be unique per request.
func (c *CloudFrontInvalidator) Invalidate(ctx context.Context, distributionID string) (string, error) {
	clock := c.now
	if clock == nil {
		clock = time.Now
	}
	reference := fmt.Sprintf("webdeployer-%s-%d", distributionID, clock().UnixNano())

	output, err := c.Client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(reference),
			Paths: &types.Paths{
				Items:    []string{"/*"},
				Quantity: aws.Int32(1),
			},
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "Failed to create invalidation for distribution %s", distributionID)
	}
	if output.Invalidation == nil || output.Invalidation.Id == nil {
		return "", fmt.Errorf("invalidation response for distribution %s carried no id", distributionID)
	}

	id := aws.ToString(output.Invalidation.Id)
	slog.Info("Invalidation created", "distribution", distributionID, "invalidation", id)
	return id, nil
}

// Wait polls the invalidation status at PollInterval until it reports
// Completed. It returns a timeout error once MaxWait has elapsed without
// completion, and respects context cancellation between polls.
func (c *CloudFrontInvalidator) Wait(ctx context.Context, distributionID, invalidationID string) error {
	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	maxWait := c.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	var elapsed time.Duration
	for {
		output, err := c.Client.GetInvalidation(ctx, &cloudfront.GetInvalidationInput{
			DistributionId: aws.String(distributionID),
			Id:             aws.String(invalidationID),
		})
		if err != nil {
			return errors.Wrapf(err, "Failed to get invalidation %s", invalidationID)
		}

		status := ""
		if output.Invalidation != nil {
			status = aws.ToString(output.Invalidation.Status)
		}
		slog.Info("Invalidation status", "invalidation", invalidationID, "status", status)

		if status == invalidationCompleted {
			return nil
		}
		if elapsed >= maxWait {
			return fmt.Errorf("invalidation %s did not complete within %s", invalidationID, maxWait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
			elapsed += interval
		}
	}
}
