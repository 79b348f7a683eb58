// Package identity confirms that usable AWS credentials are in place before
// the deployment touches any resource.
package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/pkg/errors"
)

// Identity describes the principal the deployer is running as.
type Identity struct {
	Account string
	UserID  string
	ARN     string
}

type IdentityI interface {
	Whoami(ctx context.Context) (Identity, error)
}

// STSAPI is the slice of the STS client the check needs.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CallerCheck implements IdentityI against STS.
type CallerCheck struct {
	Client STSAPI
}

func NewCallerCheck(cfg aws.Config) *CallerCheck {
	return &CallerCheck{
		Client: sts.NewFromConfig(cfg),
	}
}

// Whoami resolves the caller identity. Failure means credentials are absent
// or expired and the deployment must not proceed.
func (c *CallerCheck) Whoami(ctx context.Context) (Identity, error) {
	output, err := c.Client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, errors.Wrap(err, "AWS credentials not available")
	}
	return Identity{
		Account: aws.ToString(output.Account),
		UserID:  aws.ToString(output.UserId),
		ARN:     aws.ToString(output.Arn),
	}, nil
}
