package identity_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/pkg/services/identity"
)

type fakeSTS struct {
	output *sts.GetCallerIdentityOutput
	err    error
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.output, f.err
}

func TestCallerCheck_Whoami(t *testing.T) {
	fake := &fakeSTS{
		output: &sts.GetCallerIdentityOutput{
			Account: aws.String("123456789012"),
			UserId:  aws.String("AIDAEXAMPLE"),
			Arn:     aws.String("arn:aws:iam::123456789012:user/deployer"),
		},
	}
	check := &identity.CallerCheck{Client: fake}

	ident, err := check.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456789012", ident.Account)
	assert.Equal(t, "AIDAEXAMPLE", ident.UserID)
	assert.Equal(t, "arn:aws:iam::123456789012:user/deployer", ident.ARN)
}

func TestCallerCheck_Whoami_NoCredentials(t *testing.T) {
	fake := &fakeSTS{err: fmt.Errorf("no EC2 IMDS role found")}
	check := &identity.CallerCheck{Client: fake}

	_, err := check.Whoami(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS credentials not available")
}
