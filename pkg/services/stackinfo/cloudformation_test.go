package stackinfo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/pkg/services/stackinfo"
)

// fakeDescribeStacks implements stackinfo.DescribeStacksAPI.
type fakeDescribeStacks struct {
	output    *cloudformation.DescribeStacksOutput
	err       error
	gotStacks []string
}

func (f *fakeDescribeStacks) DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	f.gotStacks = append(f.gotStacks, aws.ToString(params.StackName))
	return f.output, f.err
}

func TestCloudFormationReader_StackOutputs(t *testing.T) {
	fake := &fakeDescribeStacks{
		output: &cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{
				{
					StackName: aws.String("WebStack-dev"),
					Outputs: []types.Output{
						{OutputKey: aws.String("S3BucketName"), OutputValue: aws.String("my-bucket")},
						{OutputKey: aws.String("DistributionId"), OutputValue: aws.String("E2EXAMPLE")},
						{OutputKey: nil, OutputValue: aws.String("ignored")},
					},
				},
			},
		},
	}
	reader := &stackinfo.CloudFormationReader{Client: fake}

	outputs, err := reader.StackOutputs(context.Background(), "WebStack-dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"WebStack-dev"}, fake.gotStacks)
	assert.Equal(t, stackinfo.Outputs{
		"S3BucketName":   "my-bucket",
		"DistributionId": "E2EXAMPLE",
	}, outputs)
}

func TestCloudFormationReader_StackOutputs_APIError(t *testing.T) {
	fake := &fakeDescribeStacks{err: fmt.Errorf("stack does not exist")}
	reader := &stackinfo.CloudFormationReader{Client: fake}

	_, err := reader.StackOutputs(context.Background(), "WebStack-dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WebStack-dev")
}

func TestCloudFormationReader_StackOutputs_NoStacks(t *testing.T) {
	fake := &fakeDescribeStacks{output: &cloudformation.DescribeStacksOutput{}}
	reader := &stackinfo.CloudFormationReader{Client: fake}

	_, err := reader.StackOutputs(context.Background(), "WebStack-dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCloudFormationReader_StackOutputs_NoOutputs(t *testing.T) {
	fake := &fakeDescribeStacks{
		output: &cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{{StackName: aws.String("WebStack-dev")}},
		},
	}
	reader := &stackinfo.CloudFormationReader{Client: fake}

	_, err := reader.StackOutputs(context.Background(), "WebStack-dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no outputs")
}
