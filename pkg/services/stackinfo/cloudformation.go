package stackinfo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/pkg/errors"
)

// DescribeStacksAPI is the slice of the CloudFormation client the reader
// needs. Narrowing the client keeps the AWS call mockable in tests.
type DescribeStacksAPI interface {
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// CloudFormationReader implements StackReaderI against the CloudFormation
// DescribeStacks API.
type CloudFormationReader struct {
	Client DescribeStacksAPI
}

// NewCloudFormationReader creates a stack reader backed by a real
// CloudFormation client built from the given AWS configuration.
func NewCloudFormationReader(cfg aws.Config) *CloudFormationReader {
	return &CloudFormationReader{
		Client: cloudformation.NewFromConfig(cfg),
	}
}

// StackOutputs fetches the outputs of the named stack and flattens them into
// a key/value map. A stack that cannot be described, or one that exposes no
// outputs at all, is an error.
func (c *CloudFormationReader) StackOutputs(ctx context.Context, stackName string) (Outputs, error) {
	input := cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	}
	output, err := c.Client.DescribeStacks(ctx, &input)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to describe stack %s", stackName)
	}
	if len(output.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}

	stack := output.Stacks[0]
	outputs := Outputs{}
	for _, entry := range stack.Outputs {
		if entry.OutputKey == nil {
			continue
		}
		outputs[aws.ToString(entry.OutputKey)] = aws.ToString(entry.OutputValue)
	}

	if len(outputs) == 0 {
		return nil, fmt.Errorf("stack %s has no outputs, make sure the web stack is deployed first", stackName)
	}

	return outputs, nil
}
