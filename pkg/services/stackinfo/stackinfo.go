// Package stackinfo retrieves the outputs published by the infrastructure
// stack that provisions the web hosting resources. The deployer treats the
// stack as read-only: it only ever asks for the output key/value pairs that
// name the bucket and the CDN distribution.
package stackinfo

import (
	"context"
)

type StackReaderI interface {
	StackOutputs(ctx context.Context, stackName string) (Outputs, error)
}
