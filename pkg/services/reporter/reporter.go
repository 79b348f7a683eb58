package reporter

import (
	"context"

	"web-deployer/pkg/services/pipeline"
)

type OutputWriter interface {
	WriteReport(ctx context.Context, report *pipeline.DeployReport) error
}
