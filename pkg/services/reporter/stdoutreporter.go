package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"web-deployer/pkg/services/pipeline"
)

// StdoutReporter implements OutputWriter to write reports to standard output.
type StdoutReporter struct{}

// NewStdoutReporter creates a new StdoutReporter instance.
func NewStdoutReporter() *StdoutReporter {
	return &StdoutReporter{}
}

// WriteReport marshals the DeployReport to JSON and prints it to os.Stdout.
func (s *StdoutReporter) WriteReport(ctx context.Context, report *pipeline.DeployReport) error {
	reportBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deploy report to JSON for stdout: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, string(reportBytes))
	if err != nil {
		return fmt.Errorf("failed to write deploy report to stdout: %w", err)
	}

	return nil
}
