package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"web-deployer/pkg/services/pipeline"
)

// CsvReporter implements OutputWriter to write the sync manifest to a CSV file.
type CsvReporter struct {
	outputFile string
}

// NewCsvReporter creates a new CsvReporter instance.
// outputFile: The path to the CSV file where the report will be written.
func NewCsvReporter(outputFile string) *CsvReporter {
	return &CsvReporter{
		outputFile: outputFile,
	}
}

// WriteReport converts the DeployReport into CSV format and writes it to the configured file.
// Each row represents one synced object and the action taken on it, or a summary row when
// the sync result is empty.
func (c *CsvReporter) WriteReport(ctx context.Context, report *pipeline.DeployReport) error {
	// Ensure the output directory exists
	outputDir := filepath.Dir(c.outputFile)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s for CSV report: %w", outputDir, err)
		}
	}

	file, err := os.Create(c.outputFile)
	if err != nil {
		return fmt.Errorf("failed to create CSV output file %s: %w", c.outputFile, err)
	}
	defer file.Close()

	csvWriter := csv.NewWriter(file)
	defer csvWriter.Flush()

	header := []string{
		"GeneratedAt",
		"Environment",
		"StackName",
		"BucketName",
		"Status",
		"Action",
		"ObjectKey",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	base := []string{
		report.GeneratedAt.Format(time.RFC3339),
		report.Environment,
		report.StackName,
		report.BucketName,
		report.Status,
	}

	rows := 0
	if report.Sync != nil {
		for _, group := range []struct {
			action string
			keys   []string
		}{
			{"uploaded", report.Sync.Uploaded},
			{"skipped", report.Sync.Skipped},
			{"deleted", report.Sync.Deleted},
		} {
			for _, key := range group.keys {
				row := append(append([]string{}, base...), group.action, key)
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write sync row to CSV: %w", err)
				}
				rows++
			}
		}
	}

	if rows == 0 {
		row := append(append([]string{}, base...), "", "")
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row to CSV: %w", err)
		}
	}

	fmt.Printf("Deploy report successfully written to: %s (CSV format)\n", c.outputFile)
	return nil
}
