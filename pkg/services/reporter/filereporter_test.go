package reporter_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/pkg/services/pipeline"
	"web-deployer/pkg/services/reporter"
)

func TestNewFileReporter(t *testing.T) {
	fileReporter := reporter.NewFileReporter("report.json")
	assert.NotNil(t, fileReporter)
	assert.Equal(t, "report.json", fileReporter.OutputFile)
}

func TestFileReporter_WriteReport_Success(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test-*.json")
	require.NoError(t, err)
	tmpFile.Close() // Close immediately as WriteReport will open/create it
	defer os.Remove(tmpFile.Name())

	fileReporter := reporter.NewFileReporter(tmpFile.Name())
	report := reporter.CreateDummyDeployReport(true)
	ctx := context.Background()

	err = fileReporter.WriteReport(ctx, report)
	require.NoError(t, err)

	// Read the content and verify
	data, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)
	assert.True(t, len(data) > 0)

	var writtenReport pipeline.DeployReport
	err = json.Unmarshal(data, &writtenReport)
	require.NoError(t, err)

	assert.Equal(t, report.StackName, writtenReport.StackName)
	assert.Equal(t, report.BucketName, writtenReport.BucketName)
	assert.Equal(t, report.InvalidationID, writtenReport.InvalidationID)
	require.NotNil(t, writtenReport.Sync)
	assert.Equal(t, []string{"index.html", "assets/app.js"}, writtenReport.Sync.Uploaded)
}

func TestFileReporter_WriteReport_WriteFileError(t *testing.T) {
	tmpDir := t.TempDir()
	nonWritableFile := filepath.Join(tmpDir, "non_writable.json")

	// Create the file first, then make it non-writable
	_, err := os.Create(nonWritableFile)
	require.NoError(t, err)
	err = os.Chmod(nonWritableFile, 0000) // No permissions
	require.NoError(t, err)
	defer os.Chmod(nonWritableFile, 0644) // Restore permissions for cleanup

	fileReporter := reporter.NewFileReporter(nonWritableFile)
	report := reporter.CreateDummyDeployReport(false)
	ctx := context.Background()

	err = fileReporter.WriteReport(ctx, report)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write deploy report to file")
}

func TestFileReporter_WriteReport_CreatesOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "reports", "deploy.json")

	fileReporter := reporter.NewFileReporter(nested)
	report := reporter.CreateDummyDeployReport(false)

	err := fileReporter.WriteReport(context.Background(), report)
	require.NoError(t, err)

	_, err = os.Stat(nested)
	assert.NoError(t, err)
}
