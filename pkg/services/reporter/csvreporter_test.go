package reporter_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/pkg/services/reporter"
)

func readCsv(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCsvReporter_WriteReport_SyncManifest(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "deploy.csv")
	csvReporter := reporter.NewCsvReporter(outputFile)
	report := reporter.CreateDummyDeployReport(true)

	err := csvReporter.WriteReport(context.Background(), report)
	require.NoError(t, err)

	rows := readCsv(t, outputFile)
	// header + 2 uploaded + 1 skipped + 1 deleted
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"GeneratedAt", "Environment", "StackName", "BucketName", "Status", "Action", "ObjectKey"}, rows[0])

	assert.Equal(t, "uploaded", rows[1][5])
	assert.Equal(t, "index.html", rows[1][6])
	assert.Equal(t, "skipped", rows[3][5])
	assert.Equal(t, "deleted", rows[4][5])
	assert.Equal(t, "assets/old.js", rows[4][6])

	// Every row carries the run metadata
	for _, row := range rows[1:] {
		assert.Equal(t, "dev", row[1])
		assert.Equal(t, "WebStack-dev", row[2])
		assert.Equal(t, "webstack-dev-frontend", row[3])
		assert.Equal(t, "DEPLOYED", row[4])
	}
}

func TestCsvReporter_WriteReport_EmptySyncWritesSummaryRow(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "deploy.csv")
	csvReporter := reporter.NewCsvReporter(outputFile)
	report := reporter.CreateDummyDeployReport(false)

	err := csvReporter.WriteReport(context.Background(), report)
	require.NoError(t, err)

	rows := readCsv(t, outputFile)
	require.Len(t, rows, 2)
	assert.Equal(t, "WebStack-dev", rows[1][2])
	assert.Equal(t, "", rows[1][5])
	assert.Equal(t, "", rows[1][6])
}

func TestCsvReporter_WriteReport_CreatesOutputDir(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "nested", "deploy.csv")
	csvReporter := reporter.NewCsvReporter(outputFile)

	err := csvReporter.WriteReport(context.Background(), reporter.CreateDummyDeployReport(false))
	require.NoError(t, err)

	_, statErr := os.Stat(outputFile)
	assert.NoError(t, statErr)
}
