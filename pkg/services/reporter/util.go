package reporter

import (
	"time"

	"web-deployer/pkg/services/pipeline"
	"web-deployer/pkg/services/syncer"
)

// Helper function to create a dummy DeployReport for testing
func CreateDummyDeployReport(withSync bool) *pipeline.DeployReport {
	report := &pipeline.DeployReport{
		GeneratedAt:        time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC),
		Environment:        "dev",
		StackName:          "WebStack-dev",
		BucketName:         "webstack-dev-frontend",
		DistributionID:     "E2EXAMPLE",
		DistributionDomain: "d111111abcdef8.cloudfront.net",
		SiteURL:            "https://d111111abcdef8.cloudfront.net/",
		InvalidationID:     "I3EXAMPLE",
		Status:             "DEPLOYED",
	}

	if withSync {
		report.Sync = &syncer.SyncResult{
			Uploaded: []string{"index.html", "assets/app.js"},
			Skipped:  []string{"favicon.ico"},
			Deleted:  []string{"assets/old.js"},
		}
	}
	return report
}
