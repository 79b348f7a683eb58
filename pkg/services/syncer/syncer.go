// Package syncer mirrors a local build output directory into an S3 bucket:
// new and changed files are uploaded, and remote objects with no local
// counterpart are deleted. Unchanged files are skipped by comparing the
// object ETag with the local content hash, so re-running a deployment with
// identical inputs leaves the bucket untouched.
package syncer

import (
	"context"
)

type SyncerI interface {
	Sync(ctx context.Context, localDir, bucket string) (*SyncResult, error)
}

// SyncResult reports what the mirror operation did, keyed by object key.
type SyncResult struct {
	Uploaded []string `json:"uploaded,omitempty"`
	Deleted  []string `json:"deleted,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
}
