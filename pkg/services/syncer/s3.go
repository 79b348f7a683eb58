package syncer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

// deleteBatchSize is the S3 DeleteObjects per-request limit.
const deleteBatchSize = 1000

// indexCacheControl keeps the entry document uncached so a fresh deployment
// is picked up without waiting for the CDN edge TTL.
const indexCacheControl = "no-cache, no-store, must-revalidate"

// S3API is the slice of the S3 client the syncer needs.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Syncer implements SyncerI with mirrored-copy semantics.
type S3Syncer struct {
	Client S3API
}

// NewS3Syncer creates a syncer backed by a real S3 client built from the
// given AWS configuration.
func NewS3Syncer(cfg aws.Config) *S3Syncer {
	return &S3Syncer{
		Client: s3.NewFromConfig(cfg),
	}
}

// Sync mirrors localDir into the bucket. It uploads files whose content hash
// differs from the stored object's ETag, skips identical files, and deletes
// remote objects that are absent locally.
func (s *S3Syncer) Sync(ctx context.Context, localDir, bucket string) (*SyncResult, error) {
	local, err := collectLocalFiles(localDir)
	if err != nil {
		return nil, err
	}
	if len(local) == 0 {
		return nil, fmt.Errorf("local directory %s has no files to sync", localDir)
	}

	remote, err := s.listRemoteObjects(ctx, bucket)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for _, key := range sortedKeys(local) {
		path := local[key]
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		sum := md5.Sum(content)
		digest := hex.EncodeToString(sum[:])
		if etag, ok := remote[key]; ok && etag == digest {
			result.Skipped = append(result.Skipped, key)
			continue
		}

		if err := s.putObject(ctx, bucket, key, content); err != nil {
			return nil, err
		}
		result.Uploaded = append(result.Uploaded, key)
	}

	var stale []string
	for key := range remote {
		if _, ok := local[key]; !ok {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)

	if err := s.deleteObjects(ctx, bucket, stale); err != nil {
		return nil, err
	}
	result.Deleted = stale

	slog.Info("Sync completed",
		"bucket", bucket,
		"uploaded", len(result.Uploaded),
		"skipped", len(result.Skipped),
		"deleted", len(result.Deleted))
	return result, nil
}

func (s *S3Syncer) putObject(ctx context.Context, bucket, key string, content []byte) error {
	input := s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentTypeFor(key)),
	}
	if key == "index.html" {
		input.CacheControl = aws.String(indexCacheControl)
	}

	if _, err := s.Client.PutObject(ctx, &input); err != nil {
		return errors.Wrapf(err, "Failed to upload %s to bucket %s", key, bucket)
	}
	return nil
}

// listRemoteObjects returns object key -> ETag for everything in the bucket.
// Multipart ETags (containing a dash) never match an MD5 digest, which means
// such objects are re-uploaded; the deployer only writes single-part objects
// so this settles after one run.
func (s *S3Syncer) listRemoteObjects(ctx context.Context, bucket string) (map[string]string, error) {
	remote := map[string]string{}
	var continuation *string
	for {
		output, err := s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to list objects in bucket %s", bucket)
		}
		for _, object := range output.Contents {
			key := aws.ToString(object.Key)
			remote[key] = strings.Trim(aws.ToString(object.ETag), `"`)
		}
		if !aws.ToBool(output.IsTruncated) {
			break
		}
		continuation = output.NextContinuationToken
	}
	return remote, nil
}

func (s *S3Syncer) deleteObjects(ctx context.Context, bucket string, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		identifiers := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err := s.Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return errors.Wrapf(err, "Failed to delete stale objects from bucket %s", bucket)
		}
	}
	return nil
}

// collectLocalFiles walks the directory and maps object keys (slash
// separated, relative to dir) to absolute file paths.
func collectLocalFiles(dir string) (map[string]string, error) {
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk local directory %s: %w", dir, err)
	}
	return files, nil
}

func contentTypeFor(key string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(key)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
