package stackinfo

import (
	"fmt"
	"strings"
)

// Outputs is the key/value mapping a deployed stack exposes. It is fetched
// fresh on every run and never persisted.
type Outputs map[string]string

// Require returns the value for an exact output key, or an error naming the
// key when it is absent or empty.
func (o Outputs) Require(key string) (string, error) {
	value, ok := o[key]
	if !ok || value == "" {
		return "", fmt.Errorf("required stack output %q is missing", key)
	}
	return value, nil
}

// FindContaining returns the value of the first output whose key contains the
// given substring. Stacks generated by CDK suffix output keys with hashes, so
// exact key lookups are not always possible.
func (o Outputs) FindContaining(substr string) (string, bool) {
	for key, value := range o {
		if strings.Contains(key, substr) && value != "" {
			return value, true
		}
	}
	return "", false
}

// DeploymentTarget identifies where the build artifacts go and which
// distribution fronts them. DistributionID or DistributionDomain may be
// empty individually; target resolution guarantees at least one is set.
type DeploymentTarget struct {
	BucketName         string
	DistributionID     string
	DistributionDomain string
	SiteURL            string
}

// DeploymentTarget resolves the bucket and distribution identifiers from the
// stack outputs. Exact keys are preferred, with substring fallbacks for
// hash-suffixed output names. A missing bucket, or a stack exposing neither a
// distribution id nor a domain, is an error before any upload is attempted.
func (o Outputs) DeploymentTarget() (DeploymentTarget, error) {
	target := DeploymentTarget{}

	bucket, ok := o["S3BucketName"]
	if !ok || bucket == "" {
		bucket, ok = o.FindContaining("BucketName")
	}
	if !ok || bucket == "" {
		return target, fmt.Errorf("stack outputs do not contain a bucket name (expected S3BucketName or a key containing BucketName)")
	}
	target.BucketName = bucket

	if id, ok := o["DistributionId"]; ok && id != "" {
		target.DistributionID = id
	} else if id, ok := o.FindContaining("DistributionId"); ok {
		target.DistributionID = id
	}

	if domain, ok := o.FindContaining("DistributionDomainName"); ok {
		target.DistributionDomain = domain
	} else if url, ok := o["CloudFrontURL"]; ok && url != "" {
		target.DistributionDomain = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
		target.DistributionDomain = strings.TrimSuffix(target.DistributionDomain, "/")
	}

	if target.DistributionID == "" && target.DistributionDomain == "" {
		return target, fmt.Errorf("stack outputs do not identify a distribution (expected DistributionId or DistributionDomainName)")
	}

	if target.DistributionDomain != "" {
		target.SiteURL = "https://" + target.DistributionDomain + "/"
	}

	return target, nil
}
