// Package cdn handles CDN cache invalidation for the deployed site. After a
// sync the distribution's cached copies are stale; the invalidator issues a
// wildcard invalidation and can poll its status until completion.
package cdn

import (
	"context"
)

type InvalidatorI interface {
	// DistributionIDForDomain resolves a distribution id from its public
	// domain name or one of its aliases.
	DistributionIDForDomain(ctx context.Context, domain string) (string, error)
	// Invalidate requests a wildcard invalidation and returns its tracking id.
	Invalidate(ctx context.Context, distributionID string) (string, error)
	// Wait polls the invalidation status until it completes or the configured
	// maximum wait elapses.
	Wait(ctx context.Context, distributionID, invalidationID string) error
}
