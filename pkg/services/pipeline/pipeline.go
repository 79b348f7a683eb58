// Package pipeline orchestrates the deployment sequence: stack outputs,
// build, mirrored sync, cache invalidation and verification. Every step is
// fatal except invalidation and verification, which degrade to warnings once
// the upload has already succeeded.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"web-deployer/pkg/services/artifact"
	"web-deployer/pkg/services/cdn"
	"web-deployer/pkg/services/stackinfo"
	"web-deployer/pkg/services/syncer"
	"web-deployer/pkg/services/verifier"
)

// DeployReport summarizes one pipeline run.
type DeployReport struct {
	Environment        string             `json:"environment,omitempty"`
	StackName          string             `json:"stack_name,omitempty"`
	BucketName         string             `json:"bucket_name,omitempty"`
	DistributionID     string             `json:"distribution_id,omitempty"`
	DistributionDomain string             `json:"distribution_domain,omitempty"`
	SiteURL            string             `json:"site_url,omitempty"`
	InvalidationID     string             `json:"invalidation_id,omitempty"`
	Sync               *syncer.SyncResult `json:"sync,omitempty"`
	Warnings           []string           `json:"warnings,omitempty"`
	GeneratedAt        time.Time          `json:"generated_at"`
	Status             string             `json:"status,omitempty"`
}

// Options selects what a run does. StackName must already be resolved from
// the environment label by the caller.
type Options struct {
	Environment      string
	StackName        string
	FrontendDir      string
	DistDir          string
	BuildEnv         map[string]string
	SkipBuild        bool
	SkipInvalidation bool
	NoWait           bool
	SkipVerify       bool
}

// Pipeline wires the deployment services together.
type Pipeline struct {
	Stack    stackinfo.StackReaderI
	Builder  artifact.BuilderI
	Syncer   syncer.SyncerI
	CDN      cdn.InvalidatorI
	Verifier verifier.VerifierI
}

// Run executes the full deployment sequence and returns a report of what
// happened. A non-nil error means the deployment did not reach the bucket;
// post-upload failures surface as report warnings instead.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*DeployReport, error) {
	report := &DeployReport{
		Environment: opts.Environment,
		StackName:   opts.StackName,
		GeneratedAt: time.Now(),
	}

	outputs, err := p.Stack.StackOutputs(ctx, opts.StackName)
	if err != nil {
		return nil, err
	}

	target, err := outputs.DeploymentTarget()
	if err != nil {
		return nil, err
	}
	report.BucketName = target.BucketName
	report.DistributionID = target.DistributionID
	report.DistributionDomain = target.DistributionDomain
	report.SiteURL = target.SiteURL
	slog.Info("Resolved deployment target",
		"bucket", target.BucketName,
		"distribution", target.DistributionID,
		"domain", target.DistributionDomain)

	if opts.SkipBuild {
		slog.Info("Skipping frontend build")
		if err := artifact.EnsureBuildOutput(opts.DistDir); err != nil {
			return nil, err
		}
	} else {
		if err := p.Builder.Build(ctx, artifact.BuildOptions{
			FrontendDir: opts.FrontendDir,
			OutputDir:   opts.DistDir,
			Env:         opts.BuildEnv,
		}); err != nil {
			return nil, err
		}
	}

	syncResult, err := p.Syncer.Sync(ctx, opts.DistDir, target.BucketName)
	if err != nil {
		return nil, err
	}
	report.Sync = syncResult

	if opts.SkipInvalidation {
		slog.Info("Skipping cache invalidation")
	} else {
		p.invalidate(ctx, target, opts, report)
	}

	if !opts.SkipVerify && p.Verifier != nil && target.SiteURL != "" {
		if err := p.Verifier.Verify(ctx, target.SiteURL); err != nil {
			p.warn(report, fmt.Sprintf("deployment verification: %v", err))
		} else {
			slog.Info("Deployment verification successful", "url", target.SiteURL)
		}
	}

	report.Status = "DEPLOYED"
	return report, nil
}

// invalidate resolves the distribution id if needed, requests the
// invalidation and optionally waits for it. The upload already succeeded at
// this point, so nothing in here aborts the run.
func (p *Pipeline) invalidate(ctx context.Context, target stackinfo.DeploymentTarget, opts Options, report *DeployReport) {
	distributionID := target.DistributionID
	if distributionID == "" {
		var err error
		distributionID, err = p.CDN.DistributionIDForDomain(ctx, target.DistributionDomain)
		if err != nil {
			p.warn(report, fmt.Sprintf("distribution lookup: %v", err))
			return
		}
		report.DistributionID = distributionID
	}

	invalidationID, err := p.CDN.Invalidate(ctx, distributionID)
	if err != nil {
		p.warn(report, fmt.Sprintf("cache invalidation: %v", err))
		return
	}
	report.InvalidationID = invalidationID

	if opts.NoWait {
		return
	}
	if err := p.CDN.Wait(ctx, distributionID, invalidationID); err != nil {
		p.warn(report, fmt.Sprintf("invalidation wait: %v", err))
	}
}

func (p *Pipeline) warn(report *DeployReport, message string) {
	slog.Warn(message)
	report.Warnings = append(report.Warnings, message)
}
