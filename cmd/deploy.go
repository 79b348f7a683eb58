package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"web-deployer/config"
	"web-deployer/pkg/services/artifact"
	"web-deployer/pkg/services/awsconn"
	"web-deployer/pkg/services/cdn"
	"web-deployer/pkg/services/identity"
	"web-deployer/pkg/services/pipeline"
	"web-deployer/pkg/services/reporter"
	"web-deployer/pkg/services/stackinfo"
	"web-deployer/pkg/services/syncer"
	"web-deployer/pkg/services/verifier"
)

var validEnvironments = []string{"dev", "staging", "prod", "test"}

type deployCmd struct {
	Environment      string
	StackName        string
	FrontendDir      string
	DistDir          string
	OutputPath       string
	SkipBuild        bool
	SkipInvalidation bool
	NoWait           bool
	SkipVerify       bool
	Cmd              *cobra.Command
	cfg              *config.Config
	ctx              context.Context
}

func NewDeployCmd(ctx context.Context, cfg *config.Config) *deployCmd {
	dc := &deployCmd{
		cfg: cfg,
		ctx: ctx,
	}
	dc.Cmd = &cobra.Command{
		Use:     "deploy",
		Aliases: []string{"d"},
		Short:   "Build the frontend and deploy it to the environment's S3 bucket and CloudFront distribution",
		Long:    "deploy resolves the hosting resources from the environment's stack outputs, builds the frontend, mirrors the build output into the bucket, invalidates the CDN cache and verifies the site responds.",
		RunE:    dc.Run,
	}

	dc.Cmd.Flags().StringVar(&dc.Environment, "env", "", "Target deployment environment ("+strings.Join(validEnvironments, ", ")+")")
	dc.Cmd.Flags().StringVar(&dc.StackName, "stack", "", "Override the stack name derived from the environment")
	dc.Cmd.Flags().StringVar(&dc.FrontendDir, "frontend", "frontend", "Path to the frontend project directory")
	dc.Cmd.Flags().StringVar(&dc.DistDir, "dist", "", "Path to the build output directory (default <frontend>/dist)")
	dc.Cmd.Flags().StringVar(&dc.OutputPath, "output-file", "", "Write the deploy report to a file instead of stdout (.csv for a sync manifest)")
	dc.Cmd.Flags().BoolVar(&dc.SkipBuild, "skip-build", false, "Skip the frontend build and use the existing build output")
	dc.Cmd.Flags().BoolVar(&dc.SkipInvalidation, "skip-invalidation", false, "Skip the CloudFront cache invalidation")
	dc.Cmd.Flags().BoolVar(&dc.NoWait, "no-wait", false, "Do not poll the invalidation until it completes")
	dc.Cmd.Flags().BoolVar(&dc.SkipVerify, "skip-verify", false, "Skip the post-deployment HTTP check")

	return dc
}

func (d *deployCmd) Run(cmd *cobra.Command, args []string) error {
	d.Environment = resolveEnvironment(d.Environment, d.cfg)
	if err := validateEnvironment(d.Environment); err != nil {
		slog.Error("Invalid environment selector", "error", err.Error())
		return err
	}

	stackName := resolveStackName(d.Environment, d.StackName)
	distDir := d.DistDir
	if distDir == "" {
		distDir = filepath.Join(d.FrontendDir, "dist")
	}

	awsCfg, err := awsConfigFor(d.ctx, d.cfg)
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err.Error())
		return err
	}

	ident, err := identity.NewCallerCheck(awsCfg).Whoami(d.ctx)
	if err != nil {
		slog.Error("AWS credentials not available", "error", err.Error())
		return err
	}
	slog.Info("Deploying",
		"environment", d.Environment,
		"stack", stackName,
		"account", ident.Account,
		"user", ident.UserID)

	buildEnv, err := artifact.BuildEnv(".", d.Environment, awsCfg.Region)
	if err != nil {
		slog.Error("Failed to assemble build environment", "error", err.Error())
		return err
	}

	pl := pipeline.Pipeline{
		Stack:    stackinfo.NewCloudFormationReader(awsCfg),
		Builder:  artifact.NewNpmBuilder(nil),
		Syncer:   syncer.NewS3Syncer(awsCfg),
		CDN:      cdn.NewCloudFrontInvalidator(awsCfg),
		Verifier: verifier.NewHTTPVerifier(),
	}

	report, err := pl.Run(d.ctx, pipeline.Options{
		Environment:      d.Environment,
		StackName:        stackName,
		FrontendDir:      d.FrontendDir,
		DistDir:          distDir,
		BuildEnv:         buildEnv,
		SkipBuild:        d.SkipBuild,
		SkipInvalidation: d.SkipInvalidation,
		NoWait:           d.NoWait,
		SkipVerify:       d.SkipVerify,
	})
	if err != nil {
		slog.Error("Deployment failed", "error", err.Error())
		return err
	}

	if err := reporterFor(d.OutputPath).WriteReport(d.ctx, report); err != nil {
		slog.Error("Failed to write deploy report", "error", err.Error())
		return err
	}

	if report.SiteURL != "" {
		slog.Info("Deployment completed", "url", report.SiteURL)
		slog.Info("CloudFront changes may take several minutes to propagate globally")
	} else {
		slog.Info("Deployment completed")
	}
	return nil
}

func validateEnvironment(environment string) error {
	for _, candidate := range validEnvironments {
		if environment == candidate {
			return nil
		}
	}
	return fmt.Errorf("environment must be one of %s, got %q", strings.Join(validEnvironments, ", "), environment)
}

// resolveEnvironment prefers the flag value over the default persisted in the
// profiles file.
func resolveEnvironment(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Environment
}

// resolveStackName derives the stack name from the environment label unless
// an explicit override is given.
func resolveStackName(environment, override string) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf("WebStack-%s", environment)
}

// awsConfigFor discovers the credential files, applies the profile and
// region selection and loads the SDK configuration.
func awsConfigFor(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	detail, err := CheckAWSConfig("")
	if err != nil {
		return aws.Config{}, err
	}
	detail.ProfileName = cfg.AWSProfile
	detail.Region = cfg.Region

	return awsconn.NewConfig(ctx, &detail)
}

func reporterFor(outputPath string) reporter.OutputWriter {
	switch {
	case outputPath == "":
		return reporter.NewStdoutReporter()
	case strings.HasSuffix(outputPath, ".csv"):
		return reporter.NewCsvReporter(outputPath)
	default:
		return reporter.NewFileReporter(outputPath)
	}
}
