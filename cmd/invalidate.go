package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"web-deployer/config"
	"web-deployer/pkg/services/cdn"
	"web-deployer/pkg/services/stackinfo"
)

type invalidateCmd struct {
	Environment    string
	StackName      string
	DistributionID string
	NoWait         bool
	Cmd            *cobra.Command
	cfg            *config.Config
	ctx            context.Context
}

func NewInvalidateCmd(ctx context.Context, cfg *config.Config) *invalidateCmd {
	ic := &invalidateCmd{
		cfg: cfg,
		ctx: ctx,
	}
	ic.Cmd = &cobra.Command{
		Use:     "invalidate",
		Aliases: []string{"i"},
		Short:   "Invalidate the CloudFront cache for an environment without re-uploading",
		RunE:    ic.Run,
	}

	ic.Cmd.Flags().StringVar(&ic.Environment, "env", "", "Target environment whose distribution to invalidate")
	ic.Cmd.Flags().StringVar(&ic.StackName, "stack", "", "Override the stack name derived from the environment")
	ic.Cmd.Flags().StringVar(&ic.DistributionID, "distribution-id", "", "Invalidate this distribution directly, skipping the stack lookup")
	ic.Cmd.Flags().BoolVar(&ic.NoWait, "no-wait", false, "Do not poll the invalidation until it completes")

	return ic
}

func (i *invalidateCmd) Run(cmd *cobra.Command, args []string) error {
	awsCfg, err := awsConfigFor(i.ctx, i.cfg)
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err.Error())
		return err
	}

	invalidator := cdn.NewCloudFrontInvalidator(awsCfg)

	distributionID := i.DistributionID
	if distributionID == "" {
		i.Environment = resolveEnvironment(i.Environment, i.cfg)
		if i.StackName == "" {
			if err := validateEnvironment(i.Environment); err != nil {
				slog.Error("Invalid environment selector", "error", err.Error())
				return err
			}
		}
		stackName := resolveStackName(i.Environment, i.StackName)

		outputs, err := stackinfo.NewCloudFormationReader(awsCfg).StackOutputs(i.ctx, stackName)
		if err != nil {
			slog.Error("Failed to fetch stack outputs", "stack", stackName, "error", err.Error())
			return err
		}
		target, err := outputs.DeploymentTarget()
		if err != nil {
			slog.Error("Failed to resolve deployment target", "stack", stackName, "error", err.Error())
			return err
		}

		distributionID = target.DistributionID
		if distributionID == "" {
			distributionID, err = invalidator.DistributionIDForDomain(i.ctx, target.DistributionDomain)
			if err != nil {
				slog.Error("Failed to resolve distribution id", "domain", target.DistributionDomain, "error", err.Error())
				return err
			}
		}
	}

	invalidationID, err := invalidator.Invalidate(i.ctx, distributionID)
	if err != nil {
		slog.Error("Failed to create invalidation", "distribution", distributionID, "error", err.Error())
		return err
	}

	if i.NoWait {
		return nil
	}
	if err := invalidator.Wait(i.ctx, distributionID, invalidationID); err != nil {
		slog.Error("Invalidation did not complete", "invalidation", invalidationID, "error", err.Error())
		return err
	}
	return nil
}
