package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"web-deployer/config"
	"web-deployer/pkg/services/stackinfo"
)

type outputsCmd struct {
	Environment string
	StackName   string
	Cmd         *cobra.Command
	cfg         *config.Config
	ctx         context.Context
}

func NewOutputsCmd(ctx context.Context, cfg *config.Config) *outputsCmd {
	oc := &outputsCmd{
		cfg: cfg,
		ctx: ctx,
	}
	oc.Cmd = &cobra.Command{
		Use:     "outputs",
		Aliases: []string{"o"},
		Short:   "Fetch and print the stack outputs for an environment",
		RunE:    oc.Run,
	}

	oc.Cmd.Flags().StringVar(&oc.Environment, "env", "", "Target environment whose stack outputs to fetch")
	oc.Cmd.Flags().StringVar(&oc.StackName, "stack", "", "Override the stack name derived from the environment")

	return oc
}

func (o *outputsCmd) Run(cmd *cobra.Command, args []string) error {
	o.Environment = resolveEnvironment(o.Environment, o.cfg)
	if o.StackName == "" {
		if err := validateEnvironment(o.Environment); err != nil {
			slog.Error("Invalid environment selector", "error", err.Error())
			return err
		}
	}
	stackName := resolveStackName(o.Environment, o.StackName)

	awsCfg, err := awsConfigFor(o.ctx, o.cfg)
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err.Error())
		return err
	}

	outputs, err := stackinfo.NewCloudFormationReader(awsCfg).StackOutputs(o.ctx, stackName)
	if err != nil {
		slog.Error("Failed to fetch stack outputs", "stack", stackName, "error", err.Error())
		return err
	}

	prettyJSON, err := json.MarshalIndent(outputs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal stack outputs: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
