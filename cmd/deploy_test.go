package cmd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/cmd"
	"web-deployer/config"
)

func TestNewDeployCmd(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	dc := cmd.NewDeployCmd(ctx, cfg)

	assert.NotNil(t, dc)
	assert.NotNil(t, dc.Cmd)
	assert.Equal(t, "deploy", dc.Cmd.Use)
	assert.Contains(t, dc.Cmd.Aliases, "d")

	// Check flags
	assert.NotNil(t, dc.Cmd.Flags().Lookup("env"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("stack"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("frontend"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("dist"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("output-file"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("skip-build"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("skip-invalidation"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("no-wait"))
	assert.NotNil(t, dc.Cmd.Flags().Lookup("skip-verify"))

	// Check default values
	assert.Equal(t, "frontend", dc.FrontendDir)
	assert.Equal(t, "", dc.DistDir)
	assert.False(t, dc.SkipBuild)
	assert.False(t, dc.SkipInvalidation)
}

func TestDeployCmd_Run_InvalidEnvironment(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	dc := cmd.NewDeployCmd(ctx, cfg)
	dc.Environment = "production" // not a valid selector

	err := dc.Run(dc.Cmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "environment must be one of")
}

func TestDeployCmd_Run_MissingEnvironment(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	dc := cmd.NewDeployCmd(ctx, cfg)

	err := dc.Run(dc.Cmd, []string{})
	assert.Error(t, err)
}

func TestDeployCmd_Run_UsesPersistedEnvironmentDefault(t *testing.T) {
	ctx := context.Background()
	// An invalid persisted default proves the fallback is consulted: the
	// run fails validation naming that value rather than the empty flag.
	cfg := &config.Config{Environment: "bogus"}
	dc := cmd.NewDeployCmd(ctx, cfg)

	err := dc.Run(dc.Cmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestNewOutputsCmd(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	oc := cmd.NewOutputsCmd(ctx, cfg)

	assert.NotNil(t, oc)
	assert.Equal(t, "outputs", oc.Cmd.Use)
	assert.NotNil(t, oc.Cmd.Flags().Lookup("env"))
	assert.NotNil(t, oc.Cmd.Flags().Lookup("stack"))
}

func TestOutputsCmd_Run_InvalidEnvironment(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	oc := cmd.NewOutputsCmd(ctx, cfg)
	oc.Environment = "nope"

	err := oc.Run(oc.Cmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "environment must be one of")
}

func TestNewInvalidateCmd(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	ic := cmd.NewInvalidateCmd(ctx, cfg)

	assert.NotNil(t, ic)
	assert.Equal(t, "invalidate", ic.Cmd.Use)
	assert.NotNil(t, ic.Cmd.Flags().Lookup("env"))
	assert.NotNil(t, ic.Cmd.Flags().Lookup("stack"))
	assert.NotNil(t, ic.Cmd.Flags().Lookup("distribution-id"))
	assert.NotNil(t, ic.Cmd.Flags().Lookup("no-wait"))
}
