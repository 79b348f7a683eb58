package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"web-deployer/config"
)

// configFields are the keys the profiles file accepts. Fields are scoped to
// an AWS profile when one is selected, so `--profile ci --set region ...`
// writes `ci.region`.
var configFields = []string{"environment", "profile", "region"}

type configCmd struct {
	List  bool
	Set   bool
	Unset bool
	Cmd   *cobra.Command
	cfg   *config.Config
}

func NewConfigCmd(cfg *config.Config) *configCmd {
	cc := &configCmd{cfg: cfg}
	cc.Cmd = &cobra.Command{
		Use:   "config",
		Short: "Manually change the config values stored in the profiles file",
		Long:  "config lists, sets or removes the defaults (environment, profile, region) that webdeployer falls back to when the matching flag is not given.",
		RunE:  cc.Run,
	}
	cc.Cmd.Flags().SetInterspersed(false)

	cc.Cmd.Flags().BoolVar(&cc.List, "list", false, "List the stored configuration values")
	cc.Cmd.Flags().BoolVar(&cc.Set, "set", false, "Set a config field: --set <field> <value>")
	cc.Cmd.Flags().BoolVar(&cc.Unset, "unset", false, "Remove a config field: --unset <field>")

	return cc
}

func (c *configCmd) Run(cmd *cobra.Command, args []string) error {
	switch {
	case c.Set:
		if len(args) != 2 {
			return fmt.Errorf("--set requires a field and a value")
		}
		if err := validateConfigField(args[0]); err != nil {
			return err
		}
		return c.cfg.Profile.WriteConfigField(args[0], args[1])
	case c.Unset:
		if len(args) != 1 {
			return fmt.Errorf("--unset requires a field")
		}
		if err := validateConfigField(args[0]); err != nil {
			return err
		}
		return c.cfg.Profile.DeleteConfigField(args[0])
	default:
		return c.cfg.PrintConfig()
	}
}

func validateConfigField(field string) error {
	for _, candidate := range configFields {
		if field == candidate {
			return nil
		}
	}
	return fmt.Errorf("unknown config field %q, expected one of %s", field, strings.Join(configFields, ", "))
}
