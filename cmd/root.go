package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"web-deployer/config"
)

var Config config.Config

// CheckAWSConfig checks for the presence of AWS configuration files
// or environment variables that point to them.
// It returns the discovered credential and config file paths.
// It logs debug messages indicating where it's looking and what it finds.
func CheckAWSConfig(homeDir string) (config.AWSConfig, error) {
	configDetail := config.AWSConfig{
		CredentialPath: []string{},
		ConfigPath:     []string{},
	}

	var err error
	// attempt to load from the default location
	if homeDir == "" {
		homeDir, err = os.UserHomeDir()
		if err != nil {
			slog.Error("Failed to get user home directory", "error", err)
			return configDetail, err
		}
	}

	defaultAWSPath := filepath.Join(homeDir, ".aws")
	slog.Debug("Checking default AWS configuration directory", "path", defaultAWSPath)

	// Check for default credentials file
	defaultCredsFile := filepath.Join(defaultAWSPath, "credentials")
	if _, err := os.Stat(defaultCredsFile); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Default AWS credentials file not found", "path", defaultCredsFile)
		} else {
			slog.Error("Error checking default AWS credentials file", "path", defaultCredsFile, "error", err)
			return configDetail, err
		}
	} else {
		configDetail.CredentialPath = append(configDetail.CredentialPath, defaultCredsFile)
	}

	// check for default profile file
	defaultConfigFile := filepath.Join(defaultAWSPath, "config")
	if _, err := os.Stat(defaultConfigFile); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Default AWS config file not found", "path", defaultConfigFile)
		} else {
			slog.Error("Error checking default AWS config file", "path", defaultConfigFile, "error", err)
			return configDetail, err
		}
	} else {
		configDetail.ConfigPath = append(configDetail.ConfigPath, defaultConfigFile)
	}

	// Custom paths from the environment take precedence over the defaults,
	// matching how the AWS CLI resolves these variables.
	if credsFileEnv := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); credsFileEnv != "" {
		slog.Debug("Checking AWS_SHARED_CREDENTIALS_FILE environment variable", "path_env", credsFileEnv)

		if _, err := os.Stat(credsFileEnv); err != nil {
			if os.IsNotExist(err) {
				slog.Warn("AWS_SHARED_CREDENTIALS_FILE environment variable points to a non-existent file", "path", credsFileEnv)
			} else {
				slog.Error("Error checking file specified by AWS_SHARED_CREDENTIALS_FILE", "path", credsFileEnv, "error", err)
			}
		} else {
			configDetail.CredentialPath = append(configDetail.CredentialPath, credsFileEnv)
			slog.Info("AWS credentials file found via AWS_SHARED_CREDENTIALS_FILE", "path", credsFileEnv)
		}
	}

	if configFileEnv := os.Getenv("AWS_CONFIG_FILE"); configFileEnv != "" {
		slog.Debug("Checking AWS_CONFIG_FILE environment variable", "path_env", configFileEnv)
		if _, err := os.Stat(configFileEnv); err != nil {
			if os.IsNotExist(err) {
				slog.Warn("AWS_CONFIG_FILE environment variable points to a non-existent file", "path", configFileEnv)
			} else {
				slog.Error("Error checking file specified by AWS_CONFIG_FILE", "path", configFileEnv, "error", err)
			}
		} else {
			configDetail.ConfigPath = append(configDetail.ConfigPath, configFileEnv)
			slog.Info("AWS config file found via AWS_CONFIG_FILE", "path", configFileEnv)
		}
	}

	if len(configDetail.ConfigPath) == 0 && len(configDetail.CredentialPath) == 0 {
		return configDetail, fmt.Errorf("no AWS configuration or credential files found")
	}

	return configDetail, nil
}

var rootCmd = &cobra.Command{
	Use:           "webdeployer",
	Aliases:       []string{"wd"},
	Short:         "A CLI that builds the frontend and publishes it to the S3/CloudFront stack of an environment",
	Long:          "webdeployer resolves the hosting bucket and CDN distribution from a deployed stack's outputs, builds the frontend, mirrors the build output into the bucket and invalidates the CDN cache.",
	Version:       "1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	Run:           func(cmd *cobra.Command, args []string) {},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Failed to execute command", "error", err)
		os.Exit(1)
	}
}

var keysToReBind []string

// ReBindKeys applies the value found in viper config to the cobra flag when viper has a value (possibly from env)
func ReBindKeys() {
	for _, k := range keysToReBind {
		if viper.IsSet(k) {
			rootCmd.PersistentFlags().Set(k, viper.GetString(k))
		}
	}
}

// wraps viper's bindEnv and ensures we write values back to the Config
// value precedence is:
// 1. flag
// 2. env
// 3. default
func bindEnv(key, envKey string) {
	viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	viper.BindEnv(key, envKey)
	keysToReBind = append(keysToReBind, key)
}

func init() {
	ctx := context.Background()
	cobra.OnInitialize(Config.Init, ReBindKeys)
	rootCmd.PersistentFlags().StringVar(&Config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&Config.AWSProfile, "profile", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVar(&Config.Region, "region", "", "AWS region to use")
	rootCmd.Flags().BoolP("version", "v", false, "Get the version of the webdeployer CLI")
	bindEnv("profile", "WEBDEPLOY_PROFILE")
	bindEnv("region", "WEBDEPLOY_REGION")

	rootCmd.AddCommand(NewConfigCmd(&Config).Cmd)
	rootCmd.AddCommand(NewDeployCmd(ctx, &Config).Cmd)
	rootCmd.AddCommand(NewOutputsCmd(ctx, &Config).Cmd)
	rootCmd.AddCommand(NewInvalidateCmd(ctx, &Config).Cmd)
}
