package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the web deployer.
// It encapsulates the parameters that control the tool's behavior,
// such as logging verbosity, the target environment and AWS profile
// settings.
type Config struct {
	LogLevel    string
	ProfileFile string
	Environment string
	AWSProfile  string
	Region      string
	Profile     Profile
}

// GetConfigFolder retrieves the folder where the profiles file is stored.
// It searches for the xdg environment path first and will secondarily
// place it in the home directory. It returns the config folder path and an error, if any.
func (c *Config) GetConfigFolder(xdgPath string) (string, error) {
	configPath := xdgPath

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config")
	}

	webDeployerConfigPath := filepath.Join(configPath, "webdeployer")
	slog.Debug("Using profiles file", "prefix", "config.Config.GetConfigFolder", "path", webDeployerConfigPath)

	return webDeployerConfigPath, nil
}

func (c *Config) Init() {
	var level slog.Level
	var output io.Writer = os.Stderr

	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		slog.Error("Unrecognized log level value. Defaulting to 'info'.", "provided_level", c.LogLevel)
		level = slog.LevelInfo
	}

	handler := tint.NewHandler(output, &tint.Options{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if c.ProfileFile != "" {
		viper.SetConfigFile(c.ProfileFile)
	} else {
		configFolder, err := c.GetConfigFolder(os.Getenv("XDG_CONFIG_HOME"))
		if err != nil {
			log.Fatalf("%s", err)
		}
		if err := os.MkdirAll(configFolder, 0755); err != nil {
			log.Fatalf("%s", err)
		}
		configFile := filepath.Join(configFolder, "config.toml")
		c.ProfileFile = configFile
		viper.SetConfigType("toml")
		viper.SetConfigFile(configFile)
		viper.SetConfigPermissions(os.FileMode(0600))

		// Try to change permissions manually, because we used to create files
		// with default permissions (0644)
		err = os.Chmod(configFile, os.FileMode(0600))
		if err != nil && !os.IsNotExist(err) {
			log.Fatalf("%s", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read profiles file", "path", c.ProfileFile, "error", err.Error())
	}

	if c.AWSProfile != "" {
		c.Profile.AWSConfig = &AWSConfig{ProfileName: c.AWSProfile, Region: c.Region}
	}
	// A persisted default environment applies when the flag is absent.
	if c.Environment == "" {
		c.Environment = viper.GetString(c.Profile.GetConfigField("environment"))
	}
}

// PrintConfig writes the stored configuration values to stdout.
func (c *Config) PrintConfig() error {
	settings, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config values: %w", err)
	}
	fmt.Println(string(settings))
	return nil
}
