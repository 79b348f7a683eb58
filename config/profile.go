package config

import "github.com/spf13/viper"

// AWSConfig describes where AWS credentials and shared config live for a run.
// Paths are collected during startup checks and handed to the SDK loader so
// that the deployer honors both the default ~/.aws files and any overrides
// set through AWS_SHARED_CREDENTIALS_FILE / AWS_CONFIG_FILE.
type AWSConfig struct {
	CredentialPath []string
	ConfigPath     []string
	ProfileName    string
	Region         string
}

type Profile struct {
	AWSConfig *AWSConfig
}

func (p *Profile) WriteConfigField(field, value string) error {
	viper.ReadInConfig()
	viper.Set(p.GetConfigField(field), value)
	return viper.WriteConfig()
}

// GetConfigField returns the configuration field for the specific profile
func (p *Profile) GetConfigField(field string) string {
	if p.AWSConfig == nil || p.AWSConfig.ProfileName == "" {
		return field
	}
	return p.AWSConfig.ProfileName + "." + field
}

// DeleteConfigField deletes a configuration field.
func (p *Profile) DeleteConfigField(field string) error {
	viper.ReadInConfig()
	viper.Set(p.GetConfigField(field), "")
	return viper.WriteConfig()
}
