package preflight

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultRemoteNameConstant          = "origin"
	defaultRemoteURLConstant           = "https://github.com/legal-analytics/legal-infographics.git"
	defaultCommitMessageConstant       = "Deploy Legal Strategy Infographics Platform"
	defaultEnvironmentFileNameConstant = ".env"
	manifestReadErrorTemplateConstant  = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant = "unable to parse manifest %s: %w"
)

// defaultRequiredFiles lists the artifacts every deployment needs before any mutating step runs.
var defaultRequiredFiles = []string{
	"public/infographic.html",
	"legal_infographics/main.py",
	"requirements.txt",
	"vercel.json",
}

// Configuration carries every input the orchestrator needs, replacing ambient
// working-directory and environment lookups with explicit values.
type Configuration struct {
	WorkingDirectory    string   `mapstructure:"working_directory" yaml:"working_directory"`
	RequiredFiles       []string `mapstructure:"required_files"    yaml:"required_files"`
	RemoteName          string   `mapstructure:"remote_name"       yaml:"remote_name"`
	RemoteURL           string   `mapstructure:"remote_url"        yaml:"remote_url"`
	EnvironmentFilePath string   `mapstructure:"environment_file"  yaml:"environment_file"`
	CommitMessage       string   `mapstructure:"commit_message"    yaml:"commit_message"`
}

// DefaultConfiguration returns the fixed defaults documented for the platform.
func DefaultConfiguration() Configuration {
	return Configuration{
		WorkingDirectory:    ".",
		RequiredFiles:       append([]string{}, defaultRequiredFiles...),
		RemoteName:          defaultRemoteNameConstant,
		RemoteURL:           defaultRemoteURLConstant,
		EnvironmentFilePath: defaultEnvironmentFileNameConstant,
		CommitMessage:       defaultCommitMessageConstant,
	}
}

// DefaultConfigurationValues exposes viper defaults under the provided configuration key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".working_directory": defaults.WorkingDirectory,
		configurationKeyPrefix + ".required_files":    defaults.RequiredFiles,
		configurationKeyPrefix + ".remote_name":       defaults.RemoteName,
		configurationKeyPrefix + ".remote_url":        defaults.RemoteURL,
		configurationKeyPrefix + ".environment_file":  defaults.EnvironmentFilePath,
		configurationKeyPrefix + ".commit_message":    defaults.CommitMessage,
	}
}

// MergeDefaults fills unset fields from the fixed defaults.
func (configuration Configuration) MergeDefaults() Configuration {
	defaults := DefaultConfiguration()
	merged := configuration

	if len(strings.TrimSpace(merged.WorkingDirectory)) == 0 {
		merged.WorkingDirectory = defaults.WorkingDirectory
	}
	if len(merged.RequiredFiles) == 0 {
		merged.RequiredFiles = append([]string{}, defaults.RequiredFiles...)
	}
	if len(strings.TrimSpace(merged.RemoteName)) == 0 {
		merged.RemoteName = defaults.RemoteName
	}
	if len(strings.TrimSpace(merged.RemoteURL)) == 0 {
		merged.RemoteURL = defaults.RemoteURL
	}
	if len(strings.TrimSpace(merged.EnvironmentFilePath)) == 0 {
		merged.EnvironmentFilePath = defaults.EnvironmentFilePath
	}
	if len(strings.TrimSpace(merged.CommitMessage)) == 0 {
		merged.CommitMessage = defaults.CommitMessage
	}

	return merged
}

// LoadManifest reads a YAML project manifest and overlays it onto the defaults.
func LoadManifest(manifestPath string) (Configuration, error) {
	manifestContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	manifestConfiguration := Configuration{}
	if parseError := yaml.Unmarshal(manifestContent, &manifestConfiguration); parseError != nil {
		return Configuration{}, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, parseError)
	}

	return manifestConfiguration.MergeDefaults(), nil
}
