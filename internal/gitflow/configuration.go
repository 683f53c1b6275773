package gitflow

import (
	"strings"

	"github.com/temirov/gitflow/internal/shared"
)

const (
	defaultRepositoryPathConstant      = "."
	repositoryConfigurationKeyConstant = "repository"
	remoteConfigurationKeyConstant     = "remote"
	pushTagsConfigurationKeyConstant   = "push_tags"
	configurationKeySeparatorConstant  = "."
)

// CommandConfiguration captures persistent settings shared by the gitflow commands.
type CommandConfiguration struct {
	RepositoryPath string `mapstructure:"repository" yaml:"repository"`
	RemoteName     string `mapstructure:"remote" yaml:"remote"`
	PushTags       bool   `mapstructure:"push_tags" yaml:"push_tags"`
}

// DefaultCommandConfiguration returns baseline configuration values for the gitflow commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryPath: defaultRepositoryPathConstant,
		RemoteName:     shared.OriginRemoteNameConstant,
		PushTags:       false,
	}
}

// DefaultConfigurationValues exposes defaults keyed for a configuration loader under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(configurationPrefix, repositoryConfigurationKeyConstant): defaults.RepositoryPath,
		prefixedKey(configurationPrefix, remoteConfigurationKeyConstant):     defaults.RemoteName,
		prefixedKey(configurationPrefix, pushTagsConfigurationKeyConstant):   defaults.PushTags,
	}
}

// Sanitize trims values and restores defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.RepositoryPath = strings.TrimSpace(configuration.RepositoryPath)
	if len(sanitized.RepositoryPath) == 0 {
		sanitized.RepositoryPath = defaults.RepositoryPath
	}

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaults.RemoteName
	}

	return sanitized
}

func prefixedKey(configurationPrefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(configurationPrefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
