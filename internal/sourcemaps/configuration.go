package sourcemaps

import "strings"

const (
	defaultSourceDirectoryConstant          = "src"
	gitIgnoredDirectoryConstant             = ".git"
	nodeModulesIgnoredDirectoryConstant     = "node_modules"
	sourceDirectoryConfigurationKeyConstant = "source_directory"
	ignoredDirectoriesConfigurationKey      = "ignored_directories"
	dryRunConfigurationKeyConstant          = "dry_run"
	configurationKeySeparatorConstant       = "."
)

// Configuration stores options for the source-maps command.
type Configuration struct {
	SourceDirectory    string   `mapstructure:"source_directory"`
	IgnoredDirectories []string `mapstructure:"ignored_directories"`
	DryRun             bool     `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for source-maps configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		SourceDirectory:    defaultSourceDirectoryConstant,
		IgnoredDirectories: []string{gitIgnoredDirectoryConstant, nodeModulesIgnoredDirectoryConstant},
	}
}

// DefaultConfigurationValues exposes defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, sourceDirectoryConfigurationKeyConstant): defaults.SourceDirectory,
		joinConfigurationKey(prefix, ignoredDirectoriesConfigurationKey):      defaults.IgnoredDirectories,
		joinConfigurationKey(prefix, dryRunConfigurationKeyConstant):          defaults.DryRun,
	}
}

func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.SourceDirectory = strings.Trim(strings.TrimSpace(sanitized.SourceDirectory), "/")
	if len(sanitized.SourceDirectory) == 0 {
		sanitized.SourceDirectory = defaultSourceDirectoryConstant
	}

	if configuration.IgnoredDirectories == nil {
		sanitized.IgnoredDirectories = DefaultConfiguration().IgnoredDirectories
		return sanitized
	}

	ignoredDirectories := make([]string, 0, len(configuration.IgnoredDirectories))
	for _, ignoredDirectory := range configuration.IgnoredDirectories {
		trimmedDirectory := strings.TrimSpace(ignoredDirectory)
		if len(trimmedDirectory) > 0 {
			ignoredDirectories = append(ignoredDirectories, trimmedDirectory)
		}
	}
	sanitized.IgnoredDirectories = ignoredDirectories
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.Trim(strings.TrimSpace(prefix), configurationKeySeparatorConstant)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
