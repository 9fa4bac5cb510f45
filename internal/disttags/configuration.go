package disttags

import "strings"

const (
	defaultPatternConstant                = "branch-.*"
	defaultProtectedTagConstant           = "latest"
	defaultMaxAttemptsConstant            = 3
	packageConfigurationKeyConstant       = "package"
	patternConfigurationKeyConstant       = "pattern"
	protectedTagsConfigurationKeyConstant = "protected_tags"
	maxAttemptsConfigurationKeyConstant   = "max_attempts"
	dryRunConfigurationKeyConstant        = "dry_run"
	configurationKeySeparatorConstant     = "."
)

// Configuration stores options for the clean-npm-tags command.
type Configuration struct {
	PackageName   string   `mapstructure:"package"`
	Pattern       string   `mapstructure:"pattern"`
	ProtectedTags []string `mapstructure:"protected_tags"`
	MaxAttempts   int      `mapstructure:"max_attempts"`
	DryRun        bool     `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for clean-npm-tags configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Pattern:       defaultPatternConstant,
		ProtectedTags: []string{defaultProtectedTagConstant},
		MaxAttempts:   defaultMaxAttemptsConstant,
	}
}

// DefaultConfigurationValues exposes defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, packageConfigurationKeyConstant):       defaults.PackageName,
		joinConfigurationKey(prefix, patternConfigurationKeyConstant):       defaults.Pattern,
		joinConfigurationKey(prefix, protectedTagsConfigurationKeyConstant): defaults.ProtectedTags,
		joinConfigurationKey(prefix, maxAttemptsConfigurationKeyConstant):   defaults.MaxAttempts,
		joinConfigurationKey(prefix, dryRunConfigurationKeyConstant):        defaults.DryRun,
	}
}

// Sanitize trims configured values and drops empty protected tags. Missing
// values fall back to the defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.PackageName = strings.TrimSpace(configuration.PackageName)
	sanitized.Pattern = strings.TrimSpace(configuration.Pattern)
	if len(sanitized.Pattern) == 0 {
		sanitized.Pattern = defaultPatternConstant
	}
	if sanitized.MaxAttempts <= 0 {
		sanitized.MaxAttempts = defaultMaxAttemptsConstant
	}

	if configuration.ProtectedTags == nil {
		sanitized.ProtectedTags = DefaultConfiguration().ProtectedTags
		return sanitized
	}

	protectedTags := make([]string, 0, len(configuration.ProtectedTags))
	for _, protectedTag := range configuration.ProtectedTags {
		trimmedTag := strings.TrimSpace(protectedTag)
		if len(trimmedTag) > 0 {
			protectedTags = append(protectedTags, trimmedTag)
		}
	}
	sanitized.ProtectedTags = protectedTags
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.Trim(strings.TrimSpace(prefix), configurationKeySeparatorConstant)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
