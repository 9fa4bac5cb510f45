package gitinfo

import (
	"strings"

	"github.com/temirov/relkit/internal/gitrepo"
)

const (
	urlStyleConfigurationKeyConstant = "url_style"
	configurationKeySeparator        = "."
)

// Configuration stores options for the git-info command.
type Configuration struct {
	URLStyle string `mapstructure:"url_style"`
}

// DefaultConfiguration supplies baseline values for git-info configuration.
func DefaultConfiguration() Configuration {
	return Configuration{URLStyle: string(gitrepo.RemoteURLStyleScp)}
}

// DefaultConfigurationValues exposes defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, urlStyleConfigurationKeyConstant): defaults.URLStyle,
	}
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.Trim(strings.TrimSpace(prefix), configurationKeySeparator)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparator + key
}
