package gitrepo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

const (
	sshProtocolNameConstant             = "ssh"
	sshProtocolPrefixConstant           = "ssh://"
	sshAccountPrefixConstant            = "git@"
	sshPathDelimiterConstant            = ":"
	sshDefaultPortConstant              = 22
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	requiredValueMessageConstant        = "value required"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	missingHostMessageConstant          = "remote url has no host"
	missingPathMessageConstant          = "remote url has no repository path"
	unknownURLStyleMessageConstant      = "unsupported remote url style"
	remoteURLStyleScpValueConstant      = "scp"
	remoteURLStyleSSHValueConstant      = "ssh"
)

// RemoteURLStyle selects how a normalized SSH remote is rendered.
type RemoteURLStyle string

// Supported remote URL styles.
const (
	// RemoteURLStyleScp renders git@host:path.git.
	RemoteURLStyleScp RemoteURLStyle = RemoteURLStyle(remoteURLStyleScpValueConstant)
	// RemoteURLStyleSSH renders ssh://git@host/path.git.
	RemoteURLStyleSSH RemoteURLStyle = RemoteURLStyle(remoteURLStyleSSHValueConstant)
)

// RemoteURLNormalizer converts a raw remote URL into its canonical SSH form.
type RemoteURLNormalizer func(remote string) (string, error)

// RemoteURL represents a structured git remote URL stripped of credentials.
type RemoteURL struct {
	Host string
	Port int
	Path string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnsupportedURLStyleError indicates the requested style cannot be rendered.
type UnsupportedURLStyleError struct {
	Style RemoteURLStyle
}

// Error describes the unsupported style.
func (styleError UnsupportedURLStyleError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, styleError.Style, unknownURLStyleMessageConstant)
}

// ParseRemoteStyle interprets a textual style value, defaulting to scp form when empty.
func ParseRemoteStyle(styleValue string) (RemoteURLStyle, error) {
	trimmedValue := strings.ToLower(strings.TrimSpace(styleValue))
	switch trimmedValue {
	case "", remoteURLStyleScpValueConstant:
		return RemoteURLStyleScp, nil
	case remoteURLStyleSSHValueConstant:
		return RemoteURLStyleSSH, nil
	default:
		return "", UnsupportedURLStyleError{Style: RemoteURLStyle(styleValue)}
	}
}

// ParseRemoteURL converts a textual remote URL into a structured representation.
// User names and passwords embedded in the remote are discarded.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	endpoint, endpointError := transport.NewEndpoint(trimmedRemote)
	if endpointError != nil {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	if len(strings.TrimSpace(endpoint.Host)) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: missingHostMessageConstant}
	}

	repositoryPath := normalizeRepositoryPath(endpoint.Path)
	if len(repositoryPath) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: missingPathMessageConstant}
	}

	port := 0
	if endpoint.Protocol == sshProtocolNameConstant && endpoint.Port != sshDefaultPortConstant {
		port = endpoint.Port
	}

	return RemoteURL{Host: endpoint.Host, Port: port, Path: repositoryPath}, nil
}

func normalizeRepositoryPath(path string) string {
	trimmedPath := strings.Trim(strings.TrimSpace(path), pathSeparatorConstant)
	return strings.TrimSuffix(trimmedPath, gitSuffixConstant)
}

// FormatRemoteURL renders a structured remote as an SSH URL with a .git suffix.
// A remote with an explicit port is always rendered in ssh:// form since the
// scp-like shorthand cannot carry a port.
func FormatRemoteURL(remote RemoteURL, style RemoteURLStyle) (string, error) {
	if len(strings.TrimSpace(remote.Host)) == 0 {
		return "", RemoteURLParseError{Input: remote.Host, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remote.Path)) == 0 {
		return "", RemoteURLParseError{Input: remote.Path, Message: requiredValueMessageConstant}
	}

	switch style {
	case RemoteURLStyleScp:
		if remote.Port > 0 {
			return formatSSHRemote(remote), nil
		}
		return sshAccountPrefixConstant + remote.Host + sshPathDelimiterConstant + remote.Path + gitSuffixConstant, nil
	case RemoteURLStyleSSH:
		return formatSSHRemote(remote), nil
	default:
		return "", UnsupportedURLStyleError{Style: style}
	}
}

func formatSSHRemote(remote RemoteURL) string {
	hostSegment := remote.Host
	if remote.Port > 0 {
		hostSegment = hostSegment + sshPathDelimiterConstant + strconv.Itoa(remote.Port)
	}
	return sshProtocolPrefixConstant + sshAccountPrefixConstant + hostSegment + pathSeparatorConstant + remote.Path + gitSuffixConstant
}

// NormalizeRemoteURL parses a remote and renders it in the requested style.
func NormalizeRemoteURL(remote string, style RemoteURLStyle) (string, error) {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return "", parseError
	}
	return FormatRemoteURL(parsedRemote, style)
}

// NewRemoteURLNormalizer binds NormalizeRemoteURL to a fixed style.
func NewRemoteURLNormalizer(style RemoteURLStyle) RemoteURLNormalizer {
	return func(remote string) (string, error) {
		return NormalizeRemoteURL(remote, style)
	}
}
