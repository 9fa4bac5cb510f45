// Package pathutils resolves directory arguments supplied on the command line.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// DirectoryProvider resolves a well-known directory such as the process working directory.
type DirectoryProvider func() (string, error)

// WorkingDirectoryResolver turns optional directory arguments into absolute paths.
// Empty arguments resolve to the process working directory and leading tildes
// expand to the user's home directory.
type WorkingDirectoryResolver struct {
	workingDirectoryProvider DirectoryProvider
	homeDirectoryProvider    DirectoryProvider
}

// NewWorkingDirectoryResolver constructs a resolver backed by the operating system.
func NewWorkingDirectoryResolver() *WorkingDirectoryResolver {
	return NewWorkingDirectoryResolverWithProviders(os.Getwd, os.UserHomeDir)
}

// NewWorkingDirectoryResolverWithProviders constructs a resolver with custom providers.
func NewWorkingDirectoryResolverWithProviders(workingDirectoryProvider DirectoryProvider, homeDirectoryProvider DirectoryProvider) *WorkingDirectoryResolver {
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	return &WorkingDirectoryResolver{
		workingDirectoryProvider: workingDirectoryProvider,
		homeDirectoryProvider:    homeDirectoryProvider,
	}
}

// Resolve returns the absolute, cleaned form of candidatePath.
func (resolver *WorkingDirectoryResolver) Resolve(candidatePath string) (string, error) {
	workingDirectory, workingDirectoryError := resolver.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return "", workingDirectoryError
	}

	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return filepath.Clean(workingDirectory), nil
	}

	expandedPath, expansionError := resolver.expandHome(trimmedPath)
	if expansionError != nil {
		return "", expansionError
	}

	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath), nil
	}
	return filepath.Join(workingDirectory, expandedPath), nil
}

func (resolver *WorkingDirectoryResolver) expandHome(candidatePath string) (string, error) {
	if candidatePath != tildeSymbolConstant &&
		!strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) &&
		!strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)) {
		return candidatePath, nil
	}

	homeDirectory, homeDirectoryError := resolver.homeDirectoryProvider()
	if homeDirectoryError != nil {
		return "", homeDirectoryError
	}

	if candidatePath == tildeSymbolConstant {
		return homeDirectory, nil
	}
	return filepath.Join(homeDirectory, candidatePath[len(tildeForwardSlashPrefixConstant):]), nil
}
