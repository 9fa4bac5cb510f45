package disttags

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const (
	packageManifestFileNameConstant    = "package.json"
	packageNameFieldPathConstant       = "name"
	manifestReadErrorTemplateConstant  = "failed to read %s: %v"
	manifestInvalidMessageConstant     = "is not valid JSON"
	manifestMissingNameMessageConstant = "does not declare a package name"
	manifestErrorTemplateConstant      = "%s %s"
)

// ManifestError reports a package.json that cannot supply a package name.
type ManifestError struct {
	Path    string
	Message string
	Cause   error
}

// Error describes the manifest problem.
func (manifestError ManifestError) Error() string {
	if manifestError.Cause != nil {
		return fmt.Sprintf(manifestReadErrorTemplateConstant, manifestError.Path, manifestError.Cause)
	}
	return fmt.Sprintf(manifestErrorTemplateConstant, manifestError.Path, manifestError.Message)
}

// Unwrap exposes the underlying read failure.
func (manifestError ManifestError) Unwrap() error {
	return manifestError.Cause
}

// ManifestReader reads package metadata from package.json files.
type ManifestReader struct {
	fileSystem afero.Fs
}

// NewManifestReader constructs a ManifestReader. A nil filesystem selects the operating system filesystem.
func NewManifestReader(fileSystem afero.Fs) *ManifestReader {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &ManifestReader{fileSystem: fileSystem}
}

// PackageName returns the name declared by <directory>/package.json.
func (reader *ManifestReader) PackageName(directory string) (string, error) {
	manifestPath := filepath.Join(directory, packageManifestFileNameConstant)
	manifestContent, readError := afero.ReadFile(reader.fileSystem, manifestPath)
	if readError != nil {
		return "", ManifestError{Path: manifestPath, Cause: readError}
	}
	if !gjson.ValidBytes(manifestContent) {
		return "", ManifestError{Path: manifestPath, Message: manifestInvalidMessageConstant}
	}

	packageName := strings.TrimSpace(gjson.GetBytes(manifestContent, packageNameFieldPathConstant).String())
	if len(packageName) == 0 {
		return "", ManifestError{Path: manifestPath, Message: manifestMissingNameMessageConstant}
	}
	return packageName, nil
}
