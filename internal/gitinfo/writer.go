package gitinfo

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// InformationFileName is the file written into the target directory.
	InformationFileName                = "git-info.json"
	informationIndentationConstant     = "  "
	informationFilePermissionsConstant = 0o644
	informationTrailingNewlineConstant = '\n'
)

// Writer persists GitInformation records as indented JSON.
type Writer struct {
	fileSystem afero.Fs
}

// NewWriter constructs a Writer; a nil filesystem selects the operating system filesystem.
func NewWriter(fileSystem afero.Fs) *Writer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Writer{fileSystem: fileSystem}
}

// Write replaces <directory>/git-info.json with the record and returns the written path.
func (writer *Writer) Write(directory string, information GitInformation) (string, error) {
	encodedInformation, encodeError := json.MarshalIndent(information, "", informationIndentationConstant)
	if encodeError != nil {
		return "", encodeError
	}
	encodedInformation = append(encodedInformation, informationTrailingNewlineConstant)

	informationPath := filepath.Join(directory, InformationFileName)
	if writeError := afero.WriteFile(writer.fileSystem, informationPath, encodedInformation, informationFilePermissionsConstant); writeError != nil {
		return "", writeError
	}
	return informationPath, nil
}
