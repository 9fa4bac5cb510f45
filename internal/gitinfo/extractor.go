package gitinfo

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/relkit/internal/gitrepo"
)

const (
	gitDirectoryNameConstant      = ".git"
	headFileNameConstant          = "HEAD"
	configFileNameConstant        = "config"
	refsDirectoryNameConstant     = "refs"
	headsDirectoryNameConstant    = "heads"
	branchReferencePrefixConstant = "ref: refs/heads/"
)

// Extractor reads Git metadata files and assembles GitInformation records.
type Extractor struct {
	fileSystem afero.Fs
	normalizer gitrepo.RemoteURLNormalizer
}

// NewExtractor constructs an Extractor. Nil collaborators fall back to the
// operating system filesystem and scp-style remote normalization.
func NewExtractor(fileSystem afero.Fs, normalizer gitrepo.RemoteURLNormalizer) *Extractor {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if normalizer == nil {
		normalizer = gitrepo.NewRemoteURLNormalizer(gitrepo.RemoteURLStyleScp)
	}
	return &Extractor{fileSystem: fileSystem, normalizer: normalizer}
}

// ObtainGitInformation extracts GitInformation for the repository rooted at directory
// using the operating system filesystem.
func ObtainGitInformation(directory string) (GitInformation, error) {
	return NewExtractor(nil, nil).Extract(directory)
}

// Extract returns the branch, commit, and normalized origin remote of the
// repository rooted at directory. Read failures are returned unchanged;
// files lacking required content produce a MetadataError.
func (extractor *Extractor) Extract(directory string) (GitInformation, error) {
	gitDirectoryPath := filepath.Join(directory, gitDirectoryNameConstant)
	headPath := filepath.Join(gitDirectoryPath, headFileNameConstant)
	configPath := filepath.Join(gitDirectoryPath, configFileNameConstant)

	headContent, headReadError := extractor.readTrimmed(headPath)
	if headReadError != nil {
		return GitInformation{}, headReadError
	}

	information := GitInformation{SHA: headContent, Branch: headContent}
	if strings.HasPrefix(headContent, branchReferencePrefixConstant) {
		branchName := strings.TrimPrefix(headContent, branchReferencePrefixConstant)
		if len(branchName) == 0 {
			return GitInformation{}, MetadataError{Reason: ReasonEmptyBranchName, FilePath: headPath, Content: headContent}
		}

		branchPath := filepath.Join(gitDirectoryPath, refsDirectoryNameConstant, headsDirectoryNameConstant, filepath.FromSlash(branchName))
		commitSHA, branchReadError := extractor.readTrimmed(branchPath)
		if branchReadError != nil {
			return GitInformation{}, branchReadError
		}
		if len(commitSHA) == 0 {
			return GitInformation{}, MetadataError{Reason: ReasonEmptyCommitSHA, FilePath: branchPath}
		}

		information.Branch = branchName
		information.SHA = commitSHA
	}

	configContent, configReadError := afero.ReadFile(extractor.fileSystem, configPath)
	if configReadError != nil {
		return GitInformation{}, configReadError
	}

	originURL, originFound := NewOriginURLScanner().ScanText(string(configContent))
	if !originFound {
		return GitInformation{}, MetadataError{Reason: ReasonMissingRemoteURL, FilePath: configPath}
	}

	repository, normalizeError := extractor.normalizer(originURL)
	if normalizeError != nil {
		return GitInformation{}, MetadataError{Reason: ReasonInvalidRemoteURL, FilePath: configPath, Content: originURL, Cause: normalizeError}
	}
	if len(repository) == 0 {
		return GitInformation{}, MetadataError{Reason: ReasonMissingRemoteURL, FilePath: configPath}
	}

	information.Repository = repository
	return information, nil
}

func (extractor *Extractor) readTrimmed(filePath string) (string, error) {
	content, readError := afero.ReadFile(extractor.fileSystem, filePath)
	if readError != nil {
		return "", readError
	}
	return strings.TrimSpace(string(content)), nil
}
