package gitinfo

import (
	"errors"
	"fmt"
)

const (
	malformedMetadataMessageConstant       = "missing or malformed Git metadata"
	emptyBranchNameErrorTemplateConstant   = "failed to get branch from %s: %s"
	emptyCommitSHAErrorTemplateConstant    = "failed to get SHA from %s"
	missingRemoteURLErrorTemplateConstant  = "failed to get remote origin URL from %s"
	invalidRemoteURLErrorTemplateConstant  = "failed to normalize remote origin URL %q from %s: %s"
	unknownMetadataErrorTemplateConstant   = "%s: %s"
	metadataReasonEmptyBranchNameConstant  = "empty_branch_name"
	metadataReasonEmptyCommitSHAConstant   = "empty_commit_sha"
	metadataReasonMissingRemoteURLConstant = "missing_remote_url"
	metadataReasonInvalidRemoteURLConstant = "invalid_remote_url"
)

// ErrMalformedGitMetadata classifies every MetadataError.
var ErrMalformedGitMetadata = errors.New(malformedMetadataMessageConstant)

// MetadataErrorReason identifies which metadata requirement was not satisfied.
type MetadataErrorReason string

// Metadata error reasons.
const (
	ReasonEmptyBranchName  MetadataErrorReason = MetadataErrorReason(metadataReasonEmptyBranchNameConstant)
	ReasonEmptyCommitSHA   MetadataErrorReason = MetadataErrorReason(metadataReasonEmptyCommitSHAConstant)
	ReasonMissingRemoteURL MetadataErrorReason = MetadataErrorReason(metadataReasonMissingRemoteURLConstant)
	ReasonInvalidRemoteURL MetadataErrorReason = MetadataErrorReason(metadataReasonInvalidRemoteURLConstant)
)

// MetadataError reports a metadata file that exists but lacks required content.
type MetadataError struct {
	Reason   MetadataErrorReason
	FilePath string
	Content  string
	Cause    error
}

// Error describes the offending file and condition.
func (metadataError MetadataError) Error() string {
	switch metadataError.Reason {
	case ReasonEmptyBranchName:
		return fmt.Sprintf(emptyBranchNameErrorTemplateConstant, metadataError.FilePath, metadataError.Content)
	case ReasonEmptyCommitSHA:
		return fmt.Sprintf(emptyCommitSHAErrorTemplateConstant, metadataError.FilePath)
	case ReasonMissingRemoteURL:
		return fmt.Sprintf(missingRemoteURLErrorTemplateConstant, metadataError.FilePath)
	case ReasonInvalidRemoteURL:
		return fmt.Sprintf(invalidRemoteURLErrorTemplateConstant, metadataError.Content, metadataError.FilePath, metadataError.Cause)
	default:
		return fmt.Sprintf(unknownMetadataErrorTemplateConstant, malformedMetadataMessageConstant, metadataError.FilePath)
	}
}

// Is reports whether the target is ErrMalformedGitMetadata.
func (metadataError MetadataError) Is(target error) bool {
	return target == ErrMalformedGitMetadata
}

// Unwrap exposes the underlying normalization failure, if any.
func (metadataError MetadataError) Unwrap() error {
	return metadataError.Cause
}
