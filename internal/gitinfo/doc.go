// Package gitinfo extracts the checked-out branch, commit, and origin remote
// of a Git working directory by reading the repository metadata files
// directly, and persists the result as git-info.json.
//
// Extractor performs the read-only extraction, Writer serializes the
// resulting GitInformation, and CommandBuilder wires both into the git-info
// Cobra command.
package gitinfo
