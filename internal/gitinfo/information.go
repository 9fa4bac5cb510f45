package gitinfo

// GitInformation describes the current commit, branch, and origin remote of a repository.
type GitInformation struct {
	SHA        string `json:"sha"`
	Branch     string `json:"branch"`
	Repository string `json:"repository"`
}
