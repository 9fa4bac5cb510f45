// Package gitrepo contains helpers for interpreting Git remote URLs.
//
// It parses the remote forms Git accepts (https, ssh, git and scp-like
// shorthand) into RemoteURL values and renders them back as credential-free
// SSH remotes in a selectable RemoteURLStyle.
package gitrepo
