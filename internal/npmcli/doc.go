// Package npmcli wraps the npm CLI dist-tag subcommands.
//
// Client builds argument lists, validates inputs, and parses npm output. It
// runs npm through execshell so registry interactions can be stubbed in tests.
package npmcli
