// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging and typed
// failures. OSCommandRunner is the default os/exec backed runner; tests
// substitute recording runners.
package execshell
