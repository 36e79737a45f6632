// Package execshell runs git as a subprocess with structured argument lists.
//
// ShellExecutor wraps a CommandRunner (OSCommandRunner in production) with zap
// logging and lifecycle notifications, and converts non-zero exit statuses
// into CommandFailedError values that keep the exit code and stderr of the
// delegated git invocation. Arguments are never passed through a shell, so
// branch and remote names reach git byte for byte.
package execshell
