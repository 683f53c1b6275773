// Package execshell provides structured helpers for invoking the git executable.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// observers, OSCommandRunner performs the actual process execution through
// os/exec, and CommandMessageFormatter turns git invocations into
// human-readable progress lines. Non-zero exits surface as CommandFailedError
// values carrying the captured standard error so callers can translate them
// into domain failures.
package execshell
