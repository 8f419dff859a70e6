// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with command echoing and logging via ShellExecutor,
// exposes OSCommandRunner for default process execution, and defines the
// abstractions used throughout osforge to run ostree, tar, and other CLIs in
// a testable manner.
package execshell
