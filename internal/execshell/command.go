package execshell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	toolNameOSTreeStringConstant              = "ostree"
	toolNameTarStringConstant                 = "tar"
	toolNameUnameStringConstant               = "uname"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandNameRequiredMessageConstant        = "command name must not be empty"
	commandFailureTemplateConstant            = "%s failed with exit code %d%s"
	commandExecutionFailureTemplateConstant   = "%s failed: %s"
	standardErrorSuffixTemplateConstant       = ": %s"
	emptyStringConstant                       = ""
)

// ToolName identifies a supported executable.
type ToolName string

// Supported tool enumerations.
const (
	ToolOSTree ToolName = ToolName(toolNameOSTreeStringConstant)
	ToolTar    ToolName = ToolName(toolNameTarStringConstant)
	ToolUname  ToolName = ToolName(toolNameUnameStringConstant)
)

// Sentinel errors reported during executor construction.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	ErrCommandNameRequired        = errors.New(commandNameRequiredMessageConstant)
)

// CommandDetails describes a tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// CaptureOutput buffers the child's standard streams into the
	// ExecutionResult instead of passing them through to the console.
	CaptureOutput bool
	// AllowNonZeroExit reports non-zero exits through the ExecutionResult
	// instead of a CommandFailedError.
	AllowNonZeroExit bool
	// SuppressCommandEcho skips the audit echo line for probe commands whose
	// only observable effect is their exit code.
	SuppressCommandEcho bool
}

// ShellCommand combines a ToolName with invocation details.
type ShellCommand struct {
	Name    ToolName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandFailedError indicates a command completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the command failure including trailing standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := emptyStringConstant
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailureTemplateConstant, failure.Command.Name, failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError indicates the command could not be launched or observed.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the launch failure.
func (failure CommandExecutionError) Error() string {
	causeDescription := emptyStringConstant
	if failure.Cause != nil {
		causeDescription = failure.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionFailureTemplateConstant, failure.Command.Name, causeDescription)
}

// Unwrap exposes the underlying launch failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}
