package execshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

const (
	commandEchoTemplateConstant           = "+ %s\n"
	commandTokenJoinSeparatorConstant     = " "
	commandStartedMessageConstant         = "executing command"
	commandCompletedMessageConstant       = "command completed"
	commandFailedMessageConstant          = "command failed"
	logFieldCommandConstant               = "command"
	logFieldExitCodeConstant              = "exit_code"
	logFieldWorkingDirectoryConstant      = "working_directory"
	commandEchoWriteErrorTemplateConstant = "unable to echo command line: %w"
)

// ShellExecutor coordinates command echoing, logging, and execution policy.
type ShellExecutor struct {
	logger        *zap.Logger
	commandRunner CommandRunner
	echoWriter    io.Writer
}

// NewShellExecutor validates dependencies and constructs an executor that
// echoes command lines to standard output.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithEchoWriter(logger, commandRunner, os.Stdout)
}

// NewShellExecutorWithEchoWriter constructs an executor echoing command lines
// to the supplied writer.
func NewShellExecutorWithEchoWriter(logger *zap.Logger, commandRunner CommandRunner, echoWriter io.Writer) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	resolvedEchoWriter := echoWriter
	if resolvedEchoWriter == nil {
		resolvedEchoWriter = os.Stdout
	}

	return &ShellExecutor{
		logger:        logger,
		commandRunner: commandRunner,
		echoWriter:    resolvedEchoWriter,
	}, nil
}

// Execute runs the supplied command, echoing its shell-quoted invocation and
// mapping failures to typed errors. Non-zero exits surface as
// CommandFailedError unless the command allows them.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandLine := FormatCommandLine(command)

	if !command.Details.SuppressCommandEcho {
		if _, echoError := fmt.Fprintf(executor.echoWriter, commandEchoTemplateConstant, commandLine); echoError != nil {
			return ExecutionResult{}, fmt.Errorf(commandEchoWriteErrorTemplateConstant, echoError)
		}
	}

	executor.logger.Debug(
		commandStartedMessageConstant,
		zap.String(logFieldCommandConstant, commandLine),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.logger.Debug(
			commandFailedMessageConstant,
			zap.String(logFieldCommandConstant, commandLine),
			zap.Error(runError),
		)
		return ExecutionResult{}, executionFailure
	}

	if executionResult.ExitCode != 0 && !command.Details.AllowNonZeroExit {
		commandFailure := CommandFailedError{Command: command, Result: executionResult}
		executor.logger.Debug(
			commandFailedMessageConstant,
			zap.String(logFieldCommandConstant, commandLine),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		return executionResult, commandFailure
	}

	executor.logger.Debug(
		commandCompletedMessageConstant,
		zap.String(logFieldCommandConstant, commandLine),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}

// ExecuteOSTree runs the ostree CLI with the provided details.
func (executor *ShellExecutor) ExecuteOSTree(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: ToolOSTree, Details: details})
}

// ExecuteTar runs the tar CLI with the provided details.
func (executor *ShellExecutor) ExecuteTar(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: ToolTar, Details: details})
}

// ExecuteUname runs the uname CLI with the provided details.
func (executor *ShellExecutor) ExecuteUname(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: ToolUname, Details: details})
}

// FormatCommandLine renders the command as a shell-quoted audit line.
func FormatCommandLine(command ShellCommand) string {
	commandTokens := append([]string{string(command.Name)}, command.Details.Arguments...)
	quotedTokens := make([]string, 0, len(commandTokens))
	for _, commandToken := range commandTokens {
		quotedToken, quoteError := syntax.Quote(commandToken, syntax.LangPOSIX)
		if quoteError != nil {
			quotedToken = commandToken
		}
		quotedTokens = append(quotedTokens, quotedToken)
	}
	return strings.Join(quotedTokens, commandTokenJoinSeparatorConstant)
}
