// Package report writes operator-facing diagnostics and owns the decision to
// terminate the process. Utility layers return errors; only the outermost
// entry point should construct a Reporter wired to os.Exit.
package report

import (
	"fmt"
	"io"
	"os"
)

const (
	informationalPrefixTemplateConstant = "info: %s\n"
	fatalMessageTemplateConstant        = "%s\n"
	fatalExitCodeConstant               = 1
)

// ExitFunc terminates the process with the supplied status code.
type ExitFunc func(exitCode int)

// Reporter writes diagnostics to a non-stdout stream and maps unrecoverable
// failures to process termination.
type Reporter struct {
	diagnosticWriter io.Writer
	exitFunc         ExitFunc
}

// NewReporter constructs a reporter. A nil writer defaults to standard error
// and a nil exit function defaults to os.Exit.
func NewReporter(diagnosticWriter io.Writer, exitFunc ExitFunc) *Reporter {
	resolvedWriter := diagnosticWriter
	if resolvedWriter == nil {
		resolvedWriter = os.Stderr
	}
	resolvedExitFunc := exitFunc
	if resolvedExitFunc == nil {
		resolvedExitFunc = os.Exit
	}
	return &Reporter{diagnosticWriter: resolvedWriter, exitFunc: resolvedExitFunc}
}

// Info writes an informational message to the diagnostic stream without
// altering control flow.
func (reporter *Reporter) Info(message string) {
	fmt.Fprintf(reporter.diagnosticWriter, informationalPrefixTemplateConstant, message)
}

// Fatal writes the message to the diagnostic stream and terminates the
// process with a non-zero status.
func (reporter *Reporter) Fatal(message string) {
	fmt.Fprintf(reporter.diagnosticWriter, fatalMessageTemplateConstant, message)
	reporter.exitFunc(fatalExitCodeConstant)
}
