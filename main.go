package main

import (
	"github.com/osforge/osforge/cmd/cli"
	"github.com/osforge/osforge/internal/report"
)

// main executes the osforge command-line application. Utility layers return
// errors; the reporter translates the outermost failure into process exit.
func main() {
	reporter := report.NewReporter(nil, nil)
	if executionError := cli.Execute(); executionError != nil {
		reporter.Fatal(executionError.Error())
	}
}
