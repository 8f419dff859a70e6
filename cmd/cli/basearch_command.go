package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osforge/osforge/internal/execshell"
	"github.com/osforge/osforge/internal/platform"
)

const (
	basearchCommandUseConstant              = "basearch"
	basearchCommandShortDescriptionConstant = "Print the base architecture of the host"
	basearchCommandLongDescriptionConstant  = "basearch probes the machine architecture once and prints its canonical base architecture family."
	basearchOutputTemplateConstant          = "%s\n"
	resolverCreationErrorTemplateConstant   = "unable to construct architecture resolver: %w"
)

func newBasearchCommand(application *CLIApplication) *cobra.Command {
	return &cobra.Command{
		Use:   basearchCommandUseConstant,
		Short: basearchCommandShortDescriptionConstant,
		Long:  basearchCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			logger, loggerError := application.Logger()
			if loggerError != nil {
				return loggerError
			}

			executor, executorError := execshell.NewShellExecutorWithEchoWriter(logger, execshell.NewOSCommandRunner(), command.OutOrStdout())
			if executorError != nil {
				return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
			}

			resolver, resolverError := platform.NewArchitectureResolver(executor)
			if resolverError != nil {
				return fmt.Errorf(resolverCreationErrorTemplateConstant, resolverError)
			}

			resolvedBasearch, resolveError := resolver.Basearch(command.Context())
			if resolveError != nil {
				return resolveError
			}

			fmt.Fprintf(command.OutOrStdout(), basearchOutputTemplateConstant, resolvedBasearch)
			return nil
		},
	}
}
