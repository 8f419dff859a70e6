package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osforge/osforge/internal/digest"
)

const (
	digestCommandUseConstant              = "sha256 <file>"
	digestCommandShortDescriptionConstant = "Print the SHA-256 digest of a file"
	digestCommandLongDescriptionConstant  = "sha256 streams the file through a SHA-256 digest and prints the lowercase hex result."
	digestOutputTemplateConstant          = "%s\n"
)

func newDigestCommand(application *CLIApplication) *cobra.Command {
	return &cobra.Command{
		Use:   digestCommandUseConstant,
		Short: digestCommandShortDescriptionConstant,
		Long:  digestCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			computedDigest, digestError := digest.SHA256File(arguments[0])
			if digestError != nil {
				return digestError
			}
			fmt.Fprintf(command.OutOrStdout(), digestOutputTemplateConstant, computedDigest)
			return nil
		},
	}
}
