package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genoscope/gql/internal/gql"
)

// NewCommandsCommand creates the commands command: print the query language
// reference.
func NewCommandsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Show the query language reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return printer.JSON(gql.Commands())
			}
			for _, h := range gql.Commands() {
				fmt.Fprintf(printer.Writer, "%-10s %s\n", h.Command, h.Syntax)
				fmt.Fprintf(printer.Writer, "%-10s   %s\n", "", h.Description)
			}
			return nil
		},
	}
}
