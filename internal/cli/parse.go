package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genoscope/gql/internal/gql"
)

// NewParseCommand creates the parse command. It runs queries through the
// grammar without executing anything, which makes it the tool for checking
// saved queries and for golden-file debugging.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [query]...",
		Short: "Parse queries without executing them",
		Long: `Parse one or more queries and print their structured form.

Each argument is one query. With no arguments, queries are read from
standard input, one per line. Blank lines are skipped.

Example:
  gql parse "select genes where length > 10000 in view"
  gql parse "zoom in" "pan left 5kb"
  cat saved-queries.gql | gql parse --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						inputs = append(inputs, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return WrapExitError(ExitCommandError, "reading input", err)
				}
			}
			if len(inputs) == 0 {
				return &ExitError{Code: ExitCommandError, Message: "no queries to parse"}
			}

			printer := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			invalid := 0
			for _, input := range inputs {
				parsed := gql.Parse(input)
				if !parsed.Valid {
					invalid++
				}
				if err := printer.Parsed(parsed); err != nil {
					return WrapExitError(ExitCommandError, "writing output", err)
				}
			}

			if invalid > 0 {
				return &ExitError{
					Code:    ExitFailure,
					Message: fmt.Sprintf("%d of %d queries invalid", invalid, len(inputs)),
				}
			}
			return nil
		},
	}
	return cmd
}
