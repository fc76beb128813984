package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/genoscope/gql/internal/engine"
	"github.com/genoscope/gql/internal/gql"
)

// NewQueryCommand creates the query command: parse one query and execute it
// against loaded tracks.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{}

	cmd := &cobra.Command{
		Use:   "query <query>",
		Short: "Execute a query against loaded tracks",
		Long: `Parse a query and execute it against an annotation database or
YAML track files.

Declarative queries (SELECT, COUNT, list) print their result rows.
Imperative commands (navigate, zoom, pan, ...) print the effect they
request; there is no live viewport here, so effects are reported, not
applied.

Example:
  gql query --db hg38.db --view chr17:1-83,257,441 "count variants where significance = pathogenic in view"
  gql query --tracks genes.yaml "select genes in chr17 order by length desc limit 5"
  gql query --manifest genome.cue "list genes with variants"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := LoadSession(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			parsed := gql.Parse(input)
			printer := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runQuery(printer, session, parsed, "")
		},
	}

	AddSessionFlags(cmd, opts)
	return cmd
}

// runQuery executes one parsed query against a session and renders the
// outcome. naturalLanguage, when non-empty, is attached to result output so
// translated queries keep their provenance.
func runQuery(printer *Printer, session *Session, parsed gql.ParsedQuery, naturalLanguage string) error {
	exec := engine.New(session.Names)
	effect, result := exec.Execute(parsed, session.Snapshot, session.Viewport)

	if effect != nil {
		if err := printer.Effect(effect); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		return nil
	}

	result.NaturalLanguage = naturalLanguage
	if err := printer.Result(result); err != nil {
		return WrapExitError(ExitCommandError, "writing output", err)
	}
	if !result.Success {
		return &ExitError{Code: ExitFailure, Message: result.Message}
	}
	return nil
}
