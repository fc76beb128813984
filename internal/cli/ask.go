package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genoscope/gql/internal/nlq"
)

// AskOptions holds flags for the ask command.
type AskOptions struct {
	SessionOptions
	OllamaURL   string
	OllamaModel string
	DryRun      bool
}

// NewAskCommand creates the ask command: free-form text in, translated
// query out, executed against loaded tracks.
func NewAskCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AskOptions{}

	cmd := &cobra.Command{
		Use:   "ask <text>",
		Short: "Translate natural language to a query and run it",
		Long: `Interpret free-form text through the translation pipeline: the
grammar first, then the heuristic rules, then (when --ollama-url is set)
the AI translator. AI output is re-parsed before anything executes; a
proposal that does not survive the grammar is discarded.

Example:
  gql ask --db hg38.db "where is BRCA1"
  gql ask --tracks genes.yaml --view chr17:1-83,257,441 "show me all genes"
  gql ask --db hg38.db --ollama-url http://localhost:11434 "which variants look dangerous here"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := LoadSession(cmd.Context(), opts.SessionOptions)
			if err != nil {
				return err
			}

			var ai nlq.Translator
			if opts.OllamaURL != "" {
				ai = nlq.NewOllamaTranslator(opts.OllamaURL, opts.OllamaModel)
			}
			interpreter := nlq.NewInterpreter(session.Names, ai)

			text := strings.Join(args, " ")
			interp := interpreter.Interpret(cmd.Context(), text, browserContext(session))

			out := cmd.OutOrStdout()
			if interp.Clarification != "" {
				fmt.Fprintf(out, "clarification needed: %s\n", interp.Clarification)
				return &ExitError{Code: ExitFailure, Message: "translation needs clarification"}
			}
			if interp.Source == nlq.SourceNone {
				fmt.Fprintf(out, "could not interpret: %s\n", interp.Query.Error)
				return &ExitError{Code: ExitFailure, Message: "no translation found"}
			}

			if interp.Source != nlq.SourceGrammar {
				fmt.Fprintf(out, "translated (%s): %s\n", interp.Source, interp.Query.Raw)
			}
			printer := &Printer{Format: rootOpts.Format, Writer: out}
			if opts.DryRun {
				return printer.Parsed(interp.Query)
			}
			return runQuery(printer, session, interp.Query, interp.NaturalLanguage)
		},
	}

	AddSessionFlags(cmd, &opts.SessionOptions)
	cmd.Flags().StringVar(&opts.OllamaURL, "ollama-url", "", "Ollama base URL; enables the AI translation layer")
	cmd.Flags().StringVar(&opts.OllamaModel, "ollama-model", "llama3.2", "Ollama model name")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the translated query without executing it")

	return cmd
}

// browserContext converts a session into the read-only state handed to the
// AI translator.
func browserContext(session *Session) nlq.BrowserContext {
	ctx := nlq.BrowserContext{Viewport: session.Viewport}
	for _, t := range session.Snapshot.Tracks() {
		ctx.Tracks = append(ctx.Tracks, nlq.TrackInfo{Name: t.Name, Kind: string(t.Kind)})
	}
	if session.Names != nil {
		ctx.KnownNames = session.Names.Names()
	}
	return ctx
}
