package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TrackSummary is one row of the tracks listing.
type TrackSummary struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Features int    `json:"features"`
}

// NewTracksCommand creates the tracks command: list what a data source
// contains without running any query.
func NewTracksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{}

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List loaded tracks and their feature counts",
		Long: `Load a data source and list its tracks.

Example:
  gql tracks --db hg38.db
  gql tracks --manifest genome.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := LoadSession(cmd.Context(), *opts)
			if err != nil {
				return err
			}

			var summaries []TrackSummary
			for _, t := range session.Snapshot.Tracks() {
				summaries = append(summaries, TrackSummary{
					Name:     t.Name,
					Kind:     string(t.Kind),
					Features: len(t.Features),
				})
			}

			printer := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return printer.JSON(summaries)
			}
			for _, s := range summaries {
				fmt.Fprintf(printer.Writer, "%-20s %-12s %d features\n", s.Name, s.Kind, s.Features)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(printer.Writer, "no tracks loaded")
			}
			return nil
		},
	}

	AddSessionFlags(cmd, opts)
	return cmd
}
