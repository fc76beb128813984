package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/track"
	"github.com/genoscope/gql/internal/trackdb"
)

// SessionOptions are the shared data-source flags of the commands that
// execute queries. A session loads from an annotation database, from YAML
// track files, or from a manifest naming either.
type SessionOptions struct {
	Manifest string
	Database string
	Tracks   []string
	View     string
}

// Session is a loaded, immutable query target: the snapshot, its name
// index, and the viewport.
type Session struct {
	Snapshot track.Snapshot
	Names    *track.MemoryIndex
	Viewport track.Viewport
}

// LoadSession resolves the data-source flags into a session. Explicit flags
// override the manifest's values; --view overrides the manifest viewport.
func LoadSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	dbPath := opts.Database
	trackPaths := opts.Tracks
	var view track.Viewport

	if opts.Manifest != "" {
		manifest, err := LoadManifest(opts.Manifest)
		if err != nil {
			return nil, err
		}
		if dbPath == "" {
			dbPath = manifest.Database
		}
		if len(trackPaths) == 0 {
			trackPaths = manifest.Tracks
		}
		if manifest.HasView {
			view = manifest.Viewport
		}
	}

	if opts.View != "" {
		region, err := coord.ParseRegion(opts.View)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --view region", err)
		}
		view = region
	}

	var snap track.Snapshot
	var names *track.MemoryIndex
	switch {
	case dbPath != "":
		db, err := trackdb.Open(dbPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "opening annotation database", err)
		}
		defer db.Close()
		snap, names, err = db.LoadSnapshot(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading tracks", err)
		}
	case len(trackPaths) > 0:
		var err error
		snap, names, err = LoadTrackFixtures(trackPaths)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &ExitError{Code: ExitCommandError, Message: "no data source: pass --db, --tracks, or --manifest"}
	}

	return &Session{Snapshot: snap, Names: names, Viewport: view}, nil
}

// AddSessionFlags registers the shared data-source flags on a command.
func AddSessionFlags(cmd *cobra.Command, opts *SessionOptions) {
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "path to genome manifest (CUE)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to annotation database (SQLite)")
	cmd.Flags().StringArrayVar(&opts.Tracks, "tracks", nil, "path to YAML track file (repeatable)")
	cmd.Flags().StringVar(&opts.View, "view", "", "viewport region, e.g. chr17:7,668,421-7,687,490")
}
