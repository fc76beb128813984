// Package trackdb reads prepared annotation databases into track snapshots.
//
// The databases are SQLite files produced by the gene-track conversion
// pipeline (GFF3 in, one row per feature out). This package is the read
// side only: it loads tracks and builds the name index, and never writes.
package trackdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/genoscope/gql/internal/track"
)

// DB is a read-only handle to one annotation database.
type DB struct {
	db *sql.DB
}

// Open opens an annotation database at the given path.
//
// The connection is configured read-only with a busy timeout, so a
// conversion pipeline rewriting the file concurrently cannot corrupt a
// load; at worst the open fails and the caller retries.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open annotation database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect annotation database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Tracks loads every track with its features in stored order. Feature row
// order is the pipeline's discovery order; downstream sorting relies on it
// for deterministic tie-breaking, so the query preserves insertion order
// explicitly.
func (d *DB) Tracks(ctx context.Context) ([]track.Track, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, kind FROM tracks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []track.Track
	for rows.Next() {
		var t track.Track
		var kind string
		if err := rows.Scan(&t.ID, &t.Name, &kind); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		t.Kind = track.Kind(kind)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}

	for i := range tracks {
		features, err := d.features(ctx, tracks[i].ID)
		if err != nil {
			return nil, err
		}
		tracks[i].Features = features
	}
	return tracks, nil
}

// features loads one track's features in insertion order.
func (d *DB) features(ctx context.Context, trackID string) ([]track.Feature, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, chromosome, start, "end", attributes
		 FROM features WHERE track_id = ? ORDER BY rowid`, trackID)
	if err != nil {
		return nil, fmt.Errorf("query features of %q: %w", trackID, err)
	}
	defer rows.Close()

	var features []track.Feature
	for rows.Next() {
		var f track.Feature
		var attrs sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.Chromosome, &f.Start, &f.End, &attrs); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		if attrs.Valid && attrs.String != "" {
			if err := json.Unmarshal([]byte(attrs.String), &f.Attributes); err != nil {
				return nil, fmt.Errorf("decode attributes of feature %q: %w", f.ID, err)
			}
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features of %q: %w", trackID, err)
	}
	return features, nil
}

// LoadSnapshot loads the whole database into an immutable snapshot plus the
// name index over its gene tracks.
func (d *DB) LoadSnapshot(ctx context.Context) (track.Snapshot, *track.MemoryIndex, error) {
	tracks, err := d.Tracks(ctx)
	if err != nil {
		return track.Snapshot{}, nil, err
	}
	snap := track.NewSnapshot(tracks)
	return snap, track.IndexSnapshot(snap), nil
}
