package trackdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscope/gql/internal/track"
)

// newTestDB writes a small annotation database in the layout the conversion
// pipeline produces.
func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotations.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE tracks (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL
		);
		CREATE TABLE features (
			track_id   TEXT NOT NULL REFERENCES tracks(id),
			id         TEXT NOT NULL,
			name       TEXT NOT NULL,
			chromosome TEXT NOT NULL,
			start      INTEGER NOT NULL,
			"end"      INTEGER NOT NULL,
			attributes TEXT
		);
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO tracks (id, name, kind) VALUES
			('genes', 'Genes', 'genes'),
			('clinvar', 'ClinVar', 'variants');
		INSERT INTO features (track_id, id, name, chromosome, start, "end", attributes) VALUES
			('genes', 'ENSG00000141510', 'TP53', 'chr17', 7668420, 7687490,
			 '{"strand": "-", "biotype": "protein_coding"}'),
			('genes', 'ENSG00000012048', 'BRCA1', 'chr17', 43044294, 43125482,
			 '{"strand": "-", "biotype": "protein_coding"}'),
			('clinvar', 'VCV000012345', 'rs28934578', 'chr17', 7675087, 7675088,
			 '{"significance": "pathogenic"}'),
			('clinvar', 'VCV000067890', 'rs80357906', 'chr17', 43093000, 43093010, NULL);
	`)
	require.NoError(t, err)
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestTracks_LoadsInStoredOrder(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	tracks, err := db.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	genes := tracks[0]
	assert.Equal(t, "genes", genes.ID)
	assert.Equal(t, track.KindGenes, genes.Kind)
	require.Len(t, genes.Features, 2)
	assert.Equal(t, "TP53", genes.Features[0].Name, "insertion order preserved")
	assert.Equal(t, "-", genes.Features[0].Attributes["strand"])

	clinvar := tracks[1]
	require.Len(t, clinvar.Features, 2)
	assert.Equal(t, "pathogenic", clinvar.Features[0].Attributes["significance"])
	assert.Nil(t, clinvar.Features[1].Attributes, "NULL attributes stay empty")
}

func TestLoadSnapshot_BuildsNameIndex(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	snap, idx, err := db.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Tracks(), 2)

	loc, ok := idx.Lookup("BRCA1")
	require.True(t, ok)
	assert.Equal(t, int64(43044294), loc.Region.Start)

	_, ok = idx.Lookup("rs28934578")
	assert.False(t, ok, "variant names are not indexed")
}
