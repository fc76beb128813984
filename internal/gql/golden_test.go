package gql

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestParse_GoldenCorpus parses every line of the grammar corpus and
// snapshots the results. The grammar is a wire format (queries are saved and
// shared as text), so any change to parse output is a visible diff here.
//
// To regenerate after an intentional grammar change:
//
//	go test ./internal/gql -run GoldenCorpus -update
func TestParse_GoldenCorpus(t *testing.T) {
	data, err := os.ReadFile("testdata/corpus.gql")
	require.NoError(t, err)

	var results []ParsedQuery
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		results = append(results, Parse(line))
	}

	out, err := json.MarshalIndent(results, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "corpus", out)
}
