package nlq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

func testIndex() track.NameIndex {
	return track.NewMemoryIndex([]track.Location{
		{Name: "TP53", Region: coord.Region{Chromosome: "chr17", Start: 7668420, End: 7687490}},
		{Name: "BRCA1", Region: coord.Region{Chromosome: "chr17", Start: 43044294, End: 43125482}},
		{Name: "BRCA2", Region: coord.Region{Chromosome: "chr13", Start: 32315507, End: 32400268}},
	})
}

func translate(t *testing.T, input string) gql.ParsedQuery {
	t.Helper()
	q, ok := NewHeuristic(testIndex()).Translate(input)
	require.True(t, ok, "input %q should translate", input)
	require.True(t, q.Valid, "translated query must be valid, got %q", q.Error)
	return q
}

func TestTranslate_BareCoordinate(t *testing.T) {
	q := translate(t, "chr17:7,668,421-7,687,490")
	assert.Equal(t, gql.CommandNavigate, q.Command)
	params := q.Params.(gql.NavigateParams)
	assert.Equal(t, int64(7668420), params.Region.Start)
}

func TestTranslate_FeatureName(t *testing.T) {
	for _, input := range []string{"BRCA1", "go to BRCA1", "where is BRCA1", "find BRCA1", "navigate to BRCA1"} {
		q := translate(t, input)
		assert.Equal(t, gql.CommandSearch, q.Command, "input %q", input)
		assert.Equal(t, gql.SearchParams{Kind: "gene", Term: "BRCA1"}, q.Params, "input %q", input)
	}
}

func TestTranslate_FeatureNamePrefix(t *testing.T) {
	q := translate(t, "TP53 promoter")
	assert.Equal(t, gql.SearchParams{Kind: "gene", Term: "TP53"}, q.Params)

	// No word boundary, no match: BRCA12 is not BRCA1.
	_, ok := NewHeuristic(testIndex()).Translate("BRCA12")
	assert.False(t, ok)
}

func TestTranslate_FeatureNameIsCaseSensitive(t *testing.T) {
	// The index holds canonical uppercase symbols; lowercase input is left
	// for the AI layer.
	_, ok := NewHeuristic(testIndex()).Translate("brca1")
	assert.False(t, ok)
}

func TestTranslate_ZoomSynonyms(t *testing.T) {
	tests := []struct {
		input  string
		factor float64
	}{
		{"zoom in", 0.5},
		{"closer", 0.5},
		{"zoom out", 2},
		{"wider", 2},
		{"zoom 4x", 4},
		{"zoom by 2", 2},
	}
	for _, tt := range tests {
		q := translate(t, tt.input)
		assert.Equal(t, gql.ZoomParams{Factor: tt.factor}, q.Params, "input %q", tt.input)
	}
}

func TestTranslate_PanSynonyms(t *testing.T) {
	tests := []struct {
		input  string
		params gql.PanParams
	}{
		{"pan left", gql.PanParams{Direction: gql.DirectionLeft, AmountBases: 10000}},
		{"move right", gql.PanParams{Direction: gql.DirectionRight, AmountBases: 10000}},
		{"scroll left 50kb", gql.PanParams{Direction: gql.DirectionLeft, AmountBases: 50000}},
		{"move right by 200bp", gql.PanParams{Direction: gql.DirectionRight, AmountBases: 200}},
	}
	for _, tt := range tests {
		q := translate(t, tt.input)
		assert.Equal(t, gql.CommandPan, q.Command, "input %q", tt.input)
		assert.Equal(t, tt.params, q.Params, "input %q", tt.input)
	}
}

func TestTranslate_ListingPhrases(t *testing.T) {
	tests := []struct {
		input  string
		params gql.ListParams
	}{
		{"show variants in BRCA1", gql.ListParams{Kind: gql.ListVariants, Gene: "BRCA1"}},
		{"what genes are here", gql.ListParams{Kind: gql.ListGenes}},
		{"show me genes with variants", gql.ListParams{Kind: gql.ListGenes, Filter: gql.ListFilterWithVariants}},
		{"list pathogenic variants", gql.ListParams{Kind: gql.ListVariants, Filter: gql.ListFilterPathogenic}},
		{"show me variants", gql.ListParams{Kind: gql.ListVariants}},
	}
	for _, tt := range tests {
		q := translate(t, tt.input)
		assert.Equal(t, gql.CommandList, q.Command, "input %q", tt.input)
		assert.Equal(t, tt.params, q.Params, "input %q", tt.input)
	}
}

func TestTranslate_NoMatch(t *testing.T) {
	h := NewHeuristic(testIndex())
	for _, input := range []string{"", "make me a sandwich", "delete everything", "how long is chr1"} {
		_, ok := h.Translate(input)
		assert.False(t, ok, "input %q must not translate", input)
	}
}

// Every heuristic translation must be valid after re-parsing - the rules
// synthesize only canonical grammar.
func TestTranslate_AlwaysReparses(t *testing.T) {
	h := NewHeuristic(testIndex())
	inputs := []string{
		"chr1:1-1,000",
		"go to TP53",
		"closer",
		"wider",
		"scroll right 1mb",
		"list genes",
		"pathogenic variants",
		"variants in BRCA2",
	}
	for _, input := range inputs {
		q, ok := h.Translate(input)
		require.True(t, ok, "input %q", input)
		assert.True(t, q.Valid, "input %q synthesized an invalid query: %s", input, q.Error)
	}
}

func TestTranslate_CoordinateWinsOverName(t *testing.T) {
	// Rule priority is fixed: a coordinate is navigation even when the
	// name rule could also fire on some lead-in.
	q := translate(t, "chr13:32,315,508-32,400,268")
	assert.Equal(t, gql.CommandNavigate, q.Command)
}
