package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion_Basic(t *testing.T) {
	r, err := ParseRegion("chr17:7,668,421-7,687,490")
	require.NoError(t, err)
	assert.Equal(t, "chr17", r.Chromosome)
	assert.Equal(t, int64(7668420), r.Start)
	assert.Equal(t, int64(7687490), r.End)
}

func TestParseRegion_Whitespace(t *testing.T) {
	r, err := ParseRegion("  chr1:100-200\t")
	require.NoError(t, err)
	assert.Equal(t, Region{Chromosome: "chr1", Start: 99, End: 200}, r)
}

func TestParseRegion_AccessionToken(t *testing.T) {
	r, err := ParseRegion("NC_000913.3:1-4641652")
	require.NoError(t, err)
	// Accession-style names keep their form, no chr prefix.
	assert.Equal(t, "NC_000913.3", r.Chromosome)
	assert.Equal(t, int64(0), r.Start)
	assert.Equal(t, int64(4641652), r.End)
}

func TestParseRegion_BareNumberGetsPrefix(t *testing.T) {
	r, err := ParseRegion("17:100-200")
	require.NoError(t, err)
	assert.Equal(t, "chr17", r.Chromosome)
}

func TestParseRegion_UppercaseQuirk(t *testing.T) {
	// The prefix check is case-sensitive on purpose: CHR1 is not recognized
	// as prefixed and gets a second prefix. Saved queries depend on this.
	r, err := ParseRegion("CHR1:1-10")
	require.NoError(t, err)
	assert.Equal(t, "chrCHR1", r.Chromosome)
}

func TestParseRegion_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no colon", "chr1 100 200"},
		{"missing end", "chr1:100-"},
		{"non-numeric", "chr1:abc-def"},
		{"zero start", "chr1:0-100"},
		{"start after end", "chr1:200-100"},
		{"start equals end minus one base", "chr1:100-99"},
		{"trailing junk", "chr1:100-200 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegion(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseRegion_SingleBase(t *testing.T) {
	// 1-based inclusive 100-100 is one base: internal [99, 100).
	r, err := ParseRegion("chr2:100-100")
	require.NoError(t, err)
	assert.Equal(t, int64(99), r.Start)
	assert.Equal(t, int64(100), r.End)
	assert.Equal(t, int64(1), r.Length())
}

func TestFormat_CommaGrouping(t *testing.T) {
	s := Format(Region{Chromosome: "chr17", Start: 7668420, End: 7687490})
	assert.Equal(t, "chr17:7,668,421-7,687,490", s)
}

func TestFormat_ParseRoundTrip(t *testing.T) {
	regions := []Region{
		{Chromosome: "chr1", Start: 0, End: 1},
		{Chromosome: "chr17", Start: 7668420, End: 7687490},
		{Chromosome: "chrX", Start: 999, End: 1000000},
		{Chromosome: "NC_000913.3", Start: 0, End: 4641652},
	}

	for _, r := range regions {
		parsed, err := ParseRegion(Format(r))
		require.NoError(t, err, "round-trip of %v", r)
		assert.Equal(t, r, parsed)
	}
}

func TestCanonicalChromosome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chr17", "chr17"},
		{"17", "chr17"},
		{"X", "chrX"},
		{"MT", "chrMT"},
		{"NC_000913.3", "NC_000913.3"},
		{"CHR1", "chrCHR1"}, // case-sensitive quirk
		{"chrUn_KI270302v1", "chrUn_KI270302v1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalChromosome(tt.in), "token %q", tt.in)
	}
}

func TestOverlaps(t *testing.T) {
	a := Region{Chromosome: "chr1", Start: 100, End: 200}

	assert.True(t, a.Overlaps(Region{Chromosome: "chr1", Start: 150, End: 250}))
	assert.True(t, a.Overlaps(Region{Chromosome: "1", Start: 199, End: 300}))
	assert.False(t, a.Overlaps(Region{Chromosome: "chr1", Start: 200, End: 300}), "half-open: touching intervals do not overlap")
	assert.False(t, a.Overlaps(Region{Chromosome: "chr2", Start: 100, End: 200}))
}

func TestIsRegion(t *testing.T) {
	assert.True(t, IsRegion("chr1:1-100"))
	assert.True(t, IsRegion(" 17:1,000-2,000 "))
	assert.False(t, IsRegion("BRCA1"))
	assert.False(t, IsRegion("zoom in"))
}

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "1", FormatPosition(1))
	assert.Equal(t, "1,000", FormatPosition(1000))
	assert.Equal(t, "7,668,421", FormatPosition(7668421))
}
