// Package coord converts between the two coordinate systems the query
// engine deals in: display coordinates (1-based, inclusive, comma-grouped,
// what users type) and internal coordinates (0-based, half-open, what every
// other package computes with).
package coord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Region is an internal genomic interval: 0-based, half-open [Start, End).
type Region struct {
	Chromosome string `json:"chromosome"`
	Start      int64  `json:"start"`
	End        int64  `json:"end"`
}

// regionPattern matches TOKEN:START-END. TOKEN is alphanumeric plus "_" and
// ".", which admits accession-style names such as NC_000913.3. Numeric
// fields may carry thousands-separator commas.
var regionPattern = regexp.MustCompile(`^([A-Za-z0-9_.]+):([0-9,]+)-([0-9,]+)$`)

// englishPrinter groups digits the way browsers display genomic positions
// (7,668,421). Shared by Format and FormatPosition.
var englishPrinter = message.NewPrinter(language.English)

// ParseRegion parses a display-coordinate string into an internal Region.
//
// Accepted form: TOKEN:START-END with optional surrounding whitespace and
// optional commas inside the numbers. START and END are 1-based inclusive;
// the returned Region is 0-based half-open.
//
// Returns an error when the input does not match the pattern, when a number
// does not fit int64, or when the converted interval is empty or negative
// (start < 1, or start > end in display terms).
func ParseRegion(s string) (Region, error) {
	m := regionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Region{}, fmt.Errorf("invalid coordinates %q: expected chromosome:start-end", s)
	}

	start, err := parsePosition(m[2])
	if err != nil {
		return Region{}, err
	}
	end, err := parsePosition(m[3])
	if err != nil {
		return Region{}, err
	}

	// Display 1-based inclusive -> internal 0-based half-open.
	r := Region{
		Chromosome: CanonicalChromosome(m[1]),
		Start:      start - 1,
		End:        end,
	}
	if r.Start < 0 {
		return Region{}, fmt.Errorf("invalid coordinates %q: positions are 1-based", s)
	}
	if r.Start >= r.End {
		return Region{}, fmt.Errorf("invalid coordinates %q: start must be before end", s)
	}
	return r, nil
}

// Format renders an internal Region as a display-coordinate string with
// comma grouping, e.g. {chr17, 7668420, 7687490} -> "chr17:7,668,421-7,687,490".
//
// Format is the inverse of ParseRegion: ParseRegion(Format(r)) == r for every
// valid Region whose chromosome is already canonical.
func Format(r Region) string {
	return fmt.Sprintf("%s:%s-%s",
		r.Chromosome,
		FormatPosition(r.Start+1),
		FormatPosition(r.End))
}

// FormatPosition renders a single display position with thousands grouping.
func FormatPosition(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

// CanonicalChromosome normalizes a chromosome token for comparison and
// display:
//
//   - a token already starting with the literal "chr" is returned as given
//   - a token containing "_" or "." (accession-style, e.g. NC_000913.3) is
//     returned as given
//   - anything else gets a "chr" prefix, so "17" -> "chr17", "X" -> "chrX"
//
// Known quirk, preserved deliberately: the prefix check is case-sensitive,
// so an uppercase "CHR1" is not recognized as prefixed and becomes
// "chrCHR1". Saved queries round-trip through this behavior, so it must not
// change.
func CanonicalChromosome(token string) string {
	if strings.HasPrefix(token, "chr") {
		return token
	}
	if strings.ContainsAny(token, "_.") {
		return token
	}
	return "chr" + token
}

// IsRegion reports whether s looks like a display-coordinate string. It is a
// pattern check only; ParseRegion may still reject the numbers.
func IsRegion(s string) bool {
	return regionPattern.MatchString(strings.TrimSpace(s))
}

// parsePosition parses one display position, tolerating comma separators.
func parsePosition(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return n, nil
}

// Overlaps reports whether two half-open intervals on the same chromosome
// share at least one base. Chromosomes are compared after canonicalization.
func (r Region) Overlaps(other Region) bool {
	if CanonicalChromosome(r.Chromosome) != CanonicalChromosome(other.Chromosome) {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

// Length returns End - Start.
func (r Region) Length() int64 {
	return r.End - r.Start
}

// String implements fmt.Stringer using the display form.
func (r Region) String() string {
	return Format(r)
}
