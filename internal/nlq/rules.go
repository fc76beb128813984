// Package nlq layers natural-language translation over the strict grammar:
// a deterministic heuristic rule table first, an optional AI translator
// behind it. Neither layer ever fabricates a ParsedQuery - every rule
// synthesizes canonical query text and routes it back through gql.Parse, so
// the grammar stays the single source of validity.
package nlq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/track"
)

// leadInPhrases are recognized openers stripped before feature-name
// matching: "go to BRCA1" and "BRCA1" resolve identically.
var leadInPhrases = []string{
	"go to ",
	"navigate to ",
	"search for ",
	"where is ",
	"find ",
	"show ",
}

// rule is one heuristic: match the input and synthesize canonical query
// text, or report no match. Rules never build a ParsedQuery directly.
type rule struct {
	name       string
	synthesize func(h *Heuristic, input string) (string, bool)
}

// rules is the fixed-priority rule table, evaluated first match wins. The
// order is part of the contract: a bare coordinate is navigation even if a
// gene happens to carry the same name.
var rules = []rule{
	{"coordinate", (*Heuristic).matchCoordinate},
	{"feature-name", (*Heuristic).matchFeatureName},
	{"zoom", (*Heuristic).matchZoom},
	{"pan", (*Heuristic).matchPan},
	{"listing", (*Heuristic).matchListing},
}

// Heuristic is the deterministic translation layer. It holds the injected
// read-only name index shared with the executor.
type Heuristic struct {
	names track.NameIndex
}

// NewHeuristic creates a Heuristic over the given name index.
func NewHeuristic(names track.NameIndex) *Heuristic {
	return &Heuristic{names: names}
}

// matchCoordinate recognizes a bare coordinate string.
func (h *Heuristic) matchCoordinate(input string) (string, bool) {
	if !coord.IsRegion(input) {
		return "", false
	}
	return "navigate " + strings.TrimSpace(input), true
}

// matchFeatureName recognizes input that equals, or starts with, a known
// feature name after stripping a lead-in phrase. The name comparison is
// case-sensitive: the index stores canonical (uppercase) gene symbols and a
// lowercase word like "brca1 promoter" is left for later layers.
func (h *Heuristic) matchFeatureName(input string) (string, bool) {
	candidate := strings.TrimSpace(input)
	for _, phrase := range leadInPhrases {
		if len(candidate) > len(phrase) && strings.EqualFold(candidate[:len(phrase)], phrase) {
			candidate = strings.TrimSpace(candidate[len(phrase):])
			break
		}
	}
	if candidate == "" {
		return "", false
	}

	for _, name := range h.names.Names() {
		if candidate == name || hasWordPrefix(candidate, name) {
			return "search gene " + name, true
		}
	}
	return "", false
}

// hasWordPrefix reports whether s starts with prefix followed by a word
// boundary, so "BRCA1 exon 2" matches BRCA1 but "BRCA12" does not.
func hasWordPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	rest := s[len(prefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == ','
}

var zoomFactorPattern = regexp.MustCompile(`(?i)^zoom\s+(?:by\s+)?(\d+(?:\.\d+)?)\s*x?$`)

// matchZoom recognizes the fixed zoom vocabulary.
func (h *Heuristic) matchZoom(input string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	switch lower {
	case "zoom in", "closer", "zoom closer":
		return "zoom in", true
	case "zoom out", "wider", "zoom wider":
		return "zoom out", true
	}
	if m := zoomFactorPattern.FindStringSubmatch(strings.TrimSpace(input)); m != nil {
		return "zoom " + m[1] + "x", true
	}
	return "", false
}

var panPattern = regexp.MustCompile(`(?i)^(?:pan|move|scroll)\s+(left|right)(?:\s+(?:by\s+)?(\d+(?:\.\d+)?\s*(?:bp|kb|mb)?))?$`)

// matchPan recognizes pan synonyms with an optional magnitude.
func (h *Heuristic) matchPan(input string) (string, bool) {
	m := panPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", false
	}
	out := "pan " + strings.ToLower(m[1])
	if m[2] != "" {
		out += " " + strings.ToLower(strings.ReplaceAll(m[2], " ", ""))
	}
	return out, true
}

var variantsInPattern = regexp.MustCompile(`(?i)variants\s+in\s+([A-Za-z0-9_.-]+)`)

// matchListing recognizes listing phrases: gene/variant enumeration, the
// with-variants and pathogenic filters, and "variants in <gene>".
func (h *Heuristic) matchListing(input string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))

	if m := variantsInPattern.FindStringSubmatch(input); m != nil {
		return fmt.Sprintf("list variants in %s", m[1]), true
	}
	if strings.Contains(lower, "pathogenic") && strings.Contains(lower, "variant") {
		return "list variants pathogenic", true
	}

	listingIntent := strings.HasPrefix(lower, "list ") ||
		strings.HasPrefix(lower, "show me ") ||
		strings.HasPrefix(lower, "show ") ||
		strings.HasPrefix(lower, "what ")
	if !listingIntent {
		return "", false
	}

	switch {
	case strings.Contains(lower, "gene") && strings.Contains(lower, "with variants"):
		return "list genes with variants", true
	case strings.Contains(lower, "gene"):
		return "list genes", true
	case strings.Contains(lower, "variant"):
		return "list variants", true
	}
	return "", false
}
