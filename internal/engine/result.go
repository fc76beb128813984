package engine

import (
	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

// DetailField is one key/value pair of a result item's detail listing.
// Details are an ordered list, not a map, so result rendering is
// deterministic.
type DetailField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListResultItem is one feature row of a SELECT or list result.
// Coordinates are internal (0-based, half-open).
type ListResultItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Chromosome string        `json:"chromosome"`
	Start      int64         `json:"start"`
	End        int64         `json:"end"`
	Details    []DetailField `json:"details,omitempty"`
}

// QueryResult is the outcome of a SELECT, COUNT, or list query, or of any
// command that failed semantically.
type QueryResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Query is the ParsedQuery that produced this result.
	Query gql.ParsedQuery `json:"query"`

	// Results is the ordered item list for SELECT and list queries.
	Results []ListResultItem `json:"results,omitempty"`

	// ShowResultPanel tells the UI to open the result panel.
	ShowResultPanel bool `json:"showResultPanel"`

	// NaturalLanguage carries the original free-form text when the query
	// came through a translation layer.
	NaturalLanguage string `json:"naturalLanguage,omitempty"`
}

// failure builds a failed QueryResult from a semantic error.
func failure(q gql.ParsedQuery, err *SemanticError) *QueryResult {
	return &QueryResult{Success: false, Message: err.Message, Query: q}
}

// itemFromFeature converts a feature to a result row. Attribute details are
// emitted in sorted key order for deterministic output.
func itemFromFeature(f track.Feature) ListResultItem {
	item := ListResultItem{
		ID:         f.ID,
		Name:       f.Name,
		Chromosome: f.Chromosome,
		Start:      f.Start,
		End:        f.End,
	}
	for _, key := range sortedKeys(f.Attributes) {
		item.Details = append(item.Details, DetailField{Key: key, Value: f.Attributes[key]})
	}
	return item
}
