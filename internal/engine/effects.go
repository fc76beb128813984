package engine

import (
	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/gql"
)

// Effect is the sealed set of viewport and session mutations an imperative
// command requests. The executor never applies effects itself; it returns
// them for the embedding browser to act on.
type Effect interface {
	effect()
}

// NavigateEffect moves the viewport to an explicit region.
type NavigateEffect struct {
	Region coord.Region `json:"region"`
}

// SearchEffect moves the viewport to a named feature's span.
type SearchEffect struct {
	Name   string       `json:"name"`
	Region coord.Region `json:"region"`
}

// ZoomEffect scales the viewport width by Factor (0.5 halves, 2 doubles).
type ZoomEffect struct {
	Factor float64 `json:"factor"`
}

// PanEffect shifts the viewport by a base-pair amount.
type PanEffect struct {
	Direction   gql.Direction `json:"direction"`
	AmountBases int64         `json:"amountBases"`
}

// FilterEffect replaces the active display filters.
type FilterEffect struct {
	Criteria []gql.FilterCriterion `json:"criteria"`
}

// HighlightEffect adds a labeled highlight. ID is freshly generated per
// execution so repeated highlights of the same region stay distinct.
type HighlightEffect struct {
	ID     string       `json:"id"`
	Region coord.Region `json:"region"`
	Label  string       `json:"label,omitempty"`
}

// ClearEffect removes filters, highlights, or both.
type ClearEffect struct {
	Target gql.ClearTarget `json:"target"`
}

func (NavigateEffect) effect()  {}
func (SearchEffect) effect()    {}
func (ZoomEffect) effect()      {}
func (PanEffect) effect()       {}
func (FilterEffect) effect()    {}
func (HighlightEffect) effect() {}
func (ClearEffect) effect()     {}
