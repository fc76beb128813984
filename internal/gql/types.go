// Package gql defines the browser query language: the ParsedQuery
// representation and the grammar parser that produces it.
//
// The grammar is the wire format for saved and shared queries, so the parser
// is strict and bit-stable: keywords are case-insensitive, whitespace between
// tokens is insignificant, and string values are case-sensitive except gene
// search terms, which are uppercased.
package gql

import "github.com/genoscope/gql/internal/coord"

// Command identifies what a parsed query asks for.
type Command string

const (
	CommandNavigate  Command = "navigate"
	CommandSearch    Command = "search"
	CommandZoom      Command = "zoom"
	CommandPan       Command = "pan"
	CommandFilter    Command = "filter"
	CommandHighlight Command = "highlight"
	CommandList      Command = "list"
	CommandSelect    Command = "select"
	CommandCount     Command = "count"
	CommandClear     Command = "clear"
	CommandUnknown   Command = "unknown"
)

// ParsedQuery is the outcome of one parse attempt. It is immutable once
// produced: Parse builds a fresh value per input line and never mutates it
// afterwards.
//
// When Valid is false, Params is nil and Error carries the reason. Command
// still names the keyword that was recognized, or CommandUnknown when none
// was.
type ParsedQuery struct {
	Raw     string  `json:"raw"`
	Valid   bool    `json:"valid"`
	Command Command `json:"command"`
	Params  Params  `json:"params,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Params is a sealed interface - only the *Params types in this package
// implement it. The marker method pattern prevents external implementations
// and enables exhaustive type switches in the executor.
type Params interface {
	commandParams() // Marker method - seals interface to this package
}

// NavigateParams moves the viewport to a region.
type NavigateParams struct {
	Region coord.Region `json:"region"`
}

func (NavigateParams) commandParams() {}

// SearchParams looks a feature up by name. Kind is "gene" unless the query
// named another kind explicitly. Term is stored uppercased.
type SearchParams struct {
	Kind string `json:"kind"`
	Term string `json:"term"`
}

func (SearchParams) commandParams() {}

// ZoomParams scales the viewport. Factor < 1 zooms in, > 1 zooms out.
type ZoomParams struct {
	Factor float64 `json:"factor"`
}

func (ZoomParams) commandParams() {}

// Direction is a pan direction.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// PanParams shifts the viewport sideways by a base-pair amount.
type PanParams struct {
	Direction   Direction `json:"direction"`
	AmountBases int64     `json:"amountBases"`
}

func (PanParams) commandParams() {}

// FilterCriterion is one field=value pair of a filter command.
type FilterCriterion struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FilterParams applies display filters. Criteria order is the order typed.
type FilterParams struct {
	Criteria []FilterCriterion `json:"criteria"`
}

func (FilterParams) commandParams() {}

// HighlightParams marks a region, optionally labeled.
type HighlightParams struct {
	Region coord.Region `json:"region"`
	Label  string       `json:"label,omitempty"`
}

func (HighlightParams) commandParams() {}

// ListKind selects what a list command enumerates.
type ListKind string

const (
	ListGenes    ListKind = "genes"
	ListVariants ListKind = "variants"
)

// List filter tags. A ListParams.Filter is one of these or empty.
const (
	ListFilterWithVariants = "with_variants"
	ListFilterPathogenic   = "pathogenic"
)

// ListParams enumerates genes or variants, optionally restricted by a fixed
// filter tag or to variants inside a named gene.
type ListParams struct {
	Kind   ListKind `json:"kind"`
	Filter string   `json:"filter,omitempty"`
	Gene   string   `json:"gene,omitempty"`
}

func (ListParams) commandParams() {}

// SelectTarget is the feature kind a SELECT/COUNT draws from.
type SelectTarget string

const (
	TargetGenes    SelectTarget = "genes"
	TargetVariants SelectTarget = "variants"
	TargetAll      SelectTarget = "all"
)

// Operator is a WHERE comparison operator.
type Operator string

const (
	OpEq Operator = "="
	OpNe Operator = "!="
	OpGt Operator = ">"
	OpLt Operator = "<"
	OpGe Operator = ">="
	OpLe Operator = "<="
)

// Condition is one WHERE comparison. Value keeps the literal text; the
// executor decides numeric vs string comparison from the field and operator.
//
// "length" is a computed field equal to end - start, not a stored attribute.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// OrderDirection is a sort direction.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// OrderBy is an ORDER BY clause. The literal expression "(end - start)" is
// normalized to the computed field "length" at parse time.
type OrderBy struct {
	Field     string         `json:"field"`
	Direction OrderDirection `json:"direction"`
}

// ScopeKind identifies which region restriction a query carries.
type ScopeKind string

const (
	// ScopeView restricts to features overlapping the current viewport.
	ScopeView ScopeKind = "view"
	// ScopeChromosome restricts to the full active chromosome.
	ScopeChromosome ScopeKind = "chromosome"
	// ScopeExplicit restricts to an explicit chromosome:start-end region.
	ScopeExplicit ScopeKind = "explicit"
	// ScopeChromosomeOnly restricts to all features on a named chromosome.
	ScopeChromosomeOnly ScopeKind = "chromosomeOnly"
)

// Scope is an IN clause. Region is set for ScopeExplicit; Chromosome for
// ScopeChromosomeOnly. ScopeView and ScopeChromosome resolve against the
// viewport at execution time.
type Scope struct {
	Kind       ScopeKind    `json:"kind"`
	Chromosome string       `json:"chromosome,omitempty"`
	Region     coord.Region `json:"region,omitzero"`
}

// SelectParams is a declarative SELECT or COUNT query. Conditions are
// AND-combined only; the grammar has no OR (documented limitation).
type SelectParams struct {
	Target    SelectTarget `json:"what"`
	From      string       `json:"from,omitempty"`
	Intersect string       `json:"intersect,omitempty"`
	Within    string       `json:"within,omitempty"`
	Where     []Condition  `json:"where,omitempty"`
	OrderBy   *OrderBy     `json:"orderBy,omitempty"`
	Limit     *int         `json:"limit,omitempty"`
	Scope     *Scope       `json:"inRegion,omitempty"`
}

func (SelectParams) commandParams() {}

// ClearTarget selects what a clear command resets.
type ClearTarget string

const (
	ClearFilters    ClearTarget = "filters"
	ClearHighlights ClearTarget = "highlights"
	ClearAll        ClearTarget = "all"
)

// ClearParams resets filters, highlights, or both.
type ClearParams struct {
	Target ClearTarget `json:"target"`
}

func (ClearParams) commandParams() {}

// LengthField is the computed field name for end - start.
const LengthField = "length"
