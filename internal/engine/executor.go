package engine

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

// Executor evaluates validated queries. It holds only the injected name
// index; tracks and viewport arrive per call as immutable snapshots, so one
// Executor may serve any number of sequential Execute calls.
type Executor struct {
	names track.NameIndex
}

// New creates an Executor using the given name index. The index is shared
// with the heuristic translator and must not change after injection.
func New(names track.NameIndex) *Executor {
	return &Executor{names: names}
}

// Execute runs one validated query against a snapshot.
//
// Exactly one return value is non-nil: imperative commands yield an Effect
// for the caller to apply; SELECT, COUNT, and list queries - and any command
// that fails semantically - yield a QueryResult.
//
// Execute reads its snapshot arguments only: it performs no mutation, and
// re-running the same query against an unchanged snapshot returns identical
// output, in content and in order.
func (e *Executor) Execute(q gql.ParsedQuery, tracks track.Snapshot, view track.Viewport) (Effect, *QueryResult) {
	if !q.Valid {
		return nil, &QueryResult{Success: false, Message: q.Error, Query: q}
	}

	slog.Debug("executing query", "command", q.Command)

	switch params := q.Params.(type) {
	case gql.NavigateParams:
		return NavigateEffect{Region: params.Region}, nil

	case gql.SearchParams:
		loc, ok := e.names.Lookup(params.Term)
		if !ok {
			return nil, failure(q, semErr(ErrCodeNameNotFound, "Gene %q not found", params.Term))
		}
		return SearchEffect{Name: loc.Name, Region: loc.Region}, nil

	case gql.ZoomParams:
		return ZoomEffect{Factor: params.Factor}, nil

	case gql.PanParams:
		return PanEffect{Direction: params.Direction, AmountBases: params.AmountBases}, nil

	case gql.FilterParams:
		criteria := make([]gql.FilterCriterion, len(params.Criteria))
		copy(criteria, params.Criteria)
		return FilterEffect{Criteria: criteria}, nil

	case gql.HighlightParams:
		return HighlightEffect{ID: uuid.NewString(), Region: params.Region, Label: params.Label}, nil

	case gql.ClearParams:
		return ClearEffect{Target: params.Target}, nil

	case gql.ListParams:
		return nil, e.executeList(q, params, tracks, view)

	case gql.SelectParams:
		return nil, e.executeSelect(q, params, tracks, view)

	default:
		// Unreachable while Params stays sealed; kept so a new variant
		// fails loudly instead of silently doing nothing.
		return nil, &QueryResult{Success: false, Message: "Unknown command", Query: q}
	}
}

// sortedKeys returns map keys in sorted order for deterministic iteration.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
