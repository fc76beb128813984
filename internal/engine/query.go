package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

// executeSelect runs the SELECT/COUNT pipeline in its fixed order: source
// resolution, scope filter, joins, predicate filter, ordering, limiting.
// COUNT shares every step and differs only in the result shape.
func (e *Executor) executeSelect(q gql.ParsedQuery, params gql.SelectParams, tracks track.Snapshot, view track.Viewport) *QueryResult {
	isCount := q.Command == gql.CommandCount

	// LIMIT 0 is a valid request for nothing: succeed without scanning,
	// scope or no scope.
	if params.Limit != nil && *params.Limit == 0 {
		return selectResult(q, nil, isCount)
	}

	features, serr := e.resolveSource(params, tracks)
	if serr != nil {
		return failure(q, serr)
	}

	features, serr = applyScope(features, params.Scope, view)
	if serr != nil {
		return failure(q, serr)
	}

	if params.Intersect != "" {
		features, serr = applyIntersect(features, params.Intersect, tracks)
		if serr != nil {
			return failure(q, serr)
		}
	}
	if params.Within != "" {
		features, serr = e.applyWithin(features, params.Within)
		if serr != nil {
			return failure(q, serr)
		}
	}

	features, serr = applyWhere(features, params.Where)
	if serr != nil {
		return failure(q, serr)
	}

	if params.OrderBy != nil {
		features = orderFeatures(features, *params.OrderBy)
	}

	if params.Limit != nil && len(features) > *params.Limit {
		features = features[:*params.Limit]
	}

	return selectResult(q, features, isCount)
}

// selectResult shapes the final QueryResult. COUNT returns the cardinality
// as the message and no rows; SELECT returns the rows and opens the result
// panel when there is anything to show.
func selectResult(q gql.ParsedQuery, features []track.Feature, isCount bool) *QueryResult {
	if isCount {
		return &QueryResult{
			Success: true,
			Message: strconv.Itoa(len(features)),
			Query:   q,
		}
	}

	items := make([]ListResultItem, 0, len(features))
	for _, f := range features {
		items = append(items, itemFromFeature(f))
	}
	return &QueryResult{
		Success:         true,
		Message:         fmt.Sprintf("%d features", len(items)),
		Query:           q,
		Results:         items,
		ShowResultPanel: len(items) > 0,
	}
}

// resolveSource picks the feature collection the query draws from: a named
// track when FROM is present, otherwise the built-in kind matching the
// select target. Features keep track load order, which later stages rely on
// for deterministic tie-breaking.
func (e *Executor) resolveSource(params gql.SelectParams, tracks track.Snapshot) ([]track.Feature, *SemanticError) {
	if params.From != "" {
		t, ok := tracks.ByName(params.From)
		if !ok {
			return nil, semErr(ErrCodeTrackNotFound, "Track %q not found", params.From)
		}
		return t.Features, nil
	}

	switch params.Target {
	case gql.TargetGenes:
		features := featuresOfKind(tracks, track.KindGenes)
		if features == nil {
			return nil, semErr(ErrCodeNoSource, "No gene tracks loaded")
		}
		return features, nil
	case gql.TargetVariants:
		features := featuresOfKind(tracks, track.KindVariants)
		if features == nil {
			return nil, semErr(ErrCodeNoSource, "No variant tracks loaded")
		}
		return features, nil
	default: // TargetAll: union of every loaded feature kind
		var features []track.Feature
		for _, t := range tracks.Tracks() {
			features = append(features, t.Features...)
		}
		if features == nil {
			return nil, semErr(ErrCodeNoSource, "No tracks loaded")
		}
		return features, nil
	}
}

// applyScope restricts features to the query's region. A query with no IN
// clause is an error here, not a full-table scan.
func applyScope(features []track.Feature, scope *gql.Scope, view track.Viewport) ([]track.Feature, *SemanticError) {
	if scope == nil {
		return nil, semErr(ErrCodeScopeRequired, "Scope required: add IN VIEW, IN CHROMOSOME, or IN <region>")
	}

	var keep func(track.Feature) bool
	switch scope.Kind {
	case gql.ScopeView:
		if view.Chromosome == "" {
			return nil, semErr(ErrCodeScopeRequired, "No active viewport for IN VIEW")
		}
		keep = func(f track.Feature) bool { return f.Region().Overlaps(view) }
	case gql.ScopeChromosome:
		if view.Chromosome == "" {
			return nil, semErr(ErrCodeScopeRequired, "No active chromosome for IN CHROMOSOME")
		}
		chrom := coord.CanonicalChromosome(view.Chromosome)
		keep = func(f track.Feature) bool { return coord.CanonicalChromosome(f.Chromosome) == chrom }
	case gql.ScopeExplicit:
		keep = func(f track.Feature) bool { return f.Region().Overlaps(scope.Region) }
	case gql.ScopeChromosomeOnly:
		keep = func(f track.Feature) bool { return coord.CanonicalChromosome(f.Chromosome) == scope.Chromosome }
	default:
		return nil, semErr(ErrCodeScopeRequired, "Unknown scope %q", scope.Kind)
	}

	var out []track.Feature
	for _, f := range features {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// applyIntersect keeps features overlapping at least one feature of the
// named track on the same chromosome.
func applyIntersect(features []track.Feature, name string, tracks track.Snapshot) ([]track.Feature, *SemanticError) {
	other, ok := tracks.ByName(name)
	if !ok {
		return nil, semErr(ErrCodeTrackNotFound, "Track %q not found", name)
	}

	byChrom := make(map[string][]coord.Region)
	for _, f := range other.Features {
		chrom := coord.CanonicalChromosome(f.Chromosome)
		byChrom[chrom] = append(byChrom[chrom], f.Region())
	}

	var out []track.Feature
	for _, f := range features {
		region := f.Region()
		for _, r := range byChrom[coord.CanonicalChromosome(f.Chromosome)] {
			if region.Overlaps(r) {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

// applyWithin resolves name to a single reference interval through the name
// index and keeps features fully or partially overlapping it.
func (e *Executor) applyWithin(features []track.Feature, name string) ([]track.Feature, *SemanticError) {
	loc, ok := e.names.Lookup(name)
	if !ok {
		return nil, semErr(ErrCodeNameNotFound, "Feature %q not found", name)
	}

	var out []track.Feature
	for _, f := range features {
		if f.Region().Overlaps(loc.Region) {
			out = append(out, f)
		}
	}
	return out, nil
}

// applyWhere filters conjunctively: a feature survives only if every
// condition holds. A type mismatch fails the whole query rather than
// silently coercing.
func applyWhere(features []track.Feature, conditions []gql.Condition) ([]track.Feature, *SemanticError) {
	if len(conditions) == 0 {
		return features, nil
	}

	out := features[:0:0]
	for _, f := range features {
		match := true
		for _, cond := range conditions {
			ok, serr := evalCondition(f, cond)
			if serr != nil {
				return nil, serr
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			out = append(out, f)
		}
	}
	return out, nil
}

// numericFields are computed or coordinate fields that always compare
// numerically. "length" is end - start, not a stored attribute.
var numericFields = map[string]bool{
	gql.LengthField: true,
	"start":         true,
	"end":           true,
}

// evalCondition evaluates one comparison against one feature.
//
// Numeric fields (and any field under an ordering operator) compare as
// numbers; everything else compares as case-sensitive text. A feature
// missing the named attribute fails the condition without failing the
// query.
func evalCondition(f track.Feature, cond gql.Condition) (bool, *SemanticError) {
	numericOp := cond.Operator == gql.OpGt || cond.Operator == gql.OpLt ||
		cond.Operator == gql.OpGe || cond.Operator == gql.OpLe

	if numericFields[cond.Field] {
		want, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			return false, semErr(ErrCodeTypeMismatch, "Field %q is numeric but value %q is not", cond.Field, cond.Value)
		}
		return compareNumbers(numericFieldValue(f, cond.Field), want, cond.Operator), nil
	}

	text, present := attributeValue(f, cond.Field)
	if !present {
		return false, nil
	}

	if numericOp {
		have, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return false, semErr(ErrCodeTypeMismatch, "Operator %s needs a numeric field, but %q has value %q", cond.Operator, cond.Field, text)
		}
		want, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			return false, semErr(ErrCodeTypeMismatch, "Operator %s needs a numeric value, got %q", cond.Operator, cond.Value)
		}
		return compareNumbers(have, want, cond.Operator), nil
	}

	switch cond.Operator {
	case gql.OpEq:
		return text == cond.Value, nil
	default: // OpNe - the grammar admits nothing else here
		return text != cond.Value, nil
	}
}

// numericFieldValue returns the value of a computed numeric field.
func numericFieldValue(f track.Feature, field string) float64 {
	switch field {
	case gql.LengthField:
		return float64(f.End - f.Start)
	case "start":
		return float64(f.Start)
	default: // "end"
		return float64(f.End)
	}
}

// attributeValue resolves a non-computed field: the built-in name and
// chromosome fields first, then the open attribute map.
func attributeValue(f track.Feature, field string) (string, bool) {
	switch strings.ToLower(field) {
	case "name":
		return f.Name, true
	case "id":
		return f.ID, true
	case "chromosome", "chrom":
		return coord.CanonicalChromosome(f.Chromosome), true
	}
	return f.Attribute(field)
}

func compareNumbers(have, want float64, op gql.Operator) bool {
	switch op {
	case gql.OpEq:
		return have == want
	case gql.OpNe:
		return have != want
	case gql.OpGt:
		return have > want
	case gql.OpLt:
		return have < want
	case gql.OpGe:
		return have >= want
	default: // OpLe
		return have <= want
	}
}

// orderFeatures stably sorts by the requested field. Ties keep discovery
// order, which makes repeated executions byte-identical.
func orderFeatures(features []track.Feature, orderBy gql.OrderBy) []track.Feature {
	sorted := make([]track.Feature, len(features))
	copy(sorted, features)

	numeric := numericFields[orderBy.Field]
	less := func(a, b track.Feature) bool {
		if numeric {
			return numericFieldValue(a, orderBy.Field) < numericFieldValue(b, orderBy.Field)
		}
		av, _ := attributeValue(a, orderBy.Field)
		bv, _ := attributeValue(b, orderBy.Field)
		return av < bv
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if orderBy.Direction == gql.OrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// featuresOfKind unions every track of a kind, in load order. Returns nil
// when no track of the kind is loaded.
func featuresOfKind(tracks track.Snapshot, kind track.Kind) []track.Feature {
	var features []track.Feature
	for _, t := range tracks.OfKind(kind) {
		features = append(features, t.Features...)
	}
	return features
}
