package engine

import (
	"fmt"
	"strings"

	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

// significanceAttr is the variant attribute the pathogenic list filter and
// clinical queries read.
const significanceAttr = "significance"

// executeList answers the list command family. Unlike SELECT, list is
// viewport-scoped by default and its filters are a fixed vocabulary, so an
// empty result is a successful answer, never an error.
func (e *Executor) executeList(q gql.ParsedQuery, params gql.ListParams, tracks track.Snapshot, view track.Viewport) *QueryResult {
	switch params.Kind {
	case gql.ListGenes:
		return e.listGenes(q, params, tracks, view)
	default:
		return e.listVariants(q, params, tracks, view)
	}
}

func (e *Executor) listGenes(q gql.ParsedQuery, params gql.ListParams, tracks track.Snapshot, view track.Viewport) *QueryResult {
	genes := inView(featuresOfKind(tracks, track.KindGenes), view)

	if params.Filter == gql.ListFilterWithVariants {
		variants := featuresOfKind(tracks, track.KindVariants)
		var withVariants []track.Feature
		for _, g := range genes {
			for _, v := range variants {
				if g.Region().Overlaps(v.Region()) {
					withVariants = append(withVariants, g)
					break
				}
			}
		}
		genes = withVariants
	}

	return listResult(q, genes, "genes")
}

func (e *Executor) listVariants(q gql.ParsedQuery, params gql.ListParams, tracks track.Snapshot, view track.Viewport) *QueryResult {
	variants := featuresOfKind(tracks, track.KindVariants)

	switch {
	case params.Gene != "":
		// "variants in <gene>": the gene's interval is the scope, not the
		// viewport.
		loc, ok := e.names.Lookup(params.Gene)
		if !ok {
			return failure(q, semErr(ErrCodeNameNotFound, "Gene %q not found", params.Gene))
		}
		var inGene []track.Feature
		for _, v := range variants {
			if v.Region().Overlaps(loc.Region) {
				inGene = append(inGene, v)
			}
		}
		variants = inGene

	case params.Filter == gql.ListFilterPathogenic:
		var pathogenic []track.Feature
		for _, v := range inView(variants, view) {
			if sig, ok := v.Attribute(significanceAttr); ok && strings.EqualFold(sig, "pathogenic") {
				pathogenic = append(pathogenic, v)
			}
		}
		variants = pathogenic

	default:
		variants = inView(variants, view)
	}

	return listResult(q, variants, "variants")
}

// inView keeps features overlapping the viewport. An unset viewport keeps
// nothing, matching a browser with no region loaded.
func inView(features []track.Feature, view track.Viewport) []track.Feature {
	if view.Chromosome == "" {
		return nil
	}
	var out []track.Feature
	for _, f := range features {
		if f.Region().Overlaps(view) {
			out = append(out, f)
		}
	}
	return out
}

func listResult(q gql.ParsedQuery, features []track.Feature, noun string) *QueryResult {
	items := make([]ListResultItem, 0, len(features))
	for _, f := range features {
		items = append(items, itemFromFeature(f))
	}
	return &QueryResult{
		Success:         true,
		Message:         fmt.Sprintf("%d %s", len(items), noun),
		Query:           q,
		Results:         items,
		ShowResultPanel: len(items) > 0,
	}
}
