package nlq

import (
	"context"
	"log/slog"

	"github.com/genoscope/gql/internal/gql"
	"github.com/genoscope/gql/internal/track"
)

// Source names the translation layer that produced an accepted query.
type Source string

const (
	// SourceGrammar means the input parsed directly.
	SourceGrammar Source = "grammar"
	// SourceHeuristic means a heuristic rule synthesized the query.
	SourceHeuristic Source = "heuristic"
	// SourceAI means the AI translator proposed the query (and it re-parsed).
	SourceAI Source = "ai"
	// SourceNone means every layer declined; Query holds the original
	// grammar error.
	SourceNone Source = "none"
)

// Interpretation is the pipeline's answer for one input line.
type Interpretation struct {
	// Query is the validated query to execute. When Source is SourceNone it
	// is the original, invalid parse and must not be executed.
	Query gql.ParsedQuery

	// Source names the layer that produced Query.
	Source Source

	// NaturalLanguage carries the original free-form text when Query came
	// from a translation layer rather than the grammar.
	NaturalLanguage string

	// Clarification is a question from the AI translator. When set, the
	// caller should re-prompt the user instead of executing.
	Clarification string
}

// Interpreter runs the full translation pipeline: grammar first, then the
// heuristic rules, then - when configured - the AI boundary, whose output
// must itself survive the grammar before it counts.
type Interpreter struct {
	heuristic *Heuristic
	ai        Translator
}

// NewInterpreter builds the pipeline. ai may be nil, in which case the
// pipeline ends at the heuristic layer.
func NewInterpreter(names track.NameIndex, ai Translator) *Interpreter {
	return &Interpreter{heuristic: NewHeuristic(names), ai: ai}
}

// Heuristic exposes the deterministic layer for callers that want it alone.
func (p *Interpreter) Heuristic() *Heuristic {
	return p.heuristic
}

// Interpret resolves one input line to a validated query, or reports that
// no layer could.
//
// Everything before the AI call is synchronous and pure; the AI call is the
// only suspension point and honors ctx. Any AI error, timeout, or
// ungrammatical proposal degrades to the deterministic layers' outcome -
// raw AI output is never executed.
func (p *Interpreter) Interpret(ctx context.Context, text string, browser BrowserContext) Interpretation {
	direct := gql.Parse(text)
	if direct.Valid {
		return Interpretation{Query: direct, Source: SourceGrammar}
	}

	if translated, ok := p.heuristic.Translate(text); ok {
		return Interpretation{Query: translated, Source: SourceHeuristic, NaturalLanguage: text}
	}

	if p.ai != nil {
		outcome, err := p.ai.Translate(ctx, text, browser)
		switch {
		case err != nil:
			// Grammar-error-equivalent: log and fall through to failure,
			// never to unvalidated execution.
			slog.Warn("ai translation failed", "error", err)
		case outcome.Clarification != "":
			return Interpretation{
				Query:           direct,
				Source:          SourceNone,
				NaturalLanguage: text,
				Clarification:   outcome.Clarification,
			}
		case outcome.GQL != "":
			proposed := gql.Parse(outcome.GQL)
			if proposed.Valid {
				slog.Debug("ai translation accepted", "gql", outcome.GQL)
				return Interpretation{Query: proposed, Source: SourceAI, NaturalLanguage: text}
			}
			slog.Warn("ai translation did not re-parse", "gql", outcome.GQL, "error", proposed.Error)
		}
	}

	return Interpretation{Query: direct, Source: SourceNone, NaturalLanguage: text}
}
