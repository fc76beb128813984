package nlq

import (
	"log/slog"

	"github.com/genoscope/gql/internal/gql"
)

// Translate attempts every heuristic rule in priority order and returns the
// parse of the first synthesized query. The second return is false when no
// rule matched.
//
// Every synthesized string goes back through gql.Parse before it is
// returned; a rule whose output does not re-parse cleanly yields no
// translation rather than an invalid query. That should not happen for
// well-formed rules, but the check keeps the grammar authoritative.
func (h *Heuristic) Translate(text string) (gql.ParsedQuery, bool) {
	for _, r := range rules {
		synthesized, ok := r.synthesize(h, text)
		if !ok {
			continue
		}
		q := gql.Parse(synthesized)
		if !q.Valid {
			slog.Warn("heuristic rule produced ungrammatical query",
				"rule", r.name, "synthesized", synthesized, "error", q.Error)
			return gql.ParsedQuery{}, false
		}
		slog.Debug("heuristic translation", "rule", r.name, "synthesized", synthesized)
		return q, true
	}
	return gql.ParsedQuery{}, false
}
