package nlq

import (
	"context"

	"github.com/genoscope/gql/internal/coord"
)

// TrackInfo is the track summary serialized into the AI translator's
// context.
type TrackInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// BrowserContext is the read-only browser state handed to the AI
// translator: what is loaded, what is visible, which names resolve.
type BrowserContext struct {
	Tracks     []TrackInfo  `json:"tracks,omitempty"`
	Viewport   coord.Region `json:"viewport,omitzero"`
	KnownNames []string     `json:"knownNames,omitempty"`
}

// Outcome is an AI translator's answer: exactly one field is meaningful.
// A non-empty GQL is a candidate query (still untrusted - it must re-parse
// before anything executes); a non-empty Clarification is a question back
// to the user.
type Outcome struct {
	GQL           string `json:"gql,omitempty"`
	Clarification string `json:"clarification,omitempty"`
}

// Translator is the external AI translation boundary. Implementations are
// untrusted: their output is never executed directly, only re-parsed.
//
// Translate is the single suspension point of the whole pipeline. It must
// honor ctx cancellation; on cancellation, timeout, or any error the
// pipeline falls back to heuristics exactly as if the translator did not
// exist.
type Translator interface {
	Translate(ctx context.Context, text string, browser BrowserContext) (Outcome, error)
}
