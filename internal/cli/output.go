package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/engine"
	"github.com/genoscope/gql/internal/gql"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query failed (semantic error, no translation)
	ExitCommandError = 2 // Command error (bad paths, unreadable database, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Printer renders command output in the configured format.
type Printer struct {
	Format string
	Writer io.Writer
}

// JSON writes any payload as indented JSON.
func (p *Printer) JSON(payload any) error {
	enc := json.NewEncoder(p.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// Parsed renders a parse outcome: JSON verbatim, or a one-line summary in
// text mode.
func (p *Printer) Parsed(parsed gql.ParsedQuery) error {
	if p.Format == "json" {
		return p.JSON(parsed)
	}
	if parsed.Valid {
		fmt.Fprintf(p.Writer, "ok    %-10s %s\n", parsed.Command, parsed.Raw)
	} else {
		fmt.Fprintf(p.Writer, "error %-10s %s: %s\n", parsed.Command, parsed.Raw, parsed.Error)
	}
	return nil
}

// Result renders a QueryResult: JSON verbatim, or a readable text listing
// with display coordinates.
func (p *Printer) Result(result *engine.QueryResult) error {
	if p.Format == "json" {
		return p.JSON(result)
	}

	status := "ok"
	if !result.Success {
		status = "error"
	}
	fmt.Fprintf(p.Writer, "%s: %s\n", status, result.Message)
	for _, item := range result.Results {
		region := coord.Region{Chromosome: item.Chromosome, Start: item.Start, End: item.End}
		fmt.Fprintf(p.Writer, "  %-12s %s", item.Name, coord.Format(region))
		for _, d := range item.Details {
			fmt.Fprintf(p.Writer, "  %s=%s", d.Key, d.Value)
		}
		fmt.Fprintln(p.Writer)
	}
	return nil
}

// Effect renders a command effect: JSON verbatim, or a one-line text
// description.
func (p *Printer) Effect(effect engine.Effect) error {
	if p.Format == "json" {
		return p.JSON(effectEnvelope{Effect: effectName(effect), Params: effect})
	}
	fmt.Fprintf(p.Writer, "%s %s\n", effectName(effect), effectText(effect))
	return nil
}

// effectEnvelope tags an effect with its kind for JSON output, since the
// concrete type is lost in serialization.
type effectEnvelope struct {
	Effect string        `json:"effect"`
	Params engine.Effect `json:"params"`
}

func effectName(effect engine.Effect) string {
	switch effect.(type) {
	case engine.NavigateEffect:
		return "navigate"
	case engine.SearchEffect:
		return "search"
	case engine.ZoomEffect:
		return "zoom"
	case engine.PanEffect:
		return "pan"
	case engine.FilterEffect:
		return "filter"
	case engine.HighlightEffect:
		return "highlight"
	default:
		return "clear"
	}
}

func effectText(effect engine.Effect) string {
	switch e := effect.(type) {
	case engine.NavigateEffect:
		return coord.Format(e.Region)
	case engine.SearchEffect:
		return fmt.Sprintf("%s at %s", e.Name, coord.Format(e.Region))
	case engine.ZoomEffect:
		return fmt.Sprintf("factor %g", e.Factor)
	case engine.PanEffect:
		return fmt.Sprintf("%s %s bp", e.Direction, coord.FormatPosition(e.AmountBases))
	case engine.FilterEffect:
		return fmt.Sprintf("%d criteria", len(e.Criteria))
	case engine.HighlightEffect:
		return coord.Format(e.Region)
	case engine.ClearEffect:
		return string(e.Target)
	default:
		return ""
	}
}
