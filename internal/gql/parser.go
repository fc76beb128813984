package gql

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/genoscope/gql/internal/coord"
)

// Grammar error messages. These are part of the user-facing contract:
// callers and tests match on them.
const (
	errUnknownCommand   = "Unknown command"
	errInvalidCoords    = "Invalid coordinates"
	errSearchTermNeeded = "Search term required"
	errInvalidZoom      = "Invalid zoom factor"
	errBadDirection     = "Direction must be left or right"
	errInvalidPanAmount = "Invalid pan amount"
	errNoFilterCriteria = "No filter criteria"
	errBadListKind      = "Specify genes or variants"
	errBadClearTarget   = "Clear target must be filters, highlights, or all"
)

// defaultPanBases is the pan distance when no amount is given.
const defaultPanBases = 10000

// Parse turns one line of query text into a ParsedQuery.
//
// Parse is total and pure: it never panics, never touches external state,
// and returns an invalid ParsedQuery (with a human-readable Error) rather
// than an error value. Calling it twice with the same input yields the same
// result.
func Parse(text string) ParsedQuery {
	raw := text
	// NFC-normalize before tokenizing so visually identical inputs parse
	// identically regardless of the typist's composition form.
	trimmed := strings.TrimSpace(norm.NFC.String(text))
	if trimmed == "" {
		return invalid(raw, CommandUnknown, errUnknownCommand)
	}

	fields := strings.Fields(trimmed)
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "navigate", "goto", "go":
		return parseNavigate(raw, args)
	case "search":
		return parseSearch(raw, args)
	case "zoom":
		return parseZoom(raw, args)
	case "pan":
		return parsePan(raw, args)
	case "filter":
		return parseFilter(raw, args)
	case "highlight":
		return parseHighlight(raw, args)
	case "list", "find", "show":
		return parseList(raw, args)
	case "select":
		return parseSelect(raw, CommandSelect, args)
	case "count":
		return parseSelect(raw, CommandCount, args)
	case "clear":
		return parseClear(raw, args)
	default:
		return invalid(raw, CommandUnknown, errUnknownCommand)
	}
}

func valid(raw string, cmd Command, params Params) ParsedQuery {
	return ParsedQuery{Raw: raw, Valid: true, Command: cmd, Params: params}
}

func invalid(raw string, cmd Command, msg string) ParsedQuery {
	return ParsedQuery{Raw: raw, Valid: false, Command: cmd, Error: msg}
}

func parseNavigate(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, CommandNavigate, errInvalidCoords)
	}
	region, err := coord.ParseRegion(strings.Join(args, ""))
	if err != nil {
		return invalid(raw, CommandNavigate, errInvalidCoords)
	}
	return valid(raw, CommandNavigate, NavigateParams{Region: region})
}

func parseSearch(raw string, args []string) ParsedQuery {
	kind := "gene"
	if len(args) > 0 && strings.EqualFold(args[0], "gene") {
		args = args[1:]
	}
	if len(args) == 0 {
		return invalid(raw, CommandSearch, errSearchTermNeeded)
	}
	// Gene search terms are case-insensitive on the wire: uppercase here so
	// saved queries compare stably.
	term := strings.ToUpper(strings.Join(args, " "))
	return valid(raw, CommandSearch, SearchParams{Kind: kind, Term: term})
}

func parseZoom(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, CommandZoom, errInvalidZoom)
	}
	if len(args) > 1 {
		return invalid(raw, CommandZoom, fmt.Sprintf("Unexpected token %q", args[1]))
	}
	switch strings.ToLower(args[0]) {
	case "in":
		return valid(raw, CommandZoom, ZoomParams{Factor: 0.5})
	case "out":
		return valid(raw, CommandZoom, ZoomParams{Factor: 2})
	}
	// Numeric factor, with or without the "x" suffix ("zoom 3x", "zoom 0.5").
	// ParseFloat also accepts "nan" and "inf"; neither is a factor.
	text := strings.TrimSuffix(strings.ToLower(args[0]), "x")
	factor, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(factor) || factor <= 0 || math.IsInf(factor, 0) {
		return invalid(raw, CommandZoom, errInvalidZoom)
	}
	return valid(raw, CommandZoom, ZoomParams{Factor: factor})
}

// panAmountPattern matches a magnitude with an optional bp/kb/mb unit.
var panAmountPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(bp|kb|mb)?$`)

func parsePan(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, CommandPan, errBadDirection)
	}

	var dir Direction
	switch strings.ToLower(args[0]) {
	case "left", "l":
		dir = DirectionLeft
	case "right", "r":
		dir = DirectionRight
	default:
		return invalid(raw, CommandPan, errBadDirection)
	}

	if len(args) > 2 {
		return invalid(raw, CommandPan, fmt.Sprintf("Unexpected token %q", args[2]))
	}

	amount := int64(defaultPanBases)
	if len(args) > 1 {
		m := panAmountPattern.FindStringSubmatch(strings.ToLower(args[1]))
		if m == nil {
			return invalid(raw, CommandPan, errInvalidPanAmount)
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return invalid(raw, CommandPan, errInvalidPanAmount)
		}
		switch m[2] {
		case "kb":
			value *= 1_000
		case "mb":
			value *= 1_000_000
		}
		amount = int64(math.Round(value))
		if amount <= 0 {
			return invalid(raw, CommandPan, errInvalidPanAmount)
		}
	}
	return valid(raw, CommandPan, PanParams{Direction: dir, AmountBases: amount})
}

func parseFilter(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, CommandFilter, errNoFilterCriteria)
	}
	criteria := make([]FilterCriterion, 0, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" || value == "" {
			return invalid(raw, CommandFilter, fmt.Sprintf("Invalid filter criterion %q", arg))
		}
		criteria = append(criteria, FilterCriterion{Field: field, Value: value})
	}
	return valid(raw, CommandFilter, FilterParams{Criteria: criteria})
}

func parseHighlight(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, CommandHighlight, errInvalidCoords)
	}
	region, err := coord.ParseRegion(args[0])
	if err != nil {
		return invalid(raw, CommandHighlight, errInvalidCoords)
	}
	label := strings.Join(args[1:], " ")
	return valid(raw, CommandHighlight, HighlightParams{Region: region, Label: label})
}

func parseList(raw string, args []string) ParsedQuery {
	if len(args) > 0 && strings.EqualFold(args[0], "all") {
		args = args[1:]
	}
	if len(args) == 0 {
		return invalid(raw, CommandList, errBadListKind)
	}

	var kind ListKind
	switch strings.ToLower(args[0]) {
	case "genes", "gene":
		kind = ListGenes
	case "variants", "variant":
		kind = ListVariants
	default:
		return invalid(raw, CommandList, errBadListKind)
	}
	rest := args[1:]
	params := ListParams{Kind: kind}

	if len(rest) == 0 {
		return valid(raw, CommandList, params)
	}
	switch strings.ToLower(rest[0]) {
	case "with":
		if len(rest) < 2 || !strings.EqualFold(rest[1], "variants") {
			return invalid(raw, CommandList, "Expected 'with variants'")
		}
		params.Filter = ListFilterWithVariants
	case "in":
		if len(rest) < 2 {
			return invalid(raw, CommandList, "Gene name required after 'in'")
		}
		params.Gene = strings.ToUpper(strings.Join(rest[1:], " "))
	case "pathogenic":
		params.Filter = ListFilterPathogenic
	default:
		return invalid(raw, CommandList, fmt.Sprintf("Unknown list qualifier %q", rest[0]))
	}
	return valid(raw, CommandList, params)
}

func parseClear(raw string, args []string) ParsedQuery {
	if len(args) == 0 {
		return valid(raw, CommandClear, ClearParams{Target: ClearAll})
	}
	if len(args) > 1 {
		return invalid(raw, CommandClear, fmt.Sprintf("Unexpected token %q", args[1]))
	}
	switch strings.ToLower(args[0]) {
	case "filters":
		return valid(raw, CommandClear, ClearParams{Target: ClearFilters})
	case "highlights":
		return valid(raw, CommandClear, ClearParams{Target: ClearHighlights})
	case "all":
		return valid(raw, CommandClear, ClearParams{Target: ClearAll})
	default:
		return invalid(raw, CommandClear, errBadClearTarget)
	}
}
