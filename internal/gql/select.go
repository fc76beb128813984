package gql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/genoscope/gql/internal/coord"
)

// selectClauses are the clause keywords of the SELECT/COUNT grammar. Clauses
// may appear in any order but each at most once.
var selectClauses = map[string]bool{
	"from":      true,
	"intersect": true,
	"within":    true,
	"where":     true,
	"order":     true,
	"limit":     true,
	"in":        true,
}

// conditionPattern matches one WHERE comparison: field, operator, literal.
// Operator alternatives are ordered so two-character operators win over
// their one-character prefixes.
var conditionPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(!=|>=|<=|=|>|<)\s*(.+)$`)

// parseSelect parses the shared SELECT/COUNT grammar. COUNT differs only in
// the command tag: it asks for cardinality instead of rows.
func parseSelect(raw string, cmd Command, args []string) ParsedQuery {
	if len(args) == 0 {
		return invalid(raw, cmd, "Select target must be GENES, VARIANTS, or ALL")
	}

	var target SelectTarget
	switch strings.ToLower(args[0]) {
	case "genes":
		target = TargetGenes
	case "variants":
		target = TargetVariants
	case "*", "all":
		target = TargetAll
	default:
		return invalid(raw, cmd, "Select target must be GENES, VARIANTS, or ALL")
	}

	params := SelectParams{Target: target}
	seen := map[string]bool{}

	i := 1
	for i < len(args) {
		kw := strings.ToLower(args[i])
		if !selectClauses[kw] {
			return invalid(raw, cmd, fmt.Sprintf("Unexpected token %q", args[i]))
		}
		if seen[kw] {
			return invalid(raw, cmd, fmt.Sprintf("Duplicate %s clause", strings.ToUpper(kw)))
		}
		seen[kw] = true
		i++

		switch kw {
		case "from", "intersect", "within":
			name, next := collectUntilClause(args, i)
			if name == "" {
				return invalid(raw, cmd, fmt.Sprintf("%s requires a name", strings.ToUpper(kw)))
			}
			i = next
			switch kw {
			case "from":
				params.From = name
			case "intersect":
				params.Intersect = name
			case "within":
				params.Within = name
			}

		case "where":
			conditions, next, errMsg := parseConditions(args, i)
			if errMsg != "" {
				return invalid(raw, cmd, errMsg)
			}
			params.Where = conditions
			i = next

		case "order":
			if i >= len(args) || !strings.EqualFold(args[i], "by") {
				return invalid(raw, cmd, "Expected BY after ORDER")
			}
			i++
			orderBy, next, errMsg := parseOrderBy(args, i)
			if errMsg != "" {
				return invalid(raw, cmd, errMsg)
			}
			params.OrderBy = orderBy
			i = next

		case "limit":
			if i >= len(args) {
				return invalid(raw, cmd, "LIMIT requires a number")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 {
				return invalid(raw, cmd, "Invalid LIMIT")
			}
			params.Limit = &n
			i++

		case "in":
			if i >= len(args) {
				return invalid(raw, cmd, "IN requires VIEW, CHROMOSOME, or a region")
			}
			scope, errMsg := parseScope(args[i])
			if errMsg != "" {
				return invalid(raw, cmd, errMsg)
			}
			params.Scope = scope
			i++
		}
	}

	return valid(raw, cmd, params)
}

// collectUntilClause joins tokens starting at i until the next clause
// keyword, returning the joined text and the index of the stopping token.
func collectUntilClause(args []string, i int) (string, int) {
	start := i
	for i < len(args) && !selectClauses[strings.ToLower(args[i])] {
		i++
	}
	return strings.Join(args[start:i], " "), i
}

// parseConditions parses WHERE conditions separated by AND tokens. Returns
// a grammar error message instead of an error value so callers can place it
// straight onto the ParsedQuery.
func parseConditions(args []string, i int) ([]Condition, int, string) {
	var conditions []Condition
	group := []string{}

	flush := func() string {
		if len(group) == 0 {
			return "WHERE requires at least one condition"
		}
		cond, ok := parseCondition(strings.Join(group, " "))
		if !ok {
			return fmt.Sprintf("Invalid WHERE condition %q", strings.Join(group, " "))
		}
		conditions = append(conditions, cond)
		group = group[:0]
		return ""
	}

	for i < len(args) && !selectClauses[strings.ToLower(args[i])] {
		if strings.EqualFold(args[i], "and") {
			if msg := flush(); msg != "" {
				return nil, i, msg
			}
		} else {
			group = append(group, args[i])
		}
		i++
	}
	if msg := flush(); msg != "" {
		return nil, i, msg
	}
	return conditions, i, ""
}

// parseCondition parses a single "field op value" comparison. Single or
// double quotes around the value are stripped; the literal inside keeps its
// case.
func parseCondition(text string) (Condition, bool) {
	m := conditionPattern.FindStringSubmatch(text)
	if m == nil {
		return Condition{}, false
	}
	value := strings.TrimSpace(m[3])
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') ||
			(value[0] == '"' && value[len(value)-1] == '"') {
			value = value[1 : len(value)-1]
		}
	}
	if value == "" {
		return Condition{}, false
	}
	field := m[1]
	if normalizeLengthExpr(field) == LengthField {
		field = LengthField
	}
	return Condition{Field: field, Operator: Operator(m[2]), Value: value}, true
}

// parseOrderBy parses the field and optional direction of an ORDER BY. The
// literal expression "(end - start)" is normalized to the computed field
// "length".
func parseOrderBy(args []string, i int) (*OrderBy, int, string) {
	fieldTokens := []string{}
	for i < len(args) && !selectClauses[strings.ToLower(args[i])] {
		kw := strings.ToUpper(args[i])
		if kw == "ASC" || kw == "DESC" {
			break
		}
		fieldTokens = append(fieldTokens, args[i])
		i++
	}
	if len(fieldTokens) == 0 {
		return nil, i, "ORDER BY requires a field"
	}

	field := strings.Join(fieldTokens, " ")
	if normalized := normalizeLengthExpr(field); normalized != "" {
		field = normalized
	}

	direction := OrderAsc
	if i < len(args) {
		switch strings.ToUpper(args[i]) {
		case "ASC":
			i++
		case "DESC":
			direction = OrderDesc
			i++
		}
	}
	return &OrderBy{Field: field, Direction: direction}, i, ""
}

// normalizeLengthExpr maps "(end - start)" (any spacing, any case) and the
// bare word "length" to LengthField. Returns "" for anything else.
func normalizeLengthExpr(field string) string {
	compact := strings.ToLower(strings.ReplaceAll(field, " ", ""))
	if compact == "(end-start)" || compact == LengthField {
		return LengthField
	}
	return ""
}

// parseScope parses the argument of an IN clause.
func parseScope(token string) (*Scope, string) {
	switch strings.ToLower(token) {
	case "view":
		return &Scope{Kind: ScopeView}, ""
	case "chromosome":
		return &Scope{Kind: ScopeChromosome}, ""
	}
	if strings.Contains(token, ":") {
		region, err := coord.ParseRegion(token)
		if err != nil {
			return nil, errInvalidCoords
		}
		return &Scope{Kind: ScopeExplicit, Region: region}, ""
	}
	return &Scope{
		Kind:       ScopeChromosomeOnly,
		Chromosome: coord.CanonicalChromosome(token),
	}, ""
}
