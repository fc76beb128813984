package gql

// CommandHelp describes one command for help surfaces.
type CommandHelp struct {
	Command     Command `json:"command"`
	Syntax      string  `json:"syntax"`
	Description string  `json:"description"`
}

// helpTable is the canonical command listing, in presentation order.
var helpTable = []CommandHelp{
	{CommandNavigate, "navigate <chr:start-end>", "Jump the viewport to a region (aliases: goto, go)"},
	{CommandSearch, "search [gene] <name>", "Locate a feature by name and navigate to it"},
	{CommandZoom, "zoom in|out|<factor>[x]", "Scale the viewport; factor < 1 zooms in, > 1 zooms out"},
	{CommandPan, "pan left|right [<amount>[bp|kb|mb]]", "Shift the viewport sideways (default 10kb)"},
	{CommandFilter, "filter <field>=<value> ...", "Apply display filters to the visible tracks"},
	{CommandHighlight, "highlight <chr:start-end> [label]", "Mark a region, optionally labeled"},
	{CommandList, "list [all] genes|variants [with variants|in <gene>|pathogenic]", "Enumerate features (aliases: find, show)"},
	{CommandSelect, "SELECT GENES|VARIANTS|ALL [FROM t] [INTERSECT t] [WITHIN g] [WHERE c AND ...] [ORDER BY f [ASC|DESC]] [LIMIT n] [IN VIEW|CHROMOSOME|chr|chr:start-end]", "Query loaded features declaratively"},
	{CommandCount, "COUNT GENES|VARIANTS|ALL [clauses as SELECT]", "Like SELECT, but return only the number of matches"},
	{CommandClear, "clear filters|highlights|all", "Reset filters, highlights, or both"},
}

// Commands returns syntax and a one-line description for every command.
// The returned slice is a copy; callers may reorder it freely.
func Commands() []CommandHelp {
	out := make([]CommandHelp, len(helpTable))
	copy(out, helpTable)
	return out
}
