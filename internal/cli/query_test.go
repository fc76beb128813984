package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func fixturePaths(t *testing.T) (string, string) {
	t.Helper()
	return writeFixture(t, "genes.yaml", genesFixture), writeFixture(t, "clinvar.yaml", variantsFixture)
}

func TestQueryCommand_Select(t *testing.T) {
	genes, variants := fixturePaths(t)

	out, err := runCLI(t,
		"query", "--tracks", genes, "--tracks", variants,
		"select genes in chr17 order by length desc")
	require.NoError(t, err)

	assert.Contains(t, out, "ok: 2 features")
	assert.Contains(t, out, "BRCA1")
	assert.Contains(t, out, "TP53")
	brca := bytes.Index([]byte(out), []byte("BRCA1"))
	tp53 := bytes.Index([]byte(out), []byte("TP53"))
	assert.Less(t, brca, tp53, "longest gene listed first")
}

func TestQueryCommand_Count(t *testing.T) {
	genes, variants := fixturePaths(t)

	out, err := runCLI(t,
		"query", "--tracks", genes, "--tracks", variants,
		"--view", "chr17:7,000,000-8,000,000",
		"count variants where significance = pathogenic in view")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1")
}

func TestQueryCommand_Effect(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "query", "--tracks", genes, "zoom in")
	require.NoError(t, err)
	assert.Contains(t, out, "zoom factor 0.5")
}

func TestQueryCommand_SemanticFailure(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "query", "--tracks", genes, "search NOPE")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "not found")
}

func TestQueryCommand_GrammarFailure(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "query", "--tracks", genes, "teleport chr1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "error:")
}

func TestQueryCommand_NoSource(t *testing.T) {
	_, err := runCLI(t, "query", "zoom in")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no data source")
}

func TestQueryCommand_Manifest(t *testing.T) {
	genes, variants := fixturePaths(t)

	manifest := writeManifest(t, `
genome: id: "hg38"
tracks: ["`+genes+`", "`+variants+`"]
viewport: "chr17:7,000,000-8,000,000"
`)

	out, err := runCLI(t, "query", "--manifest", manifest, "count genes in view")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1", "only TP53 overlaps the manifest viewport")
}

func TestParseCommand(t *testing.T) {
	out, err := runCLI(t, "parse", "zoom in", "pan left 5kb")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, err = runCLI(t, "parse", "zoom in", "nonsense here")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 queries invalid")
	assert.Contains(t, out, "error")
}

func TestTracksCommand(t *testing.T) {
	genes, variants := fixturePaths(t)

	out, err := runCLI(t, "tracks", "--tracks", genes, "--tracks", variants)
	require.NoError(t, err)
	assert.Contains(t, out, "genes")
	assert.Contains(t, out, "clinvar")
	assert.Contains(t, out, "2 features")
	assert.Contains(t, out, "1 features")
}

func TestCommandsCommand(t *testing.T) {
	out, err := runCLI(t, "commands")
	require.NoError(t, err)
	assert.Contains(t, out, "navigate")
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "clear")
}

func TestAskCommand_Heuristic(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "ask", "--tracks", genes, "--dry-run", "where is TP53")
	require.NoError(t, err)
	assert.Contains(t, out, "translated (heuristic)")
	assert.Contains(t, out, "search gene TP53")
}

func TestAskCommand_NoTranslation(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "ask", "--tracks", genes, "completely inscrutable gibberish")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "could not interpret")
}

func TestAskCommand_Executes(t *testing.T) {
	genes, _ := fixturePaths(t)

	out, err := runCLI(t, "ask", "--tracks", genes, "where is TP53")
	require.NoError(t, err)
	assert.Contains(t, out, "TP53 at chr17:7,668,421-7,687,490")
}
