package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/engine"
	"github.com/genoscope/gql/internal/gql"
)

func TestExitError(t *testing.T) {
	base := errors.New("underlying")
	err := WrapExitError(ExitCommandError, "loading tracks", base)

	assert.Equal(t, "loading tracks: underlying", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	bare := &ExitError{Code: ExitFailure, Message: "no translation found"}
	assert.Equal(t, "no translation found", bare.Error())
	assert.Equal(t, ExitFailure, GetExitCode(bare))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")), "plain errors default to failure")
}

func TestPrinter_ParsedText(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "text", Writer: &buf}

	require.NoError(t, printer.Parsed(gql.Parse("zoom in")))
	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, buf.String(), "zoom")

	buf.Reset()
	require.NoError(t, printer.Parsed(gql.Parse("zoom sideways")))
	assert.Contains(t, buf.String(), "error")
}

func TestPrinter_ParsedJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "json", Writer: &buf}

	require.NoError(t, printer.Parsed(gql.Parse("pan left 5kb")))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "pan", decoded["command"])
	assert.Equal(t, true, decoded["valid"])
}

func TestPrinter_ResultText(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "text", Writer: &buf}

	result := &engine.QueryResult{
		Success: true,
		Message: "2 features",
		Results: []engine.ListResultItem{
			{
				Name: "TP53", Chromosome: "chr17", Start: 7668420, End: 7687490,
				Details: []engine.DetailField{{Key: "strand", Value: "-"}},
			},
			{Name: "BRCA1", Chromosome: "chr17", Start: 43044294, End: 43125482},
		},
	}
	require.NoError(t, printer.Result(result))

	out := buf.String()
	assert.Contains(t, out, "ok: 2 features")
	assert.Contains(t, out, "TP53")
	assert.Contains(t, out, "chr17:7,668,421-7,687,490", "coordinates render in display form")
	assert.Contains(t, out, "strand=-")
}

func TestPrinter_ResultFailureText(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "text", Writer: &buf}

	require.NoError(t, printer.Result(&engine.QueryResult{Success: false, Message: "Gene \"NOPE\" not found"}))
	assert.Contains(t, buf.String(), "error: Gene \"NOPE\" not found")
}

func TestPrinter_EffectText(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "text", Writer: &buf}

	tests := []struct {
		effect engine.Effect
		want   string
	}{
		{engine.NavigateEffect{Region: coord.Region{Chromosome: "chr17", Start: 0, End: 100}}, "navigate chr17:1-100"},
		{engine.ZoomEffect{Factor: 0.5}, "zoom factor 0.5"},
		{engine.PanEffect{Direction: gql.DirectionLeft, AmountBases: 10000}, "pan left 10,000 bp"},
		{engine.ClearEffect{Target: gql.ClearAll}, "clear all"},
	}
	for _, tt := range tests {
		buf.Reset()
		require.NoError(t, printer.Effect(tt.effect))
		assert.Contains(t, buf.String(), tt.want)
	}
}

func TestPrinter_EffectJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := &Printer{Format: "json", Writer: &buf}

	require.NoError(t, printer.Effect(engine.ZoomEffect{Factor: 2}))

	var decoded struct {
		Effect string `json:"effect"`
		Params struct {
			Factor float64 `json:"factor"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "zoom", decoded.Effect)
	assert.Equal(t, 2.0, decoded.Params.Factor)
}
