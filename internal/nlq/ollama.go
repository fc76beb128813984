package nlq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// translatorPrompt constrains the model to the grammar and to a JSON
// answer. The browser context is appended as JSON.
const translatorPrompt = `You translate natural language into a genome browser query language.
The grammar:
  navigate <chr:start-end>
  search [gene] <name>
  zoom in|out|<factor>x
  pan left|right [<amount>[bp|kb|mb]]
  filter <field>=<value> ...
  highlight <chr:start-end> [label]
  list [all] genes|variants [with variants|in <gene>|pathogenic]
  SELECT GENES|VARIANTS|ALL [FROM t] [INTERSECT t] [WITHIN g] [WHERE f op v AND ...] [ORDER BY f [ASC|DESC]] [LIMIT n] [IN VIEW|CHROMOSOME|chr|chr:s-e]
  COUNT ... (same clauses as SELECT)
  clear filters|highlights|all
Answer with one JSON object: {"gql": "<query>"} when you can translate,
{"clarification": "<question>"} when you need more information.
Browser context: `

// OllamaTranslator implements Translator against a local Ollama HTTP API.
// It is opt-in: nothing in the core pipeline constructs one.
type OllamaTranslator struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaTranslator creates a translator that calls the Ollama API at
// baseURL with the given model.
func NewOllamaTranslator(baseURL, model string) *OllamaTranslator {
	return &OllamaTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ollamaGenerateRequest is the JSON body for the Ollama /api/generate
// endpoint.
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format"`
	Stream bool   `json:"stream"`
}

// ollamaGenerateResponse is the JSON response from /api/generate.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Translate implements Translator. Errors here are translation-boundary
// failures; the caller treats them like grammar errors and falls back.
func (o *OllamaTranslator) Translate(ctx context.Context, text string, browser BrowserContext) (Outcome, error) {
	contextJSON, err := json.Marshal(browser)
	if err != nil {
		return Outcome{}, fmt.Errorf("marshal browser context: %w", err)
	}

	reqBody := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: translatorPrompt + string(contextJSON) + "\nInput: " + text,
		Format: "json",
		Stream: false,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Outcome{}, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return Outcome{}, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("ollama generate request failed (is Ollama running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("ollama generate returned status %d", resp.StatusCode)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return Outcome{}, fmt.Errorf("decode generate response: %w", err)
	}

	var outcome Outcome
	if err := json.Unmarshal([]byte(genResp.Response), &outcome); err != nil {
		return Outcome{}, fmt.Errorf("malformed translator answer %q: %w", genResp.Response, err)
	}
	if outcome.GQL == "" && outcome.Clarification == "" {
		return Outcome{}, fmt.Errorf("translator answered neither gql nor clarification")
	}
	return outcome, nil
}
