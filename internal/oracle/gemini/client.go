// Package gemini implements the analysis oracle against Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"spherical/internal/config"
	"spherical/internal/domain"
	"spherical/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

const transcribeInstruction = "Perform OCR on this document page. Transcribe the text exactly as it appears, preserving original formatting and line breaks. Do not summarize or add any extra commentary."

// Client implements port.AnalysisOracle over the Gemini REST API. Every
// public method maps failures to sentinel values; none of them returns an
// error. Construct it only when an API key exists (see NewClient).
type Client struct {
	apiKey          string
	baseURL         string
	transcribeModel string
	keywordModel    string
	agentModel      string
	keywordCount    int
	maxOutputTokens int
	client          *http.Client
}

// NewClient creates a Gemini-backed oracle, or nil if no API key is
// configured. A nil return is the "oracle unavailable" condition callers
// check once at startup.
func NewClient(cfg *config.OracleConfig) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	return newClient(cfg, apiBaseURL)
}

// NewClientWithBaseURL creates a client pointing at a custom API base URL
// (for testing).
func NewClientWithBaseURL(cfg *config.OracleConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.OracleConfig, baseURL string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	keywordCount := cfg.KeywordCount
	if keywordCount == 0 {
		keywordCount = 15
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 16384
	}
	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         baseURL,
		transcribeModel: orDefault(cfg.TranscribeModel, domain.ModelFast),
		keywordModel:    orDefault(cfg.KeywordModel, domain.ModelFast),
		agentModel:      orDefault(cfg.AgentModel, domain.ModelAgentDefault),
		keywordCount:    keywordCount,
		maxOutputTokens: maxTokens,
		client:          &http.Client{Timeout: timeout},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// TranscribePage sends one rendered page for transcription. Any transport or
// response failure degrades to the OCR sentinel text.
func (c *Client) TranscribePage(ctx context.Context, page port.Page) string {
	req := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: page.ContentType,
					Data:     base64.StdEncoding.EncodeToString(page.Data),
				}},
				{Text: transcribeInstruction},
			},
		}},
	}

	text, err := c.generate(ctx, c.transcribeModel, req)
	if err != nil {
		log.Printf("gemini.TranscribePage: page %d: %v", page.Number, err)
		return domain.SentinelOcrFailed
	}
	return text
}

// ExtractKeywords asks for a strict JSON string array of keywords. Failures
// and schema violations yield an empty slice.
func (c *Client) ExtractKeywords(ctx context.Context, text string) []string {
	prompt := fmt.Sprintf(
		`Extract the top %d most relevant keywords or key phrases from the following text. Return them as a JSON array of strings. Text: """%s"""`,
		c.keywordCount, text,
	)
	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type:  "ARRAY",
				Items: &schema{Type: "STRING"},
			},
			MaxOutputTokens: c.maxOutputTokens,
		},
	}

	raw, err := c.generate(ctx, c.keywordModel, req)
	if err != nil {
		log.Printf("gemini.ExtractKeywords: %v", err)
		return []string{}
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		log.Printf("gemini.ExtractKeywords: malformed response: %v", err)
		return []string{}
	}
	return keywords
}

// Analyze runs an agent prompt against the combined text, requesting a
// structured response with the analysis and 3-5 follow-up questions. Failures
// and schema violations yield the agent failure sentinel.
func (c *Client) Analyze(ctx context.Context, prompt, contextText, model string) domain.AgentRunResult {
	if model == "" {
		model = c.agentModel
	}
	fullPrompt := fmt.Sprintf(`%s

Here is the document context you need to analyze:
"""
%s
"""

Based on your analysis, also provide 3-5 potential follow-up questions a user might have.`,
		prompt, contextText)

	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: fullPrompt}},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"analysis": {
						Type:        "STRING",
						Description: "The detailed analysis based on the user's request and provided context. Format using Markdown.",
					},
					"followUpQuestions": {
						Type:        "ARRAY",
						Description: "An array of 3 to 5 string questions that are relevant follow-ups to the analysis.",
						Items:       &schema{Type: "STRING"},
					},
				},
				Required: []string{"analysis", "followUpQuestions"},
			},
			MaxOutputTokens: c.maxOutputTokens,
		},
	}

	failed := domain.AgentRunResult{
		Analysis:          domain.SentinelAgentFailed,
		FollowUpQuestions: []string{},
	}

	raw, err := c.generate(ctx, model, req)
	if err != nil {
		log.Printf("gemini.Analyze: %v", err)
		return failed
	}

	var parsed struct {
		Analysis          string   `json:"analysis"`
		FollowUpQuestions []string `json:"followUpQuestions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("gemini.Analyze: malformed response: %v", err)
		return failed
	}

	if parsed.Analysis == "" {
		parsed.Analysis = "No analysis provided."
	}
	if parsed.FollowUpQuestions == nil {
		parsed.FollowUpQuestions = []string{}
	}
	return domain.AgentRunResult{
		Analysis:          parsed.Analysis,
		FollowUpQuestions: parsed.FollowUpQuestions,
	}
}

// generate performs one generateContent call and returns the first
// candidate's concatenated text parts.
func (c *Client) generate(ctx context.Context, model string, reqBody generateRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	var out bytes.Buffer
	for _, p := range parsed.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
