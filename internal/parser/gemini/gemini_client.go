// Package gemini implements the hosted-model boundary against Google's
// Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"nutriscan/internal/config"
	"nutriscan/internal/parser"
	"nutriscan/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client implements port.ExtractionParser using Google's Gemini API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	prompt   string
	client   *http.Client
	log      zerolog.Logger
}

// NewClient creates a Gemini-backed extraction client.
func NewClient(cfg *config.GeminiConfig, log zerolog.Logger) *Client {
	return newClient(cfg, "", log)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint
// (for testing).
func NewClientWithEndpoint(cfg *config.GeminiConfig, endpoint string, log zerolog.Logger) *Client {
	return newClient(cfg, endpoint, log)
}

func newClient(cfg *config.GeminiConfig, endpoint string, log zerolog.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		prompt:   parser.Template(),
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Provider returns the provider name for response metadata.
func (c *Client) Provider() string { return "gemini" }

// AnalyzeText sends the cleaned document text to the model. When a
// nutrition-table sub-region can be located it is repeated in the prompt as
// a focusing hint; otherwise the full text goes out with the generic
// instruction.
func (c *Client) AnalyzeText(ctx context.Context, in port.TextAnalysisInput) (json.RawMessage, error) {
	section := parser.LocateNutritionSection(in.CleanedText)
	if section != "" {
		c.log.Debug().Msg("nutrition section located, sending focused prompt")
	}

	fullPrompt := parser.BuildTextPrompt(c.prompt, in.CleanedText, section)
	text, err := c.generate(ctx, []map[string]interface{}{
		{"text": fullPrompt},
	})
	if err != nil {
		return nil, err
	}
	return parser.DecodeResult(text)
}

// AnalyzeVision sends rasterized page images as the sole evidence; the
// model is instructed to read the images directly and ignore any OCR text.
func (c *Client) AnalyzeVision(ctx context.Context, in port.VisionAnalysisInput) (json.RawMessage, error) {
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("vision analysis requires at least one page image")
	}

	parts := []map[string]interface{}{
		{"text": parser.BuildVisionPrompt(c.prompt)},
	}
	for i, img := range in.Images {
		encoded, err := encodePNG(img)
		if err != nil {
			return nil, fmt.Errorf("encoding page %d: %w", i+1, err)
		}
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": "image/png",
				"data":      base64.StdEncoding.EncodeToString(encoded),
			},
		})
	}
	c.log.Debug().Int("pages", len(in.Images)).Msg("analyzing pages with vision")

	text, err := c.generate(ctx, parts)
	if err != nil {
		return nil, err
	}
	return parser.DecodeResult(text)
}

func (c *Client) generate(ctx context.Context, parts []map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.1,
			"maxOutputTokens": 2048,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
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
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
