package gemini

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriscan/internal/config"
	"nutriscan/internal/domain"
	"nutriscan/internal/port"
)

func testConfig() *config.GeminiConfig {
	return &config.GeminiConfig{
		APIKey:      "test-key",
		Model:       "gemini-2.0-flash",
		TimeoutSecs: 5,
	}
}

func geminiReply(text string) string {
	reply := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestAnalyzeText(t *testing.T) {
	var captured struct {
		apiKey      string
		contentType string
		body        map[string]interface{}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.apiKey = r.Header.Get("x-goog-api-key")
		captured.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiReply("```json\n{\"nutrition\": {}, \"allergens\": {}}\n```")))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL, zerolog.Nop())
	raw, err := client.AnalyzeText(context.Background(), port.TextAnalysisInput{
		CleanedText: "Nutritional information: Energy 250 kcal, Sodium 0.5 g",
		Language:    "en",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nutrition": {}, "allergens": {}}`, string(raw))

	assert.Equal(t, "test-key", captured.apiKey)
	assert.Equal(t, "application/json", captured.contentType)

	contents := captured.body["contents"].([]interface{})
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 1)
	promptText := parts[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, promptText, "NUTRITION TABLE")
	assert.Contains(t, promptText, "Energy 250 kcal")

	genCfg := captured.body["generationConfig"].(map[string]interface{})
	assert.Equal(t, 0.1, genCfg["temperature"])
}

func TestAnalyzeVision(t *testing.T) {
	var parts []interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		contents := body["contents"].([]interface{})
		parts = contents[0].(map[string]interface{})["parts"].([]interface{})
		_, _ = w.Write([]byte(geminiReply(`{"nutrition": {}, "allergens": {}}`)))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL, zerolog.Nop())
	_, err := client.AnalyzeVision(context.Background(), port.VisionAnalysisInput{
		Images: []image.Image{
			image.NewGray(image.Rect(0, 0, 4, 4)),
			image.NewGray(image.Rect(0, 0, 4, 4)),
		},
		Language: "hu",
	})
	require.NoError(t, err)

	// One text part followed by one inline_data part per page.
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0].(map[string]interface{})["text"].(string), "analyze the image directly")
	for _, p := range parts[1:] {
		inline := p.(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/png", inline["mime_type"])
		assert.NotEmpty(t, inline["data"])
	}
}

func TestAnalyzeVisionRequiresImages(t *testing.T) {
	client := NewClientWithEndpoint(testConfig(), "http://unused", zerolog.Nop())
	_, err := client.AnalyzeVision(context.Background(), port.VisionAnalysisInput{})
	assert.Error(t, err)
}

func TestAnalyzeTextAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL, zerolog.Nop())
	_, err := client.AnalyzeText(context.Background(), port.TextAnalysisInput{CleanedText: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnalyzeTextUnparseableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiReply("I cannot read this document.")))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL, zerolog.Nop())
	_, err := client.AnalyzeText(context.Background(), port.TextAnalysisInput{CleanedText: "text"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}
