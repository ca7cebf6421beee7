package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriscan/internal/domain"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"bare object",
			`{"nutrition": {}, "allergens": {}}`,
			`{"nutrition": {}, "allergens": {}}`,
		},
		{
			"json fence",
			"```json\n{\"nutrition\": {}}\n```",
			`{"nutrition": {}}`,
		},
		{
			"plain fence",
			"```\n{\"allergens\": {}}\n```",
			`{"allergens": {}}`,
		},
		{
			"prose around object",
			`Here is the extraction: {"nutrition": {"energy": {"per_100g": "250"}}} Hope this helps!`,
			`{"nutrition": {"energy": {"per_100g": "250"}}}`,
		},
		{
			"brace inside string literal",
			`prefix {"note": "odd } brace", "ok": true} suffix`,
			`{"note": "odd } brace", "ok": true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResult(tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDecodeResultFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no json at all", "Sorry, I could not read the document."},
		{"unbalanced braces", `{"nutrition": {`},
		{"array not object", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResult(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParseFailure)
		})
	}
}

func TestDecodeResultTruncatesLongResponses(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	_, err := DecodeResult(string(long))
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 300)
}

func TestDecodeResultRoundTrips(t *testing.T) {
	raw, err := DecodeResult("```json\n{\"allergens\": {\"milk\": true}}\n```")
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "allergens")
}
