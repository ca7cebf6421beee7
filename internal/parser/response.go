package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"nutriscan/internal/domain"
)

// DecodeResult extracts the JSON object from a raw model response. Fenced
// code-block markers are stripped first; if the remainder still does not
// parse, the first balanced brace-delimited object is tried before giving
// up with a parse error.
func DecodeResult(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	if obj := tryObject(text); obj != nil {
		return obj, nil
	}
	if recovered := firstJSONObject(text); recovered != "" {
		if obj := tryObject(recovered); obj != nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrParseFailure, truncate(raw, 200))
}

func tryObject(s string) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return json.RawMessage(s)
}

// firstJSONObject returns the first balanced {...} span, skipping braces
// inside string literals. Returns "" when no balanced object exists.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
