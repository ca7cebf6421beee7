package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"nutriscan/internal/domain"
)

// ocrArtifactTokens are substrings Tesseract commonly produces in place of
// digits on low-contrast labels ("LL" for 1.1, "II" for 11).
var ocrArtifactTokens = []string{"LL", "Sig", "II"}

// PoorQuality decides whether a text-path extraction result is too weak to
// trust, warranting a vision re-extraction. Rules are evaluated in order;
// the first match wins:
//
//  1. empty nutrition map
//  2. every per_100g is null
//  3. sodium per_100g is null (the field OCR most commonly drops)
//  4. when OCR was used, any value containing a known OCR artifact
func PoorQuality(raw json.RawMessage, ocrUsed bool) bool {
	var result struct {
		Nutrition map[string]struct {
			Per100g interface{} `json:"per_100g"`
		} `json:"nutrition"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return true
	}

	if len(result.Nutrition) == 0 {
		return true
	}

	allNull := true
	for _, entry := range result.Nutrition {
		if entry.Per100g != nil {
			allNull = false
			break
		}
	}
	if allNull {
		return true
	}

	sodium, ok := result.Nutrition[domain.CategorySodium]
	if !ok || sodium.Per100g == nil {
		return true
	}

	if ocrUsed {
		for _, entry := range result.Nutrition {
			if entry.Per100g == nil {
				continue
			}
			value := fmt.Sprintf("%v", entry.Per100g)
			for _, artifact := range ocrArtifactTokens {
				if strings.Contains(value, artifact) {
					return true
				}
			}
		}
	}

	return false
}
