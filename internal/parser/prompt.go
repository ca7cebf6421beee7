// Package parser holds the hosted-model boundary contract: the fixed
// instruction template, prompt shaping, and response JSON recovery.
package parser

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed prompt.txt
var promptTemplate string

// Template returns the fixed instruction template, embedded at build time
// and immutable for the process lifetime.
func Template() string {
	return promptTemplate
}

const (
	// Window sizes for the nutrition-table sub-region sent as a focusing
	// hint, large enough to cover a full table.
	sectionWindow = 400
	energyBefore  = 50
	energyAfter   = 350
)

// sectionMarkers are locale-specific nutrition-table header phrases,
// searched in order.
var sectionMarkers = []string{
	"Nutritional information",
	"Tápérték adatok",
	"Nutrition facts",
	"Energy/Energia",
}

// energyMarkers drive the proximity fallback when no header phrase matches.
var energyMarkers = []string{"Energy", "Energia"}

// LocateNutritionSection finds the nutrition-table sub-region of the
// document text. It tries the known header phrases first, then a proximity
// search around an energy token, and returns "" when neither matches.
func LocateNutritionSection(text string) string {
	for _, marker := range sectionMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			return text[idx:clamp(idx+sectionWindow, len(text))]
		}
	}

	for _, marker := range energyMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			start := idx - energyBefore
			if start < 0 {
				start = 0
			}
			return text[start:clamp(idx+energyAfter, len(text))]
		}
	}
	return ""
}

// BuildTextPrompt combines the instruction template with the full document
// text and, when found, the nutrition-table sub-region as a focusing hint.
func BuildTextPrompt(template, fullText, section string) string {
	if section != "" {
		return fmt.Sprintf(`%s

FULL DOCUMENT (allergens and context):
%s

NUTRITION TABLE (focused extraction):
%s

Extract the nutrition values from the NUTRITION TABLE section and the allergens from the FULL DOCUMENT. Return only the JSON.`,
			template, fullText, section)
	}

	return fmt.Sprintf(`%s

DOCUMENT TO ANALYZE:
%s

Extract the data in the format shown above. Return only the JSON.`,
		template, fullText)
}

// BuildVisionPrompt combines the instruction template with the directions
// for direct image analysis.
func BuildVisionPrompt(template string) string {
	return fmt.Sprintf(`%s

INSTRUCTIONS:
You are looking at images of a product label or document.
Visually identify and extract the nutrition table and the allergen list.
Do NOT rely on any OCR text - analyze the image directly.
Return only the JSON in the exact format given above.`, template)
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}
