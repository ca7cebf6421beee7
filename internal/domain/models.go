package domain

import (
	"fmt"
	"image"
	"strings"
)

// BoundingBox is the position of a text line on a page. Coordinates are in
// the source coordinate space of whichever strategy produced the line
// (PDF points for text-layer strategies, pixels for OCR).
type BoundingBox struct {
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Page int     `json:"page"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y1 - b.Y0 }

// StructuredLine is a single extracted text line with its position and the
// strategy that produced it. Lines are immutable once an extraction pass
// completes.
type StructuredLine struct {
	Text   string
	BBox   *BoundingBox
	Source LineSource
}

// StructuredDocument is the full extracted content of one PDF. It is built
// once per request and consumed read-only afterward.
type StructuredDocument struct {
	// Text is the newline-joined concatenation of Lines in extraction order.
	Text      string
	Lines     []StructuredLine
	PageCount int
	// HasText reports whether a text-layer strategy produced any lines,
	// independent of whether OCR later ran.
	HasText bool
	// OCRUsed reports whether OCR was invoked, regardless of whether its
	// output was ultimately kept.
	OCRUsed      bool
	LanguageHint string
	// Images holds the rasterized pages when OCR ran, retained for the
	// vision fallback.
	Images []image.Image
}

// PromptLines formats up to max lines as a numbered list for the model
// prompt. When lines are omitted a trailing count marker is appended.
func (d *StructuredDocument) PromptLines(max int) string {
	lines := d.Lines
	if len(lines) > max {
		lines = lines[:max]
	}

	var sb strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line.Text)
	}
	if len(d.Lines) > max {
		fmt.Fprintf(&sb, "... (%d more lines)\n", len(d.Lines)-max)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NutritionValue is one extracted nutrition entry. Per100g is nil when the
// value was not found on the label; "0" means a measured zero.
type NutritionValue struct {
	Per100g *string `json:"per_100g"`
	Unit    *string `json:"unit"`
}

// ExtractionResult is the model output after validation and normalization.
type ExtractionResult struct {
	Nutrition map[string]NutritionValue `json:"nutrition"`
	Allergens map[string]bool           `json:"allergens"`
}

// AnalysisMetadata describes how a result was produced.
type AnalysisMetadata struct {
	PageCount     int    `json:"page_count"`
	HasText       bool   `json:"has_text"`
	OCRUsed       bool   `json:"ocr_used"`
	Language      string `json:"language"`
	VisionAPIUsed bool   `json:"vision_api_used"`
	VisionReason  string `json:"vision_reason,omitempty"`
	AIProvider    string `json:"ai_provider"`
}

// AnalysisOutput is the full result of one analyze request.
type AnalysisOutput struct {
	Result   *ExtractionResult
	Metadata AnalysisMetadata
}
