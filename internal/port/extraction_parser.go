package port

import (
	"context"
	"encoding/json"
	"image"

	"nutriscan/internal/domain"
)

// TextAnalysisInput carries the cleaned document text for a text-based
// extraction call.
type TextAnalysisInput struct {
	// CleanedText is the full cleaned document text.
	CleanedText string
	// PromptLines is a numbered rendering of the extracted lines, used as
	// layout context in the prompt.
	PromptLines string
	// Language is the detected ISO 639-1 language hint.
	Language string
}

// VisionAnalysisInput carries rasterized page images for a vision-based
// extraction call.
type VisionAnalysisInput struct {
	Images   []image.Image
	Language string
}

// ExtractionParser abstracts the hosted model boundary. Both operations
// return the raw JSON object extracted from the model response, or an error
// wrapping domain.ErrParseFailure when no JSON object could be recovered.
type ExtractionParser interface {
	AnalyzeText(ctx context.Context, in TextAnalysisInput) (json.RawMessage, error)
	AnalyzeVision(ctx context.Context, in VisionAnalysisInput) (json.RawMessage, error)
	Provider() string
}

// DocumentExtractor abstracts PDF content extraction. Extract never fails
// outward: strategy failures inside the extractor degrade to an empty
// document rather than an error.
type DocumentExtractor interface {
	Extract(ctx context.Context, pdfBytes []byte) *domain.StructuredDocument
}
