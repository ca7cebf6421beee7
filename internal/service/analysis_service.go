package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"nutriscan/internal/domain"
	"nutriscan/internal/language"
	"nutriscan/internal/port"
	"nutriscan/internal/textclean"
	"nutriscan/internal/validator"
)

const (
	// Requests yielding fewer usable characters than this, even after the
	// OCR fallback, are rejected as client errors.
	minUsableChars = 20
	// promptLineLimit caps the numbered layout context sent to the model.
	promptLineLimit = 100

	visionReasonPoorOCR    = "poor_quality_ocr"
	visionReasonTextFailed = "text_analysis_failed"
)

// Analysis is the contract the HTTP layer depends on.
type Analysis interface {
	Analyze(ctx context.Context, filename string, pdfBytes []byte) (*domain.AnalysisOutput, error)
}

// AnalysisService sequences the extraction pipeline: document extraction,
// text cleaning, language detection, the text-path model call, the quality
// gate with its vision fallback, and result validation.
type AnalysisService struct {
	extractor      port.DocumentExtractor
	parser         port.ExtractionParser
	maxVisionPages int
	log            zerolog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(extractor port.DocumentExtractor, parser port.ExtractionParser, maxVisionPages int, log zerolog.Logger) *AnalysisService {
	if maxVisionPages < 1 {
		maxVisionPages = 3
	}
	return &AnalysisService{
		extractor:      extractor,
		parser:         parser,
		maxVisionPages: maxVisionPages,
		log:            log,
	}
}

// Analyze runs the full pipeline over one uploaded PDF. It returns either a
// fully normalized result or an error; there is no partial success.
func (s *AnalysisService) Analyze(ctx context.Context, filename string, pdfBytes []byte) (*domain.AnalysisOutput, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, domain.ErrUnsupportedFileType
	}

	doc := s.extractor.Extract(ctx, pdfBytes)
	if len(strings.TrimSpace(doc.Text)) < minUsableChars {
		return nil, domain.ErrUnusableText
	}

	cleaned := textclean.Clean(doc.Text)
	lang := language.Detect(cleaned)
	doc.LanguageHint = lang
	s.log.Debug().
		Str("language", language.Name(lang)).
		Int("pages", doc.PageCount).
		Bool("ocr_used", doc.OCRUsed).
		Int("lines", len(doc.Lines)).
		Msg("document extracted")

	meta := domain.AnalysisMetadata{
		PageCount:  doc.PageCount,
		HasText:    doc.HasText,
		OCRUsed:    doc.OCRUsed,
		Language:   lang,
		AIProvider: s.parser.Provider(),
	}

	raw, textErr := s.parser.AnalyzeText(ctx, port.TextAnalysisInput{
		CleanedText: cleaned,
		PromptLines: doc.PromptLines(promptLineLimit),
		Language:    lang,
	})

	visionReason := ""
	switch {
	case textErr != nil:
		// A failed or timed-out text call is treated like a poor-quality
		// result: fall through to the vision path when page images exist.
		if len(doc.Images) == 0 {
			return nil, textErr
		}
		visionReason = visionReasonTextFailed
	case PoorQuality(raw, doc.OCRUsed) && len(doc.Images) > 0:
		visionReason = visionReasonPoorOCR
	}

	if visionReason != "" {
		images := doc.Images
		if len(images) > s.maxVisionPages {
			// Cost control: the nutrition table is on the first pages.
			images = images[:s.maxVisionPages]
		}

		visionRaw, visionErr := s.parser.AnalyzeVision(ctx, port.VisionAnalysisInput{
			Images:   images,
			Language: lang,
		})
		if visionErr != nil {
			s.log.Warn().Err(visionErr).Str("reason", visionReason).Msg("vision fallback failed, keeping original result")
			if textErr != nil {
				return nil, textErr
			}
		} else {
			raw = visionRaw
			meta.VisionAPIUsed = true
			meta.VisionReason = visionReason
		}
	}

	result, err := validator.ValidateAndNormalize(raw)
	if err != nil {
		return nil, err
	}

	return &domain.AnalysisOutput{Result: result, Metadata: meta}, nil
}
