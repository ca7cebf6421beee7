// Package extract turns PDF bytes into a StructuredDocument by chaining
// extraction strategies: the embedded text layer first, a layout-based
// fallback parser next, and OCR over rasterized pages when the text layer
// is missing or unusable.
package extract

import (
	"bytes"
	"context"
	"image"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"

	"nutriscan/internal/config"
	"nutriscan/internal/domain"
)

const (
	// A structured-text pass with fewer lines than this triggers the
	// layout fallback.
	minStructuredLines = 5
	// Words whose vertical offsets differ by more than this belong to
	// different lines.
	lineYTolerance = 5.0
	// Quality thresholds deciding whether OCR is needed on top of a
	// text-layer result.
	minTotalChars   = 50
	maxSpecialRatio = 0.5
)

// Extractor runs the layered extraction pipeline. It is safe for concurrent
// use; all per-request state lives on the stack.
type Extractor struct {
	languages   string
	imageDPI    int
	concurrency int
	log         zerolog.Logger
}

// New creates an Extractor from OCR configuration.
func New(cfg *config.OCRConfig, log zerolog.Logger) *Extractor {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Extractor{
		languages:   cfg.Languages,
		imageDPI:    cfg.ImageDPI,
		concurrency: concurrency,
		log:         log,
	}
}

// Extract runs all applicable strategies over the PDF and returns a
// StructuredDocument. It never fails outward: a strategy that errors or
// panics contributes zero lines and the remaining strategies still run.
func (e *Extractor) Extract(ctx context.Context, pdfBytes []byte) *domain.StructuredDocument {
	lines := e.structuredLines(pdfBytes)

	if len(lines) < minStructuredLines {
		if alt := e.layoutLines(pdfBytes); len(alt) > len(lines) {
			lines = alt
		}
	}

	hasText := len(lines) > 0
	ocrNeeded := !hasText || lowQuality(lines)

	var images []image.Image
	if ocrNeeded {
		var ocrLines []domain.StructuredLine
		ocrLines, images = e.ocrLines(ctx, pdfBytes)
		// OCR output replaces the text-layer lines only when it is strictly
		// richer; the page images are retained either way for the vision
		// fallback.
		if len(ocrLines) > len(lines) {
			lines = ocrLines
		}
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}

	return &domain.StructuredDocument{
		Text:      strings.Join(texts, "\n"),
		Lines:     lines,
		PageCount: e.pageCount(pdfBytes),
		HasText:   hasText,
		OCRUsed:   ocrNeeded,
		Images:    images,
	}
}

// pageCount reads the page total from the PDF's own page table, independent
// of any text strategy. Defaults to 1 when the lookup fails.
func (e *Extractor) pageCount(pdfBytes []byte) int {
	count, err := api.PageCount(bytes.NewReader(pdfBytes), nil)
	if err != nil || count < 1 {
		e.log.Debug().Err(err).Msg("page count lookup failed, defaulting to 1")
		return 1
	}
	return count
}
