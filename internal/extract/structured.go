package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"nutriscan/internal/domain"
)

// structuredLines runs the primary structured-text strategy: it reads the
// PDF's embedded text layer with positions and groups word tokens into
// lines by vertical offset. Any failure, including panics from malformed
// content streams, degrades to zero lines.
func (e *Extractor) structuredLines(pdfBytes []byte) (lines []domain.StructuredLine) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Interface("panic", r).Msg("structured text strategy failed")
			lines = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		e.log.Warn().Err(err).Msg("structured text strategy failed to open PDF")
		return nil
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		tokens := make([]token, 0, len(content.Text))
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			tokens = append(tokens, token{
				text:     t.S,
				x0:       t.X,
				y0:       t.Y,
				x1:       t.X + t.W,
				y1:       t.Y + t.FontSize,
				fontSize: t.FontSize,
			})
		}

		words := assembleWords(tokens)
		lines = append(lines, groupWords(words, pageNum-1, domain.SourceNativeText)...)
	}
	return lines
}
