package extract

import (
	"strings"

	"github.com/gen2brain/go-fitz"

	"nutriscan/internal/domain"
)

// layoutLines runs the secondary layout strategy through MuPDF's text
// extraction. It recovers line structure some text layers expose only
// through layout analysis, at the cost of positional metadata.
func (e *Extractor) layoutLines(pdfBytes []byte) []domain.StructuredLine {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		e.log.Warn().Err(err).Msg("layout fallback strategy failed to open PDF")
		return nil
	}
	defer doc.Close()

	var lines []domain.StructuredLine
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			e.log.Warn().Err(err).Int("page", n).Msg("layout fallback failed for page")
			continue
		}
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			lines = append(lines, domain.StructuredLine{
				Text:   line,
				Source: domain.SourceLayoutFallback,
			})
		}
	}
	return lines
}
