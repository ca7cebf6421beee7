package extract

import (
	"sort"
	"strings"
	"unicode"

	"nutriscan/internal/domain"
)

// token is a positioned text fragment from a text-layer parser. Fragments
// are often single glyphs and are assembled into words before line grouping.
type token struct {
	text     string
	x0, y0   float64
	x1, y1   float64
	fontSize float64
}

// ocrWord is a recognized word with the OCR engine's own line index.
type ocrWord struct {
	text   string
	line   int
	x0, y0 float64
	x1, y1 float64
}

// assembleWords sorts raw fragments into reading order and coalesces
// adjacent fragments into words. A new word starts when the horizontal gap
// to the previous fragment exceeds a font-size-relative threshold, or when
// the fragment sits on a different row.
func assembleWords(tokens []token) []token {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := row(sorted[i].y0), row(sorted[j].y0)
		if ri != rj {
			// PDF y grows upward: higher rows read first.
			return ri > rj
		}
		return sorted[i].x0 < sorted[j].x0
	})

	var words []token
	current := sorted[0]
	for _, t := range sorted[1:] {
		sameRow := row(t.y0) == row(current.y0)
		if sameRow && t.x0-current.x1 <= wordGap(current.fontSize) {
			current.text += t.text
			current.x1 = t.x1
			if t.y1 > current.y1 {
				current.y1 = t.y1
			}
			continue
		}
		words = append(words, current)
		current = t
	}
	return append(words, current)
}

func row(y float64) int {
	return int(y / lineYTolerance)
}

func wordGap(fontSize float64) float64 {
	gap := 0.3 * fontSize
	if gap < 1 {
		gap = 1
	}
	return gap
}

// groupWords groups words into lines by vertical position: a word joins the
// current line iff its vertical offset is within lineYTolerance of the
// line's anchor. The line's bounding box starts as the first word's box and
// only its x1 is extended as words are appended.
func groupWords(words []token, page int, source domain.LineSource) []domain.StructuredLine {
	var lines []domain.StructuredLine
	var parts []string
	var bbox *domain.BoundingBox
	anchorY := 0.0

	flush := func() {
		if len(parts) == 0 {
			return
		}
		lines = append(lines, domain.StructuredLine{
			Text:   strings.Join(parts, " "),
			BBox:   bbox,
			Source: source,
		})
		parts = nil
		bbox = nil
	}

	for _, w := range words {
		if bbox == nil || abs(w.y0-anchorY) > lineYTolerance {
			flush()
			parts = []string{w.text}
			anchorY = w.y0
			bbox = &domain.BoundingBox{X0: w.x0, Y0: w.y0, X1: w.x1, Y1: w.y1, Page: page}
			continue
		}
		parts = append(parts, w.text)
		bbox.X1 = w.x1
	}
	flush()
	return lines
}

// groupOCRWords groups OCR words into lines by the engine's own line index
// rather than by vertical position.
func groupOCRWords(words []ocrWord, page int) []domain.StructuredLine {
	var lines []domain.StructuredLine
	var parts []string
	var bbox *domain.BoundingBox
	currentLine := -1

	flush := func() {
		if len(parts) == 0 {
			return
		}
		lines = append(lines, domain.StructuredLine{
			Text:   strings.Join(parts, " "),
			BBox:   bbox,
			Source: domain.SourceOCR,
		})
		parts = nil
		bbox = nil
	}

	for _, w := range words {
		if bbox == nil || w.line != currentLine {
			flush()
			parts = []string{w.text}
			currentLine = w.line
			bbox = &domain.BoundingBox{X0: w.x0, Y0: w.y0, X1: w.x1, Y1: w.y1, Page: page}
			continue
		}
		parts = append(parts, w.text)
		bbox.X1 = w.x1
	}
	flush()
	return lines
}

// lowQuality reports whether a text-layer result looks unusable: too little
// text overall, or a special-character ratio that suggests a corrupt
// encoding.
func lowQuality(lines []domain.StructuredLine) bool {
	if len(lines) == 0 {
		return true
	}

	var total, special int
	for _, line := range lines {
		for _, r := range line.Text {
			total++
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				special++
			}
		}
	}

	if total < minTotalChars {
		return true
	}
	return float64(special)/float64(total) > maxSpecialRatio
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
