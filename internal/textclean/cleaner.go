// Package textclean normalizes raw extracted text before it is sent to the
// model: decimal commas become decimal points, whitespace is collapsed, and
// non-informative characters are stripped.
package textclean

import (
	"regexp"
	"strings"
)

var (
	numericComma = regexp.MustCompile(`(\d+),(\d+)`)
	spacesTabs   = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n\s*\n`)
	// Keeps letters, digits, whitespace and the punctuation that carries
	// meaning on nutrition labels: / % ( ) - : . , < > * and currency signs.
	noise = regexp.MustCompile(`[^\p{L}\p{N}_\s/%()\-:.,<>*€$£¥]`)
)

// Clean applies the full normalization pass. Empty input yields "".
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = FixNumericCommas(text)
	text = normalizeWhitespace(text)
	text = noise.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// FixNumericCommas converts decimal commas to decimal points in numeric
// values: "6,9 g" becomes "6.9 g".
func FixNumericCommas(text string) string {
	return numericComma.ReplaceAllString(text, "$1.$2")
}

func normalizeWhitespace(text string) string {
	text = spacesTabs.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	return text
}
