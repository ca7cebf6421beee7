package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxDimensions(t *testing.T) {
	b := BoundingBox{X0: 10, Y0: 20, X1: 110, Y1: 35}
	assert.Equal(t, 100.0, b.Width())
	assert.Equal(t, 15.0, b.Height())
}

func TestPromptLines(t *testing.T) {
	doc := &StructuredDocument{
		Lines: []StructuredLine{
			{Text: "Energy 250 kcal"},
			{Text: "Fat 6.9 g"},
			{Text: "Sodium 0.5 g"},
		},
	}

	t.Run("all lines fit", func(t *testing.T) {
		got := doc.PromptLines(10)
		assert.Equal(t, "1. Energy 250 kcal\n2. Fat 6.9 g\n3. Sodium 0.5 g", got)
	})

	t.Run("overflow marker", func(t *testing.T) {
		got := doc.PromptLines(2)
		assert.Equal(t, "1. Energy 250 kcal\n2. Fat 6.9 g\n... (1 more lines)", got)
	})

	t.Run("empty document", func(t *testing.T) {
		empty := &StructuredDocument{}
		assert.Equal(t, "", empty.PromptLines(10))
	})
}

func TestPromptLinesLargeDocument(t *testing.T) {
	doc := &StructuredDocument{}
	for i := 0; i < 150; i++ {
		doc.Lines = append(doc.Lines, StructuredLine{Text: fmt.Sprintf("line %d", i)})
	}
	got := doc.PromptLines(100)
	assert.Contains(t, got, "100. line 99")
	assert.Contains(t, got, "... (50 more lines)")
	assert.NotContains(t, got, "line 100\n")
}
