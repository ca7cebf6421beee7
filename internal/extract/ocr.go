package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/sync/errgroup"

	"nutriscan/internal/domain"
)

// ocrLines rasterizes every page at the configured DPI and runs Tesseract
// over each. Recognition runs concurrently across pages; rasterization is
// sequential because the MuPDF document handle is not safe for concurrent
// use. The rasterized images are returned even when recognition fails so
// the vision fallback can still use them.
func (e *Extractor) ocrLines(ctx context.Context, pdfBytes []byte) ([]domain.StructuredLine, []image.Image) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		e.log.Warn().Err(err).Msg("ocr strategy failed to open PDF")
		return nil, nil
	}
	defer doc.Close()

	var images []image.Image
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, float64(e.imageDPI))
		if err != nil {
			e.log.Warn().Err(err).Int("page", n).Msg("rasterization failed for page")
			continue
		}
		images = append(images, img)
	}
	e.log.Debug().Int("pages", len(images)).Msg("rasterized PDF for OCR")

	perPage := make([][]domain.StructuredLine, len(images))
	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i, img := range images {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			lines, err := e.recognizePage(img, i)
			if err != nil {
				e.log.Warn().Err(err).Int("page", i).Msg("ocr failed for page")
				return nil
			}
			perPage[i] = lines
			return nil
		})
	}
	_ = g.Wait()

	var lines []domain.StructuredLine
	for _, pageLines := range perPage {
		lines = append(lines, pageLines...)
	}
	return lines, images
}

// recognizePage runs Tesseract on one grayscale-preprocessed page image and
// groups the recognized words into lines by the engine's line index.
func (e *Extractor) recognizePage(img image.Image, page int) ([]domain.StructuredLine, error) {
	encoded, err := encodeGray(img)
	if err != nil {
		return nil, fmt.Errorf("preprocessing page image: %w", err)
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(strings.Split(e.languages, "+")...); err != nil {
		return nil, fmt.Errorf("setting ocr languages: %w", err)
	}
	if err := client.SetImageFromBytes(encoded); err != nil {
		return nil, fmt.Errorf("setting page image: %w", err)
	}

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("recognizing page: %w", err)
	}

	words := make([]ocrWord, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" || b.Confidence < 0 {
			continue
		}
		words = append(words, ocrWord{
			text: text,
			line: b.LineNum,
			x0:   float64(b.Box.Min.X),
			y0:   float64(b.Box.Min.Y),
			x1:   float64(b.Box.Max.X),
			y1:   float64(b.Box.Max.Y),
		})
	}
	return groupOCRWords(words, page), nil
}

// encodeGray converts a page image to grayscale and encodes it as PNG for
// Tesseract.
func encodeGray(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
