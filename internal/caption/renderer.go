// Package caption rasterizes top and bottom caption text onto meme images.
package caption

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strings"
	"time"

	"memeverse/internal/models"
	"memeverse/internal/observability"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// MinFontSize is the floor for caption text so small images stay legible.
	MinFontSize = 30.0
	// FontScale is the caption size relative to image width.
	FontScale = 0.08
	// WrapWidthRatio bounds each text line relative to image width.
	WrapWidthRatio = 0.9
	// LineHeightFactor spaces wrapped lines relative to font size.
	LineHeightFactor = 1.2
	// JPEGQuality is the encode quality for rendered output.
	JPEGQuality = 100
)

// Renderer draws impact-style captions onto images.
type Renderer struct {
	fnt *opentype.Font
}

// NewRenderer parses the embedded typeface and returns a Renderer.
func NewRenderer() (*Renderer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, models.NewRenderError("Failed to parse caption font", err)
	}
	return &Renderer{fnt: fnt}, nil
}

// Render decodes src, draws topText and bottomText in caption style, and
// returns the result as JPEG bytes. Caption text is uppercased and wrapped
// so no line exceeds 90% of the image width. Empty captions are skipped.
func (r *Renderer) Render(src []byte, topText, bottomText string) ([]byte, error) {
	start := time.Now()
	defer observability.ObserveCaptionRender(start)

	decoded, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, models.NewRenderError("Failed to decode image", err)
	}

	bounds := decoded.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, decoded, bounds.Min, draw.Src)

	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	fontSize := width * FontScale
	if fontSize < MinFontSize {
		fontSize = MinFontSize
	}

	face, err := opentype.NewFace(r.fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, models.NewRenderError("Failed to build caption font face", err)
	}
	defer face.Close()

	maxLineWidth := width * WrapWidthRatio
	lineHeight := fontSize * LineHeightFactor

	if top := strings.ToUpper(strings.TrimSpace(topText)); top != "" {
		lines := wrapText(face, top, maxLineWidth)
		totalHeight := float64(len(lines)) * lineHeight
		r.drawLines(canvas, face, lines, topStartY(fontSize, totalHeight), lineHeight, width, fontSize)
	}

	if bottom := strings.ToUpper(strings.TrimSpace(bottomText)); bottom != "" {
		lines := wrapText(face, bottom, maxLineWidth)
		totalHeight := float64(len(lines)) * lineHeight
		r.drawLines(canvas, face, lines, bottomStartY(height, totalHeight), lineHeight, width, fontSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, models.NewRenderError("Failed to encode captioned image", err)
	}
	return buf.Bytes(), nil
}

// RenderDataURL renders the captions and returns the result as a JPEG data URL.
func (r *Renderer) RenderDataURL(src []byte, topText, bottomText string) (string, error) {
	encoded, err := r.Render(src, topText, bottomText)
	if err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// topStartY returns the first-line baseline of the top caption block: the
// block hangs below the top edge by its own height, never less than one
// font size.
func topStartY(fontSize, totalHeight float64) float64 {
	if totalHeight > fontSize {
		return totalHeight
	}
	return fontSize
}

// bottomStartY returns the first-line baseline of the bottom caption block,
// which sits 1.2 times its own height above the bottom edge.
func bottomStartY(height, totalHeight float64) float64 {
	return height - totalHeight*LineHeightFactor
}

// drawLines draws each line centered horizontally, outlined in black and
// filled in white.
func (r *Renderer) drawLines(canvas *image.RGBA, face font.Face, lines []string, startY, lineHeight, width, fontSize float64) {
	offset := int(fontSize / 15)
	if offset < 1 {
		offset = 1
	}

	for i, line := range lines {
		lineWidth := fixedToFloat(font.MeasureString(face, line))
		x := (width - lineWidth) / 2
		y := startY + float64(i)*lineHeight

		// Outline first so the fill sits on top.
		for dx := -offset; dx <= offset; dx += offset {
			for dy := -offset; dy <= offset; dy += offset {
				if dx == 0 && dy == 0 {
					continue
				}
				drawString(canvas, face, line, x+float64(dx), y+float64(dy), color.Black)
			}
		}
		drawString(canvas, face, line, x, y, color.White)
	}
}

func drawString(canvas *image.RGBA, face font.Face, text string, x, y float64, col color.Color) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(y),
		},
	}
	d.DrawString(text)
}

// wrapText splits text into lines greedily so each rendered line fits within
// maxWidth. A single word wider than maxWidth gets its own line.
func wrapText(face font.Face, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if fixedToFloat(font.MeasureString(face, candidate)) > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
