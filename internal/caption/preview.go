package caption

import (
	"bytes"
	"encoding/base64"
	"image"

	"memeverse/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	// MaxPreviewDim bounds the longest edge of a caption preview.
	MaxPreviewDim = 512
	// PreviewQuality is the WebP encode quality for previews.
	PreviewQuality = 80
)

// RenderPreview renders the captions and returns a downscaled WebP preview.
// Previews are capped at MaxPreviewDim on the longest edge so the editor can
// refresh them cheaply while the user types.
func (r *Renderer) RenderPreview(src []byte, topText, bottomText string) ([]byte, error) {
	rendered, err := r.Render(src, topText, bottomText)
	if err != nil {
		return nil, err
	}

	decoded, _, err := image.Decode(bytes.NewReader(rendered))
	if err != nil {
		return nil, models.NewRenderError("Failed to decode rendered image", err)
	}

	scaled := downscale(decoded, MaxPreviewDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: PreviewQuality}); err != nil {
		return nil, models.NewRenderError("Failed to encode preview image", err)
	}
	return buf.Bytes(), nil
}

// RenderPreviewDataURL renders the captions and returns the preview as a
// WebP data URL.
func (r *Renderer) RenderPreviewDataURL(src []byte, topText, bottomText string) (string, error) {
	encoded, err := r.RenderPreview(src, topText, bottomText)
	if err != nil {
		return "", err
	}
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// downscale resizes img so its longest edge is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
