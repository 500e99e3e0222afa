package caption

import (
	"bytes"
	"image/jpeg"
	"strings"
	"testing"

	"memeverse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func testImage(t *testing.T, w, h int) []byte {
	return testutil.PNG(t, w, h)
}

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	fnt, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72})
	require.NoError(t, err)
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func TestRender_ProducesDecodableJPEG(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(testImage(t, 600, 400), "top text", "bottom text")
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 600, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func TestRender_CaptionsChangePixels(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	src := testImage(t, 600, 400)
	plain, err := r.Render(src, "", "")
	require.NoError(t, err)
	captioned, err := r.Render(src, "HELLO", "WORLD")
	require.NoError(t, err)

	assert.NotEqual(t, plain, captioned)
}

func TestRender_InvalidImage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render([]byte("not an image"), "top", "bottom")
	assert.ErrorContains(t, err, "decode image")
}

func TestRenderDataURL(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	url, err := r.RenderDataURL(testImage(t, 400, 300), "caption", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestWrapText(t *testing.T) {
	face := testFace(t, 30)

	t.Run("empty text yields no lines", func(t *testing.T) {
		assert.Nil(t, wrapText(face, "", 500))
	})

	t.Run("short text stays on one line", func(t *testing.T) {
		lines := wrapText(face, "SHORT", 500)
		assert.Equal(t, []string{"SHORT"}, lines)
	})

	t.Run("every line fits within the limit", func(t *testing.T) {
		text := "WHEN THE CODE FINALLY COMPILES AFTER THE FORTIETH ATTEMPT"
		maxWidth := 220.0
		lines := wrapText(face, text, maxWidth)
		require.Greater(t, len(lines), 1)

		for _, line := range lines {
			// Single words wider than the limit are allowed through.
			if len(strings.Fields(line)) > 1 {
				width := fixedToFloat(font.MeasureString(face, line))
				assert.LessOrEqual(t, width, maxWidth, "line %q", line)
			}
		}

		// Wrapping must not lose or reorder words.
		assert.Equal(t, text, strings.Join(lines, " "))
	})

	t.Run("oversized single word gets its own line", func(t *testing.T) {
		lines := wrapText(face, "SUPERCALIFRAGILISTICEXPIALIDOCIOUS NO", 100)
		assert.Equal(t, "SUPERCALIFRAGILISTICEXPIALIDOCIOUS", lines[0])
	})
}

func TestRender_SmallImageUsesMinimumFontSize(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	// 100px wide: scaled size would be 8, the floor of 30 applies. The
	// render must still succeed even though the text towers over the image.
	out, err := r.Render(testImage(t, 100, 80), "TINY", "IMAGE")
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestCaptionBlockAnchors(t *testing.T) {
	const fontSize = 40.0
	lineHeight := fontSize * LineHeightFactor

	t.Run("top block hangs below the edge by its own height", func(t *testing.T) {
		oneLine := 1 * lineHeight
		threeLines := 3 * lineHeight
		assert.Equal(t, oneLine, topStartY(fontSize, oneLine))
		assert.Equal(t, threeLines, topStartY(fontSize, threeLines))
	})

	t.Run("top block never starts above one font size", func(t *testing.T) {
		assert.Equal(t, fontSize, topStartY(fontSize, fontSize/2))
	})

	t.Run("bottom block sits 1.2 heights above the edge", func(t *testing.T) {
		height := 800.0
		twoLines := 2 * lineHeight
		assert.Equal(t, height-twoLines*LineHeightFactor, bottomStartY(height, twoLines))
	})
}
