package formatters

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/svgpreview/api"
)

func TestRasterizeSVG(t *testing.T) {
	svgContent := `<?xml version="1.0"?>
<svg width="100" height="100" viewBox="0 0 100 100" xmlns="http://www.w3.org/2000/svg">
    <rect width="100" height="100" fill="red"/>
</svg>`

	pngBytes, err := RasterizeSVG([]byte(svgContent), 20, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, pngBytes[:4])

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestRasterizeSVGRejectsBadSize(t *testing.T) {
	_, err := RasterizeSVG([]byte(`<svg/>`), 0, 10, color.White)
	assert.Error(t, err)
}

func TestGlyphPNGKeepsAspectRatio(t *testing.T) {
	glyph := api.GlyphDescriptor{Name: "wide", PathData: "M0 0h2000v1000h-2000z", Advance: 2000}
	pngBytes, err := GlyphPNG(testFont, glyph, api.DefaultConfiguration(), 64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	_, _, _, a := img.At(64, 32).RGBA()
	assert.NotZero(t, a, "glyph interior is painted")
}
