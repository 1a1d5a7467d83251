package formatters

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/flanksource/svgpreview/api"
)

// RasterizeSVG draws an SVG into a width x height PNG. A nil background
// leaves the image transparent.
func RasterizeSVG(svgBytes []byte, width, height int, background color.Color) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgBytes), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if background != nil {
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return pngBuf.Bytes(), nil
}

// GlyphPNG rasterises one glyph at the given pixel height, keeping the
// advance to units-per-em aspect ratio. currentColor is drawn black.
func GlyphPNG(font api.FontDescriptor, glyph api.GlyphDescriptor, cfg api.RenderConfiguration, size int) ([]byte, error) {
	paint := PaintFor(cfg, glyph)
	if paint.Fill == "currentColor" {
		paint.Fill = "#000000"
	}
	if paint.Stroke == "currentColor" {
		paint.Stroke = "#000000"
	}
	// oksvg has no vector-effect, so the width is converted to font units.
	paint.StrokeWidth *= font.UnitsPerEm / float64(size)

	width := int(math.Round(float64(size) * glyph.Advance / font.UnitsPerEm))
	if width < 1 {
		width = 1
	}
	doc := GlyphSVG(font, glyph, paint,
		fmt.Sprintf(`width="%d"`, width), fmt.Sprintf(`height="%d"`, size))

	var background color.Color
	if cfg.RenderMode == api.RenderBoth {
		background = color.White
	}
	return RasterizeSVG([]byte(doc), width, size, background)
}
