package formatters

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/svgpreview/api"
)

var (
	testFont  = api.FontDescriptor{ID: "icons", Family: "Icons", UnitsPerEm: 1000, Ascent: 850, Descent: -150}
	testGlyph = api.GlyphDescriptor{Name: "arrow", PathData: "M0 0h640v1000z", Unicode: "A", Code: "41", Advance: 640}
)

func configFor(mode api.RenderMode) api.RenderConfiguration {
	return api.RenderConfiguration{RenderMode: mode, StrokeWidth: 2}.Normalize()
}

func TestBuildGlyphCardGeometry(t *testing.T) {
	card := BuildGlyphCard(testFont, testGlyph, configFor(api.RenderFill))
	card.ID = "glyph-arrow"
	doc := renderCard(t, card)

	dl := selectOne(t, doc, "dl.glyph-card")
	assert.Equal(t, "glyph-arrow", attr(dl, "id"))
	assert.Equal(t, "arrow", attr(dl, "data-name"))
	assert.Equal(t, "41", attr(dl, "data-code"))

	svg := svgOne(t, selectOne(t, doc, "dt.glyph a"), "svg")
	assert.Equal(t, "0 0 640 1000", attr(svg, "viewBox"))
	assert.Equal(t, "height:2em", attr(svg, "style"))

	path := svgOne(t, doc, "path")
	assert.Equal(t, "M0 0h640v1000z", attr(path, "d"))
	assert.Equal(t, "translate(0,1000) scale(1, -1)", attr(path, "transform"))

	assert.Equal(t, "41", textOf(selectOne(t, doc, "p.code")))
	assert.Equal(t, "arrow", textOf(selectOne(t, doc, "span.name")))
	assert.Equal(t, "arrow (U+0041 LATIN CAPITAL LETTER A)", textOf(svgOne(t, doc, "title")))
}

func TestBuildGlyphCardRenderModes(t *testing.T) {
	filled := testGlyph
	filled.HasFill = true

	tests := []struct {
		name        string
		mode        api.RenderMode
		glyph       api.GlyphDescriptor
		fill        string
		stroke      string
		strokeWidth string
		background  string
	}{
		{"fill", api.RenderFill, testGlyph, "currentColor", "none", "", ""},
		{"stroke", api.RenderStroke, testGlyph, "none", "currentColor", "2", ""},
		{"mixed without fill", api.RenderMixed, testGlyph, "currentColor", "none", "", ""},
		{"mixed with fill", api.RenderMixed, filled, "none", "currentColor", "2", ""},
		{"both", api.RenderBoth, testGlyph, "#374151", "#000000", "2", "background:#f9fafb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := renderCard(t, BuildGlyphCard(testFont, tt.glyph, configFor(tt.mode)))
			path := svgOne(t, doc, "path")

			assert.Equal(t, tt.fill, attr(path, "fill"))
			assert.Equal(t, tt.stroke, attr(path, "stroke"))
			assert.Equal(t, tt.strokeWidth, attr(path, "stroke-width"))
			assert.Equal(t, tt.strokeWidth != "", hasAttr(path, "vector-effect"))
			assert.Equal(t, tt.background, attr(selectOne(t, doc, "dl"), "style"))
		})
	}
}

func TestRenderModeOnlyChangesPresentation(t *testing.T) {
	geometry := func(mode api.RenderMode) []string {
		doc := renderCard(t, BuildGlyphCard(testFont, testGlyph, configFor(mode)))
		svg := svgOne(t, doc, "svg")
		path := svgOne(t, doc, "path")
		return []string{attr(svg, "viewBox"), attr(path, "d"), attr(path, "transform")}
	}

	fill := geometry(api.RenderFill)
	for _, mode := range []api.RenderMode{api.RenderStroke, api.RenderMixed, api.RenderBoth} {
		assert.Equal(t, fill, geometry(mode), mode)
	}
}

func TestGlyphSVGEscapesPathData(t *testing.T) {
	glyph := testGlyph
	glyph.PathData = `M0 0"/><script>alert(1)</script>`
	doc := renderCard(t, BuildGlyphCard(testFont, glyph, configFor(api.RenderFill)))

	assert.Empty(t, selectAll(t, doc, "script"))
	assert.Equal(t, glyph.PathData, attr(svgOne(t, doc, "path"), "d"))
}

func TestGlyphSVGHasNoPrologue(t *testing.T) {
	markup := GlyphSVG(testFont, testGlyph, Paint{Fill: "currentColor", Stroke: "none"})
	assert.True(t, strings.HasPrefix(markup, "<svg"), markup)
}

func TestGlyphTitle(t *testing.T) {
	assert.Equal(t, "plain", GlyphTitle(api.GlyphDescriptor{Name: "plain"}))
	assert.Equal(t, "home (U+E001)", GlyphTitle(api.GlyphDescriptor{Name: "home", Unicode: "\ue001"}))
}

func TestBuildImageCard(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><circle cx="5" cy="5" r="4" fill="red"/></svg>`))

	card, err := BuildImageCard(doc.Root())
	require.NoError(t, err)
	assert.True(t, card.Image)

	page := renderCard(t, card)
	svg := svgOne(t, selectOne(t, page, "dl.image-card dt.glyph a"), "svg")
	circle := svgOne(t, svg, "circle")
	assert.Equal(t, "4", attr(circle, "r"))
	assert.Equal(t, "red", attr(circle, "fill"))
	assert.Empty(t, selectAll(t, page, "p.code"))
	assert.Empty(t, selectAll(t, page, "span.name"))
}

func TestIDAllocator(t *testing.T) {
	ids := IDAllocator{}
	assert.Equal(t, "glyph-arrow-up", ids.Next(Card{Name: "Arrow Up"}))
	assert.Equal(t, "glyph-arrow-up-2", ids.Next(Card{Name: "arrow.up"}))
	assert.Equal(t, "glyph-arrow-up-3", ids.Next(Card{Name: "arrow up"}))
	assert.Equal(t, "glyph-ue001", ids.Next(Card{Name: "★", Code: "e001"}))
	assert.Equal(t, "glyph-card", ids.Next(Card{}))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "my_icon-2", Slug("  My_Icon 2 "))
	assert.Equal(t, "", Slug("★"))
}
