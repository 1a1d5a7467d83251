package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flanksource/svgpreview/api"
)

func TestPaintAttrs(t *testing.T) {
	assert.Equal(t, []string{`fill="currentColor"`, `stroke="none"`},
		Paint{Fill: "currentColor", Stroke: "none", StrokeWidth: 3}.Attrs())
	assert.Equal(t, []string{`fill="none"`, `stroke="currentColor"`, `stroke-width="1.5"`, `vector-effect="non-scaling-stroke"`},
		Paint{Fill: "none", Stroke: "currentColor", StrokeWidth: 1.5}.Attrs())
}

func TestPaintForBothUsesConfiguredColors(t *testing.T) {
	cfg := api.RenderConfiguration{RenderMode: api.RenderBoth, FillColor: "blue-700", StrokeColor: "#111"}.Normalize()
	paint := PaintFor(cfg, testGlyph)
	assert.Equal(t, Paint{Fill: "#1d4ed8", Stroke: "#111", StrokeWidth: 1}, paint)
}

func TestStyleSheet(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		assert.Empty(t, StyleSheet(api.RenderConfiguration{NoCSS: true}.Normalize()))
	})

	t.Run("hover effect", func(t *testing.T) {
		css := StyleSheet(api.DefaultConfiguration())
		assert.Contains(t, css, ".glyph-card:hover")
		assert.NotContains(t, css, "background:")
	})

	t.Run("both mode background", func(t *testing.T) {
		css := StyleSheet(api.RenderConfiguration{RenderMode: api.RenderBoth}.Normalize())
		assert.Contains(t, css, ".glyph-card { background: #f9fafb; color: #000000; }")
	})

	t.Run("extra css", func(t *testing.T) {
		css := StyleSheet(api.RenderConfiguration{ExtraCSS: ".name { color: red; }"}.Normalize())
		assert.Contains(t, css, ".name {\n  color: red;\n}")
	})
}

func TestSanitizeCSS(t *testing.T) {
	assert.Empty(t, SanitizeCSS("   "))

	out := SanitizeCSS(`@import url("https://example.com/x.css");
.code { font-size: 12px; }
@media print { .glyph-card { outline: none; } }
.bad { content: "</style><script>"; }`)

	assert.NotContains(t, out, "@import")
	assert.NotContains(t, out, "</")
	assert.Contains(t, out, ".code {")
	assert.Contains(t, out, "@media print {")
}
