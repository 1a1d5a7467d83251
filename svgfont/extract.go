package svgfont

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/flanksource/svgpreview/api"
)

// UnnamedGlyph is shown for glyphs without a glyph-name attribute.
const UnnamedGlyph = "unnamed"

// Extraction is everything the card builder needs from a font document.
type Extraction struct {
	// Metadata is the text of the document-level <metadata> element.
	Metadata string
	Sections []api.FontSection
}

// GlyphCount is the number of renderable glyphs across all fonts.
func (x Extraction) GlyphCount() int {
	return lo.SumBy(x.Sections, func(s api.FontSection) int { return len(s.Glyphs) })
}

// Extract builds one section per <font> element in document order, each
// holding the font metrics and its path-bearing <glyph> children.
func Extract(tree *etree.Document) Extraction {
	x := Extraction{Metadata: metadataText(tree)}
	for _, el := range Fonts(tree) {
		font := ReadFont(el)
		glyphs := lo.FilterMap(el.SelectElements("glyph"), func(g *etree.Element, i int) (api.GlyphDescriptor, bool) {
			glyph, ok := ReadGlyph(g, font)
			if !ok {
				logger.Debugf("font %s: skipping glyph %d (%s) without path data", font.Name(), i, glyph.Name)
			}
			glyph.Index = i
			return glyph, ok
		})
		x.Sections = append(x.Sections, api.FontSection{Font: font, Glyphs: glyphs})
	}
	return x
}

// ReadFont reads the metrics of a <font> element. Each metric comes from the
// first <font-face> child when it carries the attribute, else from the
// <font> element itself.
func ReadFont(el *etree.Element) api.FontDescriptor {
	face := el.SelectElement("font-face")
	attr := func(key string) string {
		if face != nil {
			if a := face.SelectAttr(key); a != nil {
				return a.Value
			}
		}
		return el.SelectAttrValue(key, "")
	}

	font := api.FontDescriptor{
		ID:         el.SelectAttrValue("id", ""),
		Family:     strings.TrimSpace(attr("font-family")),
		HorizAdvX:  parseNumber(attr("horiz-adv-x"), 0),
		UnitsPerEm: parseNumber(attr("units-per-em"), 1),
		Ascent:     parseNumber(attr("ascent"), 0),
		Descent:    parseNumber(attr("descent"), 0),
	}
	if font.UnitsPerEm <= 0 {
		font.UnitsPerEm = 1
	}
	return font
}

// ReadGlyph reads a <glyph> element. ok is false when the glyph has no path
// data and must not be rendered.
func ReadGlyph(el *etree.Element, font api.FontDescriptor) (glyph api.GlyphDescriptor, ok bool) {
	glyph = api.GlyphDescriptor{
		Name:     el.SelectAttrValue("glyph-name", ""),
		PathData: strings.TrimSpace(el.SelectAttrValue("d", "")),
		Unicode:  el.SelectAttrValue("unicode", ""),
		Advance:  parseNumber(el.SelectAttrValue("horiz-adv-x", ""), font.UnitsPerEm),
		HasFill:  el.SelectAttr("fill") != nil,
	}
	if strings.TrimSpace(glyph.Name) == "" {
		glyph.Name = UnnamedGlyph
	}
	if glyph.Advance <= 0 {
		glyph.Advance = font.UnitsPerEm
	}
	glyph.Code = CodePoint(glyph.Unicode)
	return glyph, glyph.PathData != ""
}

// CodePoint formats the first character of s as lowercase hex, "" for an
// empty string.
func CodePoint(s string) string {
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strconv.FormatInt(int64(r), 16)
}

func parseNumber(s string, dflt float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return dflt
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		logger.Debugf("ignoring non-numeric value %q", s)
		return dflt
	}
	return f
}

func metadataText(tree *etree.Document) string {
	el := tree.FindElement("//metadata")
	if el == nil {
		logger.Debugf("document has no metadata")
		return ""
	}
	var sb strings.Builder
	collectText(el, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			collectText(t, sb)
		}
	}
}
