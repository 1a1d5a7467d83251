package formatters

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"
	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/runenames"

	"github.com/flanksource/svgpreview/api"
)

// svgo always writes an XML prologue; cards are inlined into HTML so it is dropped.
var svgoPrologue = []byte("<?xml version=\"1.0\"?>\n<!-- Generated by SVGo -->\n")

// GlyphHeight is the fixed display height of a glyph's vector region.
const GlyphHeight = "2em"

// Card is one visual unit of the preview: a glyph with its labels, or the
// whole image for plain SVGs.
type Card struct {
	ID    string
	Name  string
	Code  string
	Index int
	// SVG is the vector region, inlined verbatim.
	SVG        string
	Image      bool
	Background string
}

// ViewBox is the glyph's drawing area in font units.
func ViewBox(font api.FontDescriptor, glyph api.GlyphDescriptor) string {
	const scale = 1
	return fmt.Sprintf("0 0 %s %s", api.FormatNumber(glyph.Advance*scale), api.FormatNumber(font.UnitsPerEm*scale))
}

// FlipTransform maps font design space (Y up) to SVG space (Y down).
func FlipTransform(font api.FontDescriptor) string {
	return fmt.Sprintf("translate(0,%s) scale(1, -1)", api.FormatNumber(font.UnitsPerEm))
}

// GlyphSVG writes the standalone vector region of a glyph.
func GlyphSVG(font api.FontDescriptor, glyph api.GlyphDescriptor, paint Paint, attrs ...string) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startraw(append([]string{fmt.Sprintf(`viewBox="%s"`, ViewBox(font, glyph))}, attrs...)...)
	canvas.Title(GlyphTitle(glyph))
	canvas.Path(html.EscapeString(glyph.PathData),
		append([]string{fmt.Sprintf(`transform="%s"`, FlipTransform(font))}, paint.Attrs()...)...)
	canvas.End()
	return string(bytes.TrimPrefix(buf.Bytes(), svgoPrologue))
}

// GlyphTitle is the tooltip of a glyph: its name plus the Unicode name of
// its character when one is known.
func GlyphTitle(glyph api.GlyphDescriptor) string {
	if glyph.Unicode == "" {
		return glyph.Name
	}
	r, _ := utf8.DecodeRuneInString(glyph.Unicode)
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		return fmt.Sprintf("%s (U+%04X)", glyph.Name, r)
	}
	return fmt.Sprintf("%s (U+%04X %s)", glyph.Name, r, name)
}

// BuildGlyphCard builds the card of one glyph under the configured render mode.
func BuildGlyphCard(font api.FontDescriptor, glyph api.GlyphDescriptor, cfg api.RenderConfiguration) Card {
	card := Card{
		Name:  glyph.Name,
		Code:  glyph.Code,
		Index: glyph.Index,
		SVG:   GlyphSVG(font, glyph, PaintFor(cfg, glyph), `class="glyph-outline"`, fmt.Sprintf(`style="height:%s"`, GlyphHeight)),
	}
	if cfg.RenderMode == api.RenderBoth {
		card.Background = api.ResolveColor(cfg.Background, api.DefaultBackground)
	}
	return card
}

// BuildImageCard wraps the parsed root element, unmodified, in a card.
func BuildImageCard(root *etree.Element) (Card, error) {
	doc := etree.NewDocumentWithRoot(root.Copy())
	markup, err := doc.WriteToString()
	if err != nil {
		return Card{}, fmt.Errorf("failed to serialize image: %w", err)
	}
	return Card{ID: "image", Name: root.SelectAttrValue("id", ""), SVG: markup, Image: true}, nil
}

// Node renders the card as an HTML element.
func (c Card) Node() *html.Node {
	if c.Image {
		dl := element(atom.Dl, "class", "image-card", "id", c.ID)
		dl.AppendChild(c.glyphNode())
		return dl
	}

	dl := element(atom.Dl, "class", "glyph-card", "id", c.ID, "data-name", c.Name, "data-code", c.Code)
	if c.Background != "" {
		dl.Attr = append(dl.Attr, html.Attribute{Key: "style", Val: "background:" + c.Background})
	}
	dl.AppendChild(textElement(atom.P, "code", c.Code))
	dl.AppendChild(c.glyphNode())
	dl.AppendChild(textElement(atom.Span, "name", c.Name))
	return dl
}

func (c Card) glyphNode() *html.Node {
	dt := element(atom.Dt, "class", "glyph")
	a := element(atom.A, "href", "#"+c.ID)
	a.AppendChild(&html.Node{Type: html.RawNode, Data: c.SVG})
	dt.AppendChild(a)
	return dt
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, class, text string) *html.Node {
	n := element(a)
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

var nonSlug = regexp.MustCompile(`[^a-z0-9_-]+`)

// Slug turns a glyph name into an identifier fragment.
func Slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// IDAllocator hands out unique card identifiers in document order.
type IDAllocator map[string]bool

func (ids IDAllocator) Next(card Card) string {
	base := Slug(card.Name)
	if base == "" && card.Code != "" {
		base = "u" + card.Code
	}
	if base == "" {
		base = "card"
	}
	base = "glyph-" + base

	id := base
	for n := 2; ids[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	ids[id] = true
	return id
}
