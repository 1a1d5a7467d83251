package svgfont

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/flanksource/svgpreview/api"
)

// Kind is the classification of a parsed document.
type Kind int

const (
	NotPreviewable Kind = iota
	PlainImage
	GlyphFont
)

func (k Kind) String() string {
	switch k {
	case PlainImage:
		return "image"
	case GlyphFont:
		return "font"
	default:
		return "notPreviewable"
	}
}

// Fonts returns every <font> element in document order, whatever its
// namespace prefix.
func Fonts(tree *etree.Document) []*etree.Element {
	return tree.FindElements("//font")
}

// Classify decides how a document is previewed. The presence of a <font>
// element is the only signal for a glyph font. Anything else must be
// declared as SVG (or be XML with a .svg file name) and have an <svg> root.
func Classify(tree *etree.Document, doc api.SourceDocument) Kind {
	if len(Fonts(tree)) > 0 {
		return GlyphFont
	}
	if !IsSVGDeclared(doc.DeclaredType, doc.FileName) {
		return NotPreviewable
	}
	if root := tree.Root(); root == nil || root.Tag != "svg" {
		return NotPreviewable
	}
	return PlainImage
}

// IsSVGDeclared reports whether the host's content type, or failing that
// the file extension of an XML document, says this is an SVG.
func IsSVGDeclared(declaredType, fileName string) bool {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	if strings.Contains(declared, "svg") {
		return true
	}
	switch declared {
	case "", "xml", "text/xml", "application/xml":
		return strings.EqualFold(filepath.Ext(fileName), ".svg")
	}
	return false
}
