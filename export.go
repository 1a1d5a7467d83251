package svgpreview

import (
	"errors"
	"fmt"

	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/svgfont"
)

var ErrNotAFont = errors.New("not an svg font")
var ErrGlyphNotFound = errors.New("glyph not found")

// Fonts parses a font document and returns its renderable glyphs per font.
func Fonts(doc api.SourceDocument) ([]api.FontSection, error) {
	tree, err := svgfont.Parse(doc.Text)
	if err != nil {
		return nil, err
	}
	if svgfont.Classify(tree, doc) != svgfont.GlyphFont {
		return nil, fmt.Errorf("%s: %w", displayName(doc), ErrNotAFont)
	}
	return svgfont.Extract(tree).Sections, nil
}

// FindGlyph returns the first glyph whose name or hex code matches.
func FindGlyph(sections []api.FontSection, nameOrCode string) (api.FontDescriptor, api.GlyphDescriptor, error) {
	for _, section := range sections {
		for _, glyph := range section.Glyphs {
			if glyph.Name == nameOrCode || (glyph.Code != "" && glyph.Code == nameOrCode) {
				return section.Font, glyph, nil
			}
		}
	}
	return api.FontDescriptor{}, api.GlyphDescriptor{}, fmt.Errorf("%w: %s", ErrGlyphNotFound, nameOrCode)
}
