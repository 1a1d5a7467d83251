// Package svgpreview renders SVG images and SVG fonts into self-contained
// HTML preview documents.
package svgpreview

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/formatters"
	"github.com/flanksource/svgpreview/svgfont"
)

// Render turns a source document into preview markup. The only error is a
// document that cannot be parsed; it wraps svgfont.ErrMalformed and comes
// with a notPreviewable result. Everything else is an ordinary result kind.
func Render(doc api.SourceDocument, cfg api.RenderConfiguration) (api.RenderResult, error) {
	cfg = cfg.Normalize()
	notPreviewable := api.RenderResult{Kind: api.ResultNotPreviewable}

	tree, err := svgfont.Parse(doc.Text)
	if err != nil {
		return notPreviewable, fmt.Errorf("%s: %w", displayName(doc), err)
	}

	kind := svgfont.Classify(tree, doc)
	logger.Debugf("%s: classified as %s", displayName(doc), kind)

	result := api.RenderResult{Kind: api.ResultDocument}
	var page formatters.Page
	switch kind {
	case svgfont.PlainImage:
		card, err := formatters.BuildImageCard(tree.Root())
		if err != nil {
			return notPreviewable, err
		}
		page.Image = &card
	case svgfont.GlyphFont:
		x := svgfont.Extract(tree)
		page = FontPage(x, cfg)
		result.Fonts = len(x.Sections)
		result.Glyphs = x.GlyphCount()
	default:
		return notPreviewable, nil
	}

	if page.CardCount() == 0 {
		return api.RenderResult{Kind: api.ResultEmpty, Fonts: result.Fonts}, nil
	}

	result.Markup, err = formatters.NewHTMLFormatter(cfg).Format(page)
	if err != nil {
		return notPreviewable, err
	}
	return result, nil
}

// FontPage builds the cards of every font section. Card identifiers are
// assigned in document order before each section is sorted.
func FontPage(x svgfont.Extraction, cfg api.RenderConfiguration) formatters.Page {
	ids := formatters.IDAllocator{}
	page := formatters.Page{Metadata: x.Metadata}
	for _, section := range x.Sections {
		cards := lo.Map(section.Glyphs, func(glyph api.GlyphDescriptor, _ int) formatters.Card {
			card := formatters.BuildGlyphCard(section.Font, glyph, cfg)
			card.ID = ids.Next(card)
			return card
		})
		formatters.SortCards(cards, cfg.SortKey())
		page.Sections = append(page.Sections, formatters.Section{Font: section.Font, Cards: cards})
	}
	return page
}

func displayName(doc api.SourceDocument) string {
	if doc.FileName != "" {
		return doc.FileName
	}
	return "<buffer>"
}
