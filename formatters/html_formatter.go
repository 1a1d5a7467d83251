package formatters

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/flanksource/svgpreview/api"
)

// Section is one font description followed by its cards.
type Section struct {
	Font  api.FontDescriptor
	Cards []Card
}

// Page is everything placed in the body of a preview document.
type Page struct {
	Metadata string
	Image    *Card
	Sections []Section
}

// CardCount is the number of cards on the page.
func (p Page) CardCount() int {
	n := 0
	if p.Image != nil {
		n++
	}
	for _, s := range p.Sections {
		n += len(s.Cards)
	}
	return n
}

// HTMLFormatter assembles a Page into a self-contained HTML document
type HTMLFormatter struct {
	IncludeCSS bool
	Title      string
	CSS        string
	BodyClass  string
}

// NewHTMLFormatter creates a formatter for the given configuration
func NewHTMLFormatter(cfg api.RenderConfiguration) *HTMLFormatter {
	cfg = cfg.Normalize()
	return &HTMLFormatter{
		IncludeCSS: !cfg.NoCSS,
		Title:      cfg.Title,
		CSS:        StyleSheet(cfg),
		BodyClass:  "mode-" + string(cfg.RenderMode),
	}
}

// Format serialises the page.
func (f *HTMLFormatter) Format(page Page) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "en")
	root.AppendChild(f.head())
	root.AppendChild(f.body(page))
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

func (f *HTMLFormatter) head() *html.Node {
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))

	title := f.Title
	if title == "" {
		title = api.DefaultTitle
	}
	head.AppendChild(textElement(atom.Title, "", title))

	if f.IncludeCSS && f.CSS != "" {
		style := element(atom.Style)
		style.AppendChild(&html.Node{Type: html.TextNode, Data: f.CSS})
		head.AppendChild(style)
	}
	return head
}

func (f *HTMLFormatter) body(page Page) *html.Node {
	body := element(atom.Body)
	if f.BodyClass != "" {
		body.Attr = append(body.Attr, html.Attribute{Key: "class", Val: f.BodyClass})
	}

	if page.Metadata != "" {
		body.AppendChild(textElement(atom.P, "metadata", page.Metadata))
	}
	if page.Image != nil {
		body.AppendChild(page.Image.Node())
	}
	for _, section := range page.Sections {
		body.AppendChild(fontDescription(section.Font))
		for _, card := range section.Cards {
			body.AppendChild(card.Node())
		}
	}
	return body
}

// fontDescription renders "Font Name = F 1em = U ascent = A descent = D".
func fontDescription(font api.FontDescriptor) *html.Node {
	p := element(atom.P, "class", "font-description")
	if slug := Slug(font.ID); slug != "" {
		p.Attr = append(p.Attr, html.Attribute{Key: "id", Val: "font-" + slug})
	}
	p.AppendChild(textElement(atom.B, "", "Font Name = "+font.Name()))
	p.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf(" 1em = %s ascent = %s descent = %s",
		api.FormatNumber(font.UnitsPerEm), api.FormatNumber(font.Ascent), api.FormatNumber(font.Descent))})
	return p
}
