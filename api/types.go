package api

import (
	"fmt"
	"strconv"
)

// SourceDocument is the raw text of a file handed to the renderer, together
// with the content type the host declared for it and its file name.
type SourceDocument struct {
	Text         string `json:"text" yaml:"text"`
	DeclaredType string `json:"declaredType,omitempty" yaml:"declaredType,omitempty"`
	FileName     string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
}

// ResultKind tells the host what a render call produced.
type ResultKind string

const (
	ResultDocument       ResultKind = "document"
	ResultNotPreviewable ResultKind = "notPreviewable"
	ResultEmpty          ResultKind = "empty"
)

// RenderResult is the outcome of one render call. Markup is only set when
// Kind is ResultDocument.
type RenderResult struct {
	Kind   ResultKind `json:"kind" yaml:"kind"`
	Markup string     `json:"markup,omitempty" yaml:"markup,omitempty"`

	// Fonts and Glyphs summarise what was rendered for font documents.
	Fonts  int `json:"fonts,omitempty" yaml:"fonts,omitempty"`
	Glyphs int `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
}

func (r RenderResult) IsDocument() bool {
	return r.Kind == ResultDocument
}

func (r RenderResult) String() string {
	switch r.Kind {
	case ResultDocument:
		if r.Fonts > 0 {
			return fmt.Sprintf("document (%d fonts, %d glyphs, %d bytes)", r.Fonts, r.Glyphs, len(r.Markup))
		}
		return fmt.Sprintf("document (image, %d bytes)", len(r.Markup))
	case "":
		return "unknown"
	default:
		return string(r.Kind)
	}
}

// FontDescriptor holds the metrics of one <font> element.
type FontDescriptor struct {
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	Family     string  `json:"family,omitempty" yaml:"family,omitempty"`
	HorizAdvX  float64 `json:"horizAdvX" yaml:"horizAdvX"`
	UnitsPerEm float64 `json:"unitsPerEm" yaml:"unitsPerEm"`
	Ascent     float64 `json:"ascent" yaml:"ascent"`
	Descent    float64 `json:"descent" yaml:"descent"`
}

// Name is the label shown in the font description block.
func (f FontDescriptor) Name() string {
	if f.Family != "" {
		return f.Family
	}
	return f.ID
}

func (f FontDescriptor) String() string {
	return fmt.Sprintf("Font Name = %s 1em = %s ascent = %s descent = %s",
		f.Name(), FormatNumber(f.UnitsPerEm), FormatNumber(f.Ascent), FormatNumber(f.Descent))
}

// GlyphDescriptor holds everything needed to draw one <glyph> element.
// Only glyphs with non-empty path data are ever materialised.
type GlyphDescriptor struct {
	Name     string  `json:"name" yaml:"name"`
	PathData string  `json:"d" yaml:"d"`
	Unicode  string  `json:"unicode,omitempty" yaml:"unicode,omitempty"`
	Code     string  `json:"code,omitempty" yaml:"code,omitempty"`
	Advance  float64 `json:"advance" yaml:"advance"`
	HasFill  bool    `json:"hasFill,omitempty" yaml:"hasFill,omitempty"`
	// Index is the position of the glyph within its font, in document order.
	Index int `json:"index" yaml:"index"`
}

// FontSection is one font with its renderable glyphs in document order.
type FontSection struct {
	Font   FontDescriptor    `json:"font" yaml:"font"`
	Glyphs []GlyphDescriptor `json:"glyphs" yaml:"glyphs"`
}

// FormatNumber prints a float without trailing zeros, "1000" rather than "1000.000000".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
