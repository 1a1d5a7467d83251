package api

import (
	"math"
	"strings"
)

// RenderMode selects how glyph outlines are painted.
type RenderMode string

const (
	RenderFill   RenderMode = "fill"
	RenderStroke RenderMode = "stroke"
	RenderMixed  RenderMode = "mixed"
	RenderBoth   RenderMode = "both"
)

// ParseRenderMode is case-insensitive and falls back to RenderFill.
func ParseRenderMode(s string) RenderMode {
	switch RenderMode(strings.ToLower(strings.TrimSpace(s))) {
	case RenderStroke:
		return RenderStroke
	case RenderMixed:
		return RenderMixed
	case RenderBoth:
		return RenderBoth
	default:
		return RenderFill
	}
}

type SortBy string

const (
	SortNone      SortBy = "none"
	SortName      SortBy = "name"
	SortCodepoint SortBy = "codepoint"
)

func ParseSortBy(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortName
	case "codepoint", "code", "unicode":
		return SortCodepoint
	default:
		return SortNone
	}
}

type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "descending", "desc":
		return Descending
	default:
		return Ascending
	}
}

// SortKey picks the glyph field cards are ordered by and the direction.
type SortKey struct {
	By    SortBy
	Order SortOrder
}

func (k SortKey) String() string {
	if k.By == SortNone || k.By == "" {
		return string(SortNone)
	}
	return string(k.By) + " " + string(k.Order)
}

const (
	DefaultStrokeWidth = 1.0
	DefaultTitle       = "SVG font preview"
	DefaultFillColor   = "gray-700"
	DefaultStrokeColor = "black"
	DefaultBackground  = "gray-50"
)

// RenderConfiguration is owned by the caller and passed into every render.
// Every field defaults on its own and unknown values never cause an error.
type RenderConfiguration struct {
	RenderMode  RenderMode `json:"renderMode,omitempty" yaml:"renderMode,omitempty"`
	StrokeWidth float64    `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	SortBy      SortBy     `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	SortOrder   SortOrder  `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`

	// Colours used by the "both" render mode. Tailwind names, hex and CSS
	// keywords are accepted.
	FillColor   string `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	StrokeColor string `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
	Background  string `json:"background,omitempty" yaml:"background,omitempty"`

	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	NoCSS    bool   `json:"noCSS,omitempty" yaml:"noCSS,omitempty"`
	ExtraCSS string `json:"extraCSS,omitempty" yaml:"extraCSS,omitempty"`
}

// DefaultConfiguration returns a configuration with every field set to its default.
func DefaultConfiguration() RenderConfiguration {
	return RenderConfiguration{}.Normalize()
}

// Normalize returns a copy with unrecognised or missing values replaced by defaults.
func (c RenderConfiguration) Normalize() RenderConfiguration {
	c.RenderMode = ParseRenderMode(string(c.RenderMode))
	c.SortBy = ParseSortBy(string(c.SortBy))
	c.SortOrder = ParseSortOrder(string(c.SortOrder))
	if c.StrokeWidth <= 0 || math.IsNaN(c.StrokeWidth) || math.IsInf(c.StrokeWidth, 0) {
		c.StrokeWidth = DefaultStrokeWidth
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = DefaultTitle
	}
	if c.FillColor == "" {
		c.FillColor = DefaultFillColor
	}
	if c.StrokeColor == "" {
		c.StrokeColor = DefaultStrokeColor
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	return c
}

func (c RenderConfiguration) SortKey() SortKey {
	return SortKey{By: ParseSortBy(string(c.SortBy)), Order: ParseSortOrder(string(c.SortOrder))}
}
