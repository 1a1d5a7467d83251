// Package pdf lays out glyphs of SVG fonts on printable A4 sheets.
package pdf

import (
	"errors"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimages "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/formatters"
)

var ErrNoGlyphs = errors.New("no glyphs to export")

// maroto rows are split into 12 grid columns
const gridSize = 12

type SheetOptions struct {
	// Columns per row, a divisor of 12.
	Columns int
	// GlyphSize is the raster height of each glyph in pixels.
	GlyphSize int
	// CellHeight is the height of a glyph cell in mm.
	CellHeight float64
	// Debug outlines every row and column of the grid.
	Debug bool
}

func DefaultSheetOptions() SheetOptions {
	return SheetOptions{Columns: 6, GlyphSize: 128, CellHeight: 24}
}

// Sheet wraps Maroto for glyph sheets
type Sheet struct {
	maroto core.Maroto
	opts   SheetOptions
	cfg    api.RenderConfiguration
	glyphs int
}

func NewSheet(cfg api.RenderConfiguration, opts SheetOptions) (*Sheet, error) {
	defaults := DefaultSheetOptions()
	if opts.Columns == 0 {
		opts.Columns = defaults.Columns
	}
	if opts.Columns < 0 || gridSize%opts.Columns != 0 {
		return nil, fmt.Errorf("invalid column count %d, must divide %d", opts.Columns, gridSize)
	}
	if opts.GlyphSize <= 0 {
		opts.GlyphSize = defaults.GlyphSize
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = defaults.CellHeight
	}

	mcfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		WithBottomMargin(10).
		WithDebug(opts.Debug).
		Build()

	s := &Sheet{
		maroto: maroto.New(mcfg),
		opts:   opts,
		cfg:    cfg.Normalize(),
	}
	s.maroto.AddRow(10, col.New(gridSize).Add(
		text.New(s.cfg.Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left}),
	))
	return s, nil
}

// AddSection adds a font heading followed by a grid of its glyphs.
func (s *Sheet) AddSection(section api.FontSection) error {
	s.maroto.AddRow(8, col.New(gridSize).Add(
		text.New(section.Font.String(), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left, Top: 2}),
	))

	for start := 0; start < len(section.Glyphs); start += s.opts.Columns {
		end := min(start+s.opts.Columns, len(section.Glyphs))
		images, labels, err := s.cells(section.Font, section.Glyphs[start:end])
		if err != nil {
			return err
		}
		s.maroto.AddRows(
			row.New(s.opts.CellHeight).Add(images...),
			row.New(6).Add(labels...),
		)
	}
	s.glyphs += len(section.Glyphs)
	return nil
}

func (s *Sheet) cells(font api.FontDescriptor, glyphs []api.GlyphDescriptor) ([]core.Col, []core.Col, error) {
	size := gridSize / s.opts.Columns
	images := make([]core.Col, 0, s.opts.Columns)
	labels := make([]core.Col, 0, s.opts.Columns)

	for _, glyph := range glyphs {
		png, err := formatters.GlyphPNG(font, glyph, s.cfg, s.opts.GlyphSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to rasterize glyph %s: %w", glyph.Name, err)
		}
		images = append(images, col.New(size).Add(
			marotoimages.NewFromBytes(png, extension.Png, props.Rect{Center: true, Percent: 80}),
		))
		labels = append(labels, col.New(size).Add(
			text.New(label(glyph), props.Text{Size: 7, Align: align.Center}),
		))
	}
	for len(images) < s.opts.Columns {
		images = append(images, col.New(size))
		labels = append(labels, col.New(size))
	}
	return images, labels, nil
}

func label(glyph api.GlyphDescriptor) string {
	if glyph.Code == "" {
		return glyph.Name
	}
	return glyph.Name + " " + glyph.Code
}

// Output renders the sheet to PDF bytes.
func (s *Sheet) Output() ([]byte, error) {
	if s.glyphs == 0 {
		return nil, ErrNoGlyphs
	}
	document, err := s.maroto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

// GlyphSheet renders every section onto one PDF.
func GlyphSheet(sections []api.FontSection, cfg api.RenderConfiguration, opts SheetOptions) ([]byte, error) {
	sheet, err := NewSheet(cfg, opts)
	if err != nil {
		return nil, err
	}
	for _, section := range sections {
		if len(section.Glyphs) == 0 {
			continue
		}
		if err := sheet.AddSection(section); err != nil {
			return nil, err
		}
	}
	return sheet.Output()
}
