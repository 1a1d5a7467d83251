package formatters

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/flanksource/svgpreview/api"
)

// RenderOptions are the command line overrides of a RenderConfiguration.
// Zero values mean "not set".
type RenderOptions struct {
	RenderMode  string
	StrokeWidth float64
	SortBy      string
	SortOrder   string
	FillColor   string
	StrokeColor string
	Background  string
	Title       string
	NoCSS       bool
	CSSFile     string
	Output      string
	NoColor     bool
}

// BindPFlags adds render flags to the provided pflag set (for cobra)
func BindPFlags(flags *pflag.FlagSet, options *RenderOptions) {
	flags.StringVar(&options.RenderMode, "mode", "", "Render mode: fill, stroke, mixed, both (default fill)")
	flags.Float64Var(&options.StrokeWidth, "stroke-width", 0, "Stroke width in pixels for stroke, mixed and both modes (default 1)")
	flags.StringVar(&options.SortBy, "sort", "", "Sort glyphs by: none, name, codepoint (default none)")
	flags.StringVar(&options.SortOrder, "order", "", "Sort order: ascending, descending (default ascending)")
	flags.StringVar(&options.FillColor, "fill-color", "", "Fill colour for the both mode (tailwind name, hex or css colour)")
	flags.StringVar(&options.StrokeColor, "stroke-color", "", "Stroke colour for the both mode")
	flags.StringVar(&options.Background, "background", "", "Card background for the both mode")
	flags.StringVar(&options.Title, "title", "", "Title of the preview document")
	flags.BoolVar(&options.NoCSS, "no-css", false, "Omit the inline style block")
	flags.StringVar(&options.CSSFile, "css", "", "File with extra CSS appended to the style block")
	flags.StringVarP(&options.Output, "output", "o", "", "Output directory (uses stdout if not specified)")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored output")
}

// Apply overlays the options that are set onto cfg.
func (o RenderOptions) Apply(cfg api.RenderConfiguration) (api.RenderConfiguration, error) {
	if o.RenderMode != "" {
		cfg.RenderMode = api.RenderMode(o.RenderMode)
	}
	if o.StrokeWidth > 0 {
		cfg.StrokeWidth = o.StrokeWidth
	}
	if o.SortBy != "" {
		cfg.SortBy = api.SortBy(o.SortBy)
	}
	if o.SortOrder != "" {
		cfg.SortOrder = api.SortOrder(o.SortOrder)
	}
	if o.FillColor != "" {
		cfg.FillColor = o.FillColor
	}
	if o.StrokeColor != "" {
		cfg.StrokeColor = o.StrokeColor
	}
	if o.Background != "" {
		cfg.Background = o.Background
	}
	if o.Title != "" {
		cfg.Title = o.Title
	}
	if o.NoCSS {
		cfg.NoCSS = true
	}
	if o.CSSFile != "" {
		extra, err := os.ReadFile(o.CSSFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read css file: %w", err)
		}
		cfg.ExtraCSS = string(extra)
	}
	return cfg, nil
}
