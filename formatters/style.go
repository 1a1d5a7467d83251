package formatters

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/flanksource/commons/logger"

	"github.com/flanksource/svgpreview/api"
)

// Paint holds the presentation attributes of a glyph outline. Render modes
// only ever change these, never the path, transform or view box.
type Paint struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// PaintFor picks the paint of one glyph under the configured render mode.
func PaintFor(cfg api.RenderConfiguration, glyph api.GlyphDescriptor) Paint {
	filled := Paint{Fill: "currentColor", Stroke: "none"}
	stroked := Paint{Fill: "none", Stroke: "currentColor", StrokeWidth: cfg.StrokeWidth}

	switch cfg.RenderMode {
	case api.RenderStroke:
		return stroked
	case api.RenderMixed:
		if glyph.HasFill {
			return stroked
		}
		return filled
	case api.RenderBoth:
		return Paint{
			Fill:        api.ResolveColor(cfg.FillColor, api.DefaultFillColor),
			Stroke:      api.ResolveColor(cfg.StrokeColor, api.DefaultStrokeColor),
			StrokeWidth: cfg.StrokeWidth,
		}
	default:
		return filled
	}
}

// Attrs renders the paint as raw name="value" attributes. Stroked outlines
// keep their width in screen pixels whatever the view box scale.
func (p Paint) Attrs() []string {
	attrs := []string{
		fmt.Sprintf(`fill="%s"`, p.Fill),
		fmt.Sprintf(`stroke="%s"`, p.Stroke),
	}
	if p.Stroke != "none" && p.StrokeWidth > 0 {
		attrs = append(attrs,
			fmt.Sprintf(`stroke-width="%s"`, api.FormatNumber(p.StrokeWidth)),
			`vector-effect="non-scaling-stroke"`)
	}
	return attrs
}

const baseCSS = `body { font-family: sans-serif; margin: 1em; }
.metadata { white-space: pre-wrap; font-size: 12px; }
.font-description { clear: both; padding-top: .5em; }
.glyph-card { margin: 0 0 .5em .5em; float: left; outline: currentcolor dotted 1px; width: 10em; min-height: 10em; padding: .5em; }
.glyph-card .glyph { margin: 0; }
.glyph-card a { text-decoration: none; color: inherit; display: block; margin: auto; width: 4em; height: 4em; padding: .5em; }
.glyph-card svg { transition: transform .1s ease-in; }
.glyph-card .code { font-size: 10px; overflow: hidden; width: 100%; }
.glyph-card .name { margin: 0; font-size: 15px; overflow: hidden; width: 100%; display: block; }
.glyph-card:hover, .glyph-card:target { outline-style: solid; }
.glyph-card:hover svg { transform: scale(1.25); }
.image-card { outline: dotted 1px; width: 8em; height: 8em; padding: .5em; }
.image-card .glyph { margin: 0; }
.image-card a { text-decoration: none; color: inherit; display: block; margin: 0 auto; width: 6em; height: 6em; padding: .5em; }
.image-card svg { width: 100%; height: 100%; }
`

// StyleSheet returns the inline style block, or "" when styles are disabled.
func StyleSheet(cfg api.RenderConfiguration) string {
	if cfg.NoCSS {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(baseCSS)
	if cfg.RenderMode == api.RenderBoth {
		fmt.Fprintf(&sb, ".glyph-card { background: %s; color: %s; }\n",
			api.ResolveColor(cfg.Background, api.DefaultBackground),
			api.ResolveColor(cfg.StrokeColor, api.DefaultStrokeColor))
	}
	if extra := SanitizeCSS(cfg.ExtraCSS); extra != "" {
		sb.WriteString(extra)
		sb.WriteString("\n")
	}
	return sb.String()
}

var blockedAtRules = map[string]bool{"@import": true, "@charset": true, "@namespace": true}

// SanitizeCSS parses user supplied CSS and re-serialises the rules that are
// safe to inline: no imports and nothing that could close the style element.
func SanitizeCSS(extra string) string {
	if strings.TrimSpace(extra) == "" {
		return ""
	}
	sheet, err := parser.Parse(extra)
	if err != nil {
		logger.Warnf("ignoring extra css: %v", err)
		return ""
	}

	kept := css.NewStylesheet()
	for _, rule := range sheet.Rules {
		if rule.Kind == css.AtRule && blockedAtRules[strings.ToLower(rule.Name)] {
			logger.Debugf("dropping %s rule from extra css", rule.Name)
			continue
		}
		if strings.Contains(rule.String(), "</") {
			logger.Debugf("dropping css rule containing a closing tag")
			continue
		}
		kept.Rules = append(kept.Rules, rule)
	}
	return kept.String()
}
