package svgpreview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/formatters"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "preview.yaml", `
renderMode: stroke
strokeWidth: 2.5
sortBy: name
sortOrder: descending
fillColor: red-500
title: Icons
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, api.RenderStroke, cfg.RenderMode)
	assert.Equal(t, 2.5, cfg.StrokeWidth)
	assert.Equal(t, api.SortKey{By: api.SortName, Order: api.Descending}, cfg.SortKey())
	assert.Equal(t, "red-500", cfg.FillColor)
	assert.Equal(t, "Icons", cfg.Title)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "preview.json", `{"renderMode": "both", "sortBy": "codepoint"}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, api.RenderBoth, cfg.RenderMode)
	assert.Equal(t, api.SortCodepoint, cfg.SortBy)
}

func TestLoadConfigNormalizesUnknownValues(t *testing.T) {
	path := writeConfig(t, "preview.yaml", "renderMode: neon\nsortBy: colour\nstrokeWidth: 0\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, api.RenderFill, cfg.RenderMode)
	assert.Equal(t, api.SortNone, cfg.SortBy)
	assert.Equal(t, api.DefaultStrokeWidth, cfg.StrokeWidth)
}

func TestLoadConfigSkipsWrongTypes(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "preview.yaml", "strokeWidth: wide\nrenderMode: stroke\ntheme: dark\n"},
		{"json", "preview.json", `{"strokeWidth": "wide", "renderMode": "stroke", "title": ["a", "b"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, api.DefaultStrokeWidth, cfg.StrokeWidth)
			assert.Equal(t, api.RenderStroke, cfg.RenderMode)
			assert.Equal(t, api.DefaultTitle, cfg.Title)
		})
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "preview.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, api.DefaultConfiguration(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "bad.yaml", "renderMode: [unterminated"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "list.yaml", "- fill\n- stroke\n"))
	assert.Error(t, err)
}

func TestResolveConfigOverlaysOptions(t *testing.T) {
	path := writeConfig(t, "preview.yaml", "renderMode: stroke\nsortBy: name\n")
	cfg, err := ResolveConfig(path, formatters.RenderOptions{RenderMode: "mixed", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, api.RenderMixed, cfg.RenderMode)
	assert.Equal(t, api.SortName, cfg.SortBy)
	assert.Equal(t, api.Descending, cfg.SortOrder)
}

func TestResolveConfigReadsCSSFile(t *testing.T) {
	css := writeConfig(t, "extra.css", ".glyph-card { border: 1px solid red; }")
	cfg, err := ResolveConfig("", formatters.RenderOptions{CSSFile: css})
	require.NoError(t, err)
	assert.Contains(t, cfg.ExtraCSS, "border")

	_, err = ResolveConfig("", formatters.RenderOptions{CSSFile: css + ".missing"})
	assert.Error(t, err)
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := ResolveConfig("", formatters.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, api.DefaultConfiguration(), cfg)
}
