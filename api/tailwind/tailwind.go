package tailwind

import (
	"fmt"
	"strings"
)

var prefixes = []string{"bg-", "text-", "border-", "outline-", "fill-", "stroke-"}

// SpecialColors are the Tailwind names that carry no shade.
var SpecialColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"transparent": "transparent",
	"current":     "currentColor",
}

var shades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

// Palette is the subset of the Tailwind palette useful for glyph sheets:
// the greys plus a few accent families.
var Palette = map[string][]string{
	"gray":    {"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"},
	"slate":   {"#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a", "#020617"},
	"neutral": {"#fafafa", "#f5f5f5", "#e5e5e5", "#d4d4d4", "#a3a3a3", "#737373", "#525252", "#404040", "#262626", "#171717", "#0a0a0a"},
	"red":     {"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"},
	"blue":    {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"},
	"green":   {"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"},
	"amber":   {"#fffbeb", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f", "#451a03"},
}

// ParseTailwindColor resolves a Tailwind colour class to a CSS colour.
// Supports formats like:
// - "gray-700", "fill-gray-700", "bg-slate-50"
// - "red" -> defaults to the 500 shade
// - "black", "white", "transparent", "current"
//
// Anything that is not a Tailwind family is returned as-is so hex values
// and CSS keywords pass through.
func ParseTailwindColor(colorClass string) (string, error) {
	colorClass = strings.TrimSpace(colorClass)
	if colorClass == "" {
		return "", fmt.Errorf("empty color class")
	}

	name := colorClass
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}

	if color, ok := SpecialColors[name]; ok {
		return color, nil
	}

	family, shade, hasShade := strings.Cut(name, "-")
	values, ok := Palette[family]
	if !ok {
		return colorClass, nil
	}
	if !hasShade {
		shade = "500"
	}
	for i, s := range shades {
		if s == shade {
			return values[i], nil
		}
	}
	return "", fmt.Errorf("invalid shade '%s' for color '%s'", shade, family)
}

// Color is ParseTailwindColor without the error, returning "" for classes
// that cannot be resolved.
func Color(colorClass string) string {
	color, err := ParseTailwindColor(colorClass)
	if err != nil {
		return ""
	}
	return color
}
