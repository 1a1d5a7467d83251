package api

import (
	"strings"

	"github.com/flanksource/svgpreview/api/tailwind"
)

// ResolveColor turns a configured colour into a CSS value safe to place in
// an attribute. Unresolvable values fall back to the resolved fallback.
func ResolveColor(value, fallback string) string {
	if color := tailwind.Color(value); color != "" && safeColor(color) {
		return color
	}
	if color := tailwind.Color(fallback); color != "" && safeColor(color) {
		return color
	}
	return "currentColor"
}

func safeColor(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case strings.ContainsRune("#(),.% -", r):
			return false
		}
		return true
	}) < 0
}
