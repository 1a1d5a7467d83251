package formatters

import (
	"strings"
	"testing"

	selcss "github.com/ericchiang/css"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func selectAll(t *testing.T, root *html.Node, selector string) []*html.Node {
	t.Helper()
	sel, err := selcss.Parse(selector)
	require.NoError(t, err)
	return sel.Select(root)
}

func selectOne(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()
	nodes := selectAll(t, root, selector)
	require.Len(t, nodes, 1, selector)
	return nodes[0]
}

// svgElements collects the elements of the svg namespace called name. The css
// package only parses HTML element names, so these are found by walking.
func svgElements(root *html.Node, name string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Namespace == "svg" && n.Data == name {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func svgOne(t *testing.T, root *html.Node, name string) *html.Node {
	t.Helper()
	nodes := svgElements(root, name)
	require.Len(t, nodes, 1, name)
	return nodes[0]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// renderCard renders a card and parses it back as an HTML fragment.
func renderCard(t *testing.T, card Card) *html.Node {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, html.Render(&sb, card.Node()))
	return parseHTML(t, sb.String())
}
