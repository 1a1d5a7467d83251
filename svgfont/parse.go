// Package svgfont reads SVG documents and turns <font>/<glyph> elements
// into typed descriptors. All access to the XML tree happens here.
package svgfont

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrMalformed is wrapped by every error returned from Parse.
var ErrMalformed = errors.New("malformed svg document")

// Parse reads text into an XML tree. Documents declaring a non UTF-8
// encoding are transcoded. Empty input and input without a root element
// are malformed.
func Parse(text string) (*etree.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	doc.ReadSettings.ValidateInput = true
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return doc, nil
}
