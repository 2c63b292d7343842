// Package render converts markdown course descriptions to HTML for the
// dashboard detail views.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// md is a goldmark instance configured for safe HTML output. Raw HTML in the
// description is escaped (WithUnsafe is NOT set), preventing XSS.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// DescriptionHTML renders a markdown description to HTML.
// PRE: source is untrusted markdown
// POST: Returns HTML with raw input HTML escaped
func DescriptionHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return buf.String(), nil
}
