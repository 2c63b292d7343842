package render

import (
	"strings"
	"testing"
)

// TestDescriptionHTML_RendersMarkdown verifies basic markdown conversion.
func TestDescriptionHTML_RendersMarkdown(t *testing.T) {
	out, err := DescriptionHTML("Learn **Go** from scratch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<strong>Go</strong>") {
		t.Fatalf("output=%q want bold Go", out)
	}
}

// TestDescriptionHTML_EscapesRawHTML verifies untrusted HTML is escaped.
func TestDescriptionHTML_EscapesRawHTML(t *testing.T) {
	out, err := DescriptionHTML(`<script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("output=%q must not contain raw script tags", out)
	}
}
