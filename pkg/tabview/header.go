package tabview

import "strings"

// Header is the collapsible header slot. Its height is measured from the
// rendered lines at the current width.
type Header struct {
	source   string
	markdown bool
	width    int
	lines    []string
}

// NewHeader returns a header rendered from markdown.
func NewHeader(markdown string) *Header {
	return &Header{source: markdown, markdown: true}
}

// NewTextHeader returns a header of plain text lines.
func NewTextHeader(text string) *Header {
	h := &Header{source: text}
	h.lines = splitLines(text)
	return h
}

// SetWidth re-renders the header for width.
func (h *Header) SetWidth(width int) {
	if h == nil || width == h.width {
		return
	}
	h.width = width
	if h.markdown {
		h.lines = splitLines(RenderMarkdown(h.source, width))
	}
}

// Height returns the header's row count.
func (h *Header) Height() int {
	if h == nil {
		return 0
	}
	return len(h.lines)
}

// Lines returns the rows from skip on; skip is how far the header has
// collapsed.
func (h *Header) Lines(skip int) []string {
	if h == nil || skip >= len(h.lines) {
		return nil
	}
	return h.lines[max(0, skip):]
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
