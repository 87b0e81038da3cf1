package tabview

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// Hex equivalents of the ANSI 256 colors in styles.go
const (
	colorPrimary   = "#FF87D7" // ANSI 212
	colorSecondary = "#AF87FF" // ANSI 141
	colorMuted     = "#626262" // ANSI 241
	colorWarning   = "#FFAF00" // ANSI 214
	colorCyan      = "#00D7FF" // ANSI 45
	colorWhite     = "#EEEEEE" // ANSI 255
	colorBg        = "#3A3A3A" // ANSI 237
)

func ptrString(s string) *string { return &s }

func ptrBool(b bool) *bool { return &b }

func uintPtr(u uint) *uint { return &u }

// markdownStyle is a compact glamour style: no document margin, so rendered
// line counts match what the header block reserves.
func markdownStyle() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorWhite)},
			Margin:         uintPtr(0),
		},
		BlockQuote: ansi.StyleBlock{
			Indent:         uintPtr(1),
			IndentToken:    ptrString("│ "),
			StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorMuted), Italic: ptrBool(true)},
		},
		List: ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorWhite), Bold: ptrBool(true)},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           ptrString(colorWhite),
				BackgroundColor: ptrString(colorPrimary),
				Bold:            ptrBool(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorPrimary), Bold: ptrBool(true)},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorSecondary), Bold: ptrBool(true)},
		},
		Emph:   ansi.StylePrimitive{Italic: ptrBool(true)},
		Strong: ansi.StylePrimitive{Bold: ptrBool(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  ptrString(colorMuted),
			Format: "\n────────\n",
		},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Link:        ansi.StylePrimitive{Color: ptrString(colorCyan), Underline: ptrBool(true)},
		LinkText:    ansi.StylePrimitive{Color: ptrString(colorPrimary), Bold: ptrBool(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           ptrString(colorWarning),
				BackgroundColor: ptrString(colorBg),
				Prefix:          " ",
				Suffix:          " ",
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: ptrString(colorWhite)},
				Margin:         uintPtr(0),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptrString("┼"),
			ColumnSeparator: ptrString("│"),
			RowSeparator:    ptrString("─"),
		},
	}
}

// RenderMarkdown renders src wrapped at width. On a renderer error the
// source is returned unchanged.
func RenderMarkdown(src string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
