package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// TerminalWidth returns the width of the terminal on fd, then $COLUMNS,
// then fallback.
func TerminalWidth(fd uintptr, fallback int) int {
	if fallback <= 0 {
		fallback = defaultMarkdownWidth
	}
	if width, _, err := term.GetSize(int(fd)); err == nil && width > 0 {
		return width
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return fallback
}

// RenderMarkdownWithWidth renders text with glamour wrapped at width.
func RenderMarkdownWithWidth(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	width = max(width, minMarkdownWidth)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(rendered, "\n"), nil
}

// PrintMarkdown writes text to w. Terminals get it rendered at their
// width; anything else gets the markdown source so pipes stay greppable.
func PrintMarkdown(w *os.File, text string, plain bool) error {
	if plain || !term.IsTerminal(int(w.Fd())) {
		return writeMarkdownSource(w, text)
	}
	out, err := RenderMarkdownWithWidth(text, TerminalWidth(w.Fd(), defaultMarkdownWidth))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func writeMarkdownSource(w io.Writer, text string) error {
	_, err := io.WriteString(w, strings.TrimRight(text, "\n")+"\n")
	return err
}
