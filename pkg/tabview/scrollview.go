package tabview

// ScrollView is a page of static text, or of markdown rendered at the page
// width.
type ScrollView struct {
	scrollBody
	text     string
	markdown bool
}

// NewScrollView returns a page showing text as is.
func NewScrollView(text string) *ScrollView {
	return &ScrollView{scrollBody: newScrollBody(), text: text}
}

// NewMarkdownView returns a page rendering md with glamour.
func NewMarkdownView(md string) *ScrollView {
	return &ScrollView{scrollBody: newScrollBody(), text: md, markdown: true}
}

// SetText replaces the content, keeping the scroll offset where it can.
func (v *ScrollView) SetText(text string) {
	v.text = text
	v.layout()
}

// SetSize resizes the page and re-wraps markdown.
func (v *ScrollView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.vp.Width = width
	v.vp.Height = max(0, height-v.reserve)
	v.layout()
}

func (v *ScrollView) layout() {
	text := v.text
	if v.markdown {
		text = RenderMarkdown(text, v.width)
	}
	v.setLines(splitLines(text))
}
