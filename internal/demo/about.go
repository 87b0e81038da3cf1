package demo

import "github.com/marcus/tabsync/pkg/tabview/keymap"

const aboutIntro = `# About

Every tab shares one collapsible header. Scroll a page and the header folds
away; switch tabs and the next page is already scrolled to match, so the
header never jumps.

Pages are built the first time their tab is selected. The live tab only
polls while it is the tab you are looking at.
`

// aboutMarkdown documents the current key bindings, overrides included.
func aboutMarkdown(km *keymap.Registry) string {
	return aboutIntro + "\n" + km.MarkdownReference()
}
