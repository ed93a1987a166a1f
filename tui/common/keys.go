package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit           key.Binding
	Refresh        key.Binding
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding // enter — open question detail
	Back           key.Binding
	Search         key.Binding // / — filter by title/excerpt
	Sort           key.Binding // s — cycle sort order
	Bookmark       key.Binding // b — toggle bookmark
	BookmarkFilter key.Binding // B — show bookmarked only
	Upvote         key.Binding
	Downvote       key.Binding
	AskEditor      key.Binding // p — ask via $EDITOR
	AskInline      key.Binding // P — ask via inline form
	Reply          key.Binding // c — reply to question or expand inline reply
	Edit           key.Binding // e — edit own reply
	Delete         key.Binding // x — delete own reply
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		BookmarkFilter: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "bookmarked only"),
		),
		Upvote: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upvote"),
		),
		Downvote: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "downvote"),
		),
		AskEditor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "ask ($EDITOR)"),
		),
		AskInline: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "ask (inline)"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
	}
}
