package compose

import (
	"strings"

	"github.com/codifyhq/termcodify/tui/common"
)

// View renders the ask view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("Codify"))
		b.WriteString("  Ask a Question\n\n")

		b.WriteString("  " + fieldLabel("Title", m.focus == fieldTitle) + "\n")
		b.WriteString("  " + m.title.View() + "\n\n")
		b.WriteString("  " + fieldLabel("Tags", m.focus == fieldTags) + "\n")
		b.WriteString("  " + m.tags.View() + "\n\n")
		b.WriteString("  " + fieldLabel("Excerpt", m.focus == fieldExcerpt) + "\n")
		b.WriteString("  " + m.excerpt.View() + "\n\n")
		b.WriteString("  " + fieldLabel("Description", m.focus == fieldBody) + "\n")
		b.WriteString(m.body.View())
		b.WriteString("\n\n")

		if m.status != "" {
			b.WriteString(common.ErrorStyle.Render("  " + m.status))
			b.WriteString("\n")
		}
		b.WriteString(common.StatusBarStyle.Render("  tab: next field • ctrl+d: post • esc: cancel"))

		return b.String()
	}

	return ""
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return common.SuccessStyle.Render(name)
	}
	return common.MetadataStyle.Render(name)
}
