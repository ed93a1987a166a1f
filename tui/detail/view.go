package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/tui/common"
)

// View renders the detail view: loading skeleton, error, not-found, or the
// loaded question with its reply thread.
func (m Model) View() string {
	return common.ClampLinesToWidth(m.viewContent(), m.width)
}

func (m Model) viewContent() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("Codify")
	tagline := common.TaglineStyle.Render("<Q&A forum, in your terminal>")
	b.WriteString(title + tagline + "\n\n")

	switch {
	case m.loading && !m.found:
		b.WriteString(fmt.Sprintf("  %s Loading question...\n", m.spinner.View()))
		return b.String()

	case m.loadErr != nil && !m.found:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.loadErr)))
		b.WriteString("\n\n  Press r to retry, esc to go back.\n")
		return b.String()

	case !m.found:
		b.WriteString(common.ErrorStyle.Render("  Question not found."))
		b.WriteString("\n\n  It may have been removed. Press esc to go back.\n")
		return b.String()
	}

	now := time.Now()
	b.WriteString(m.renderQuestionCard(now))

	if m.replyOpen {
		b.WriteString("\n" + m.renderComposer("Reply to question", m.replyEditor))
	}

	if len(m.flat) > 0 {
		b.WriteString("\n\n  " + lipgloss.NewStyle().Bold(true).Underline(true).Render("Replies") + "\n")
		for i, fr := range m.flat {
			b.WriteString("\n" + m.renderReply(fr, i+1 == m.cursor, now))
		}
	} else {
		b.WriteString("\n\n  " + common.MetadataStyle.Render("No replies yet. Press c to write one."))
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("\n" + common.ErrorStyle.Render("  "+m.notice))
	}
	b.WriteString("\n" + m.helpView())

	return b.String()
}

func (m Model) renderQuestionCard(now time.Time) string {
	q := m.question

	cardStyle := common.UnselectedStyle.MarginLeft(2).Width(74)
	if m.cursor == 0 {
		cardStyle = common.SelectedStyle.MarginLeft(2).Width(74)
	}

	var card strings.Builder
	titleLine := common.TitleStyle.Render(q.Title)
	if q.Bookmarked {
		titleLine += common.BookmarkStyle.Render(" ★")
	}
	card.WriteString(titleLine + "\n")

	byline := common.AuthorStyle.Render(q.Author.Name)
	if ago := common.RelativeTime(q.UpdatedAt, now); ago != "" {
		byline += "  " + common.TimestampStyle.Render(ago)
	}
	card.WriteString(byline + "\n")

	if len(q.Tags) > 0 {
		parts := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			parts = append(parts, common.TagStyle.Render(t))
		}
		card.WriteString(strings.Join(parts, " ") + "\n")
	}
	card.WriteString("\n")

	body := common.StripMarkup(q.Description)
	if body == "" {
		body = q.Excerpt
	}
	card.WriteString(common.ContentStyle.Width(66).Render(body) + "\n\n")

	meta := fmt.Sprintf("▲ %d  ▼ %d  ↩ %d", q.Upvotes, q.Downvotes, q.ReplyCount())
	card.WriteString(common.MetadataStyle.Render(meta))

	return cardStyle.Render(card.String())
}

func (m Model) renderReply(fr forum.FlatReply, selected bool, now time.Time) string {
	indent := strings.Repeat("  ", fr.Depth)
	prefix := "  " + indent

	editing := m.focus == focusEdit && m.activeReply == fr.ID

	author := common.AuthorStyle.Render(fr.Author.Name)
	if m.isOwn(fr.Reply) {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	header := prefix + author
	if fr.ReplyToAuthor != "" {
		header += common.MetadataStyle.Render(" ↩ " + fr.ReplyToAuthor)
	}
	if ago := common.RelativeTime(fr.UpdatedAt, now); ago != "" {
		header += "  " + common.TimestampStyle.Render(ago)
	}

	var b strings.Builder
	b.WriteString(header + "\n")

	if editing {
		b.WriteString(m.renderComposer("Editing reply", m.editDraft))
	} else {
		indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
		for _, line := range strings.Split(fr.Text, "\n") {
			b.WriteString(prefix + indicator + common.ContentStyle.Render(line) + "\n")
		}
		meta := fmt.Sprintf("▲ %d  ▼ %d", fr.Upvotes, fr.Downvotes)
		b.WriteString(prefix + common.MetadataStyle.Render(meta))
	}

	content := strings.TrimSuffix(b.String(), "\n")
	if selected && !editing {
		content = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Render(content)
	}

	if m.confirmDelete == fr.ID {
		content += "\n" + common.ConfirmStyle.Render(prefix+"Delete this reply? (y/n)")
	}

	if ta, open := m.expanded[fr.ID]; open && !editing {
		content += "\n" + m.renderComposer("Reply to "+fr.Author.Name, ta)
	}

	return content + "\n"
}

func (m Model) renderComposer(label string, ta textarea.Model) string {
	return "  " + common.MetadataStyle.Render(label) + "\n" +
		ta.View() + "\n" +
		common.StatusBarStyle.Render("  ctrl+d: submit • esc: cancel")
}

func (m Model) helpView() string {
	if m.focus != focusThread {
		return common.StatusBarStyle.Render("  ctrl+d: submit • esc: cancel")
	}

	items := []string{
		"j/k: focus",
		"u/d: vote",
		"c: reply",
	}
	if r, ok := m.selectedReply(); ok && m.isOwn(r.Reply) {
		items = append(items, "e: edit", "x: delete")
	}
	items = append(items, "r: refresh", "esc/q: back")
	return common.StatusBarStyle.Render("  " + strings.Join(items, " • "))
}
