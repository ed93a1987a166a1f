package questions

import (
	"fmt"
	"strings"
	"time"

	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/tui/common"
)

// View renders the question list as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("Codify")
	tagline := common.TaglineStyle.Render("<Q&A forum, in your terminal>")
	b.WriteString(title + tagline + "\n")
	b.WriteString(m.filterBar() + "\n\n")

	switch {
	case m.loading && len(m.questions) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading questions...\n", m.spinner.View()))

	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")

	case len(m.questions) == 0:
		b.WriteString("  No questions match. Press p to ask one!\n")

	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	if m.loading && len(m.questions) > 0 {
		b.WriteString(fmt.Sprintf("  %s Refreshing...\n", m.spinner.View()))
	}
	if m.notice != "" {
		b.WriteString(common.ErrorStyle.Render("  "+m.notice) + "\n")
	}
	b.WriteString(m.helpView())

	return common.ClampLinesToWidth(b.String(), m.width)
}

func (m Model) filterBar() string {
	parts := make([]string, 0, 3)
	if m.searching {
		parts = append(parts, "  / "+m.searchInput.View())
	} else if m.search != "" {
		parts = append(parts, common.MetadataStyle.Render(fmt.Sprintf("  search: %q", m.search)))
	}
	parts = append(parts, common.MetadataStyle.Render("  sort: "+sortLabel(m.sort)))
	if m.bookmarkedOnly {
		parts = append(parts, common.BookmarkStyle.Render("  ★ bookmarked only"))
	}
	return strings.Join(parts, "")
}

func sortLabel(sort string) string {
	switch sort {
	case forum.SortUpvotes:
		return "most upvoted"
	case forum.SortReplies:
		return "most replies"
	default:
		return "latest"
	}
}

func (m Model) renderList() string {
	// Reserved height: header (~4), status bar (~3). Each card is roughly
	// 5 lines including the border.
	reserved := 7
	availableHeight := m.height - reserved
	if availableHeight < 0 {
		availableHeight = 0
	}
	visibleCount := availableHeight / 5
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := m.startIndex
	if m.cursor >= start+visibleCount {
		start = m.cursor - visibleCount + 1
	}
	if start < 0 {
		start = 0
	}
	end := start + visibleCount
	if end > len(m.questions) {
		end = len(m.questions)
	}

	var b strings.Builder
	now := time.Now()
	for i := start; i < end; i++ {
		card := m.renderCard(m.questions[i], now)
		if i == m.cursor {
			card = common.SelectedStyle.Render(card)
		} else {
			card = common.UnselectedStyle.Render(card)
		}
		b.WriteString(card + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderCard(q domain.Question, now time.Time) string {
	var b strings.Builder

	title := common.TitleStyle.Render(q.Title)
	if q.Bookmarked {
		title += common.BookmarkStyle.Render(" ★")
	}
	b.WriteString(title + "\n")

	author := common.AuthorStyle.Render(q.Author.Name)
	ago := common.TimestampStyle.Render(common.RelativeTime(q.UpdatedAt, now))
	line := author
	if ago != "" {
		line += "  " + ago
	}
	if tags := renderTags(q.Tags, 3); tags != "" {
		line += "  " + tags
	}
	b.WriteString(line + "\n")

	if q.Excerpt != "" {
		b.WriteString(common.ContentStyle.Render(common.TruncateLines(q.Excerpt, 70, 1)) + "\n")
	}

	meta := fmt.Sprintf("▲ %d  ▼ %d  ↩ %d", q.Upvotes, q.Downvotes, q.ReplyCount())
	b.WriteString(common.MetadataStyle.Render(meta))

	return b.String()
}

func renderTags(tags []string, max int) string {
	if len(tags) == 0 {
		return ""
	}
	show := tags
	if len(show) > max {
		show = show[:max]
	}
	parts := make([]string, 0, len(show)+1)
	for _, t := range show {
		parts = append(parts, common.TagStyle.Render(t))
	}
	if len(tags) > max {
		parts = append(parts, common.MetadataStyle.Render(fmt.Sprintf("+%d", len(tags)-max)))
	}
	return strings.Join(parts, " ")
}

func (m Model) helpView() string {
	var items []string
	if len(m.questions) > 0 {
		items = []string{
			"j/k: focus",
			"enter: open",
			"u/d: vote",
			"b: bookmark",
			"B: bookmarked",
			"/: search",
			"s: sort",
			"p/P: ask",
			"r: refresh",
			"q: quit",
		}
	} else {
		items = []string{
			"p/P: ask",
			"/: search",
			"r: refresh",
			"q: quit",
		}
	}
	return common.StatusBarStyle.Render("  " + strings.Join(items, " • "))
}
