package questions

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/tui/common"
)

// --- Messages ---

// OpenDetailMsg asks the root model to open a question's detail view.
type OpenDetailMsg struct {
	ID string
}

// AskMsg asks the root model to open the ask composer.
type AskMsg struct {
	UseInline bool
}

// SyncMsg tells the list to re-derive its view from the store, e.g. after
// a mutation performed by another screen.
type SyncMsg struct{}

// loadedMsg is sent when the initial or refreshed question fetch completes.
type loadedMsg struct {
	err error
}

// voteDoneMsg is sent after a question vote attempt.
type voteDoneMsg struct {
	id  string
	err error
}

// bookmarkDoneMsg is sent after a bookmark toggle attempt.
type bookmarkDoneMsg struct {
	id  string
	err error
}

// --- Model ---

// Model holds the state for the question list view.
type Model struct {
	store   *forum.Store
	keys    common.KeyMap
	spinner spinner.Model

	width      int
	height     int
	cursor     int
	startIndex int

	searchInput    textinput.Model
	searching      bool
	search         string
	sort           string
	bookmarkedOnly bool

	questions []domain.Question
	loading   bool
	err       error
	notice    string
}

// New creates a list model over the store. Search and sort seed the view
// from the persisted UI state.
func New(store *forum.Store, search, sort string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	input := textinput.New()
	input.Placeholder = "search title or excerpt"
	input.CharLimit = 120
	input.Width = 40
	input.SetValue(search)

	return Model{
		store:       store,
		keys:        common.DefaultKeyMap(),
		spinner:     s,
		searchInput: input,
		search:      search,
		sort:        forum.NormalizeSort(sort),
		loading:     true,
	}
}

// Init starts the initial question fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.load(),
		m.spinner.Tick,
	)
}

// Searching reports whether the search input currently has focus, so the
// root model can keep plain letter keys out of its global bindings.
func (m Model) Searching() bool {
	return m.searching
}

// Search returns the current search term, for UI state persistence.
func (m Model) Search() string {
	return m.search
}

// Sort returns the current sort order, for UI state persistence.
func (m Model) Sort() string {
	return m.sort
}

// Selected returns the currently highlighted question, if any.
func (m Model) Selected() (domain.Question, bool) {
	if len(m.questions) == 0 || m.cursor >= len(m.questions) {
		return domain.Question{}, false
	}
	return m.questions[m.cursor], true
}

func (m Model) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return loadedMsg{err: store.Load(context.Background())}
	}
}

func (m Model) vote(id string, dir domain.VoteDirection) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.VoteQuestion(context.Background(), id, dir)
		return voteDoneMsg{id: id, err: err}
	}
}

func (m Model) bookmark(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return bookmarkDoneMsg{id: id, err: store.ToggleBookmark(context.Background(), id)}
	}
}

// sync re-derives the visible question list from the store.
func (m *Model) sync() {
	view := m.store.Query(m.search, m.sort)
	if m.bookmarkedOnly {
		filtered := view[:0]
		for _, q := range view {
			if q.Bookmarked {
				filtered = append(filtered, q)
			}
		}
		view = filtered
	}
	m.questions = view
	if m.cursor >= len(m.questions) {
		m.cursor = len(m.questions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.sync()
		}
		return m, nil

	case SyncMsg:
		m.sync()
		return m, nil

	case voteDoneMsg:
		if msg.err != nil {
			m.notice = "Vote failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = ""
		m.sync()
		return m, nil

	case bookmarkDoneMsg:
		if msg.err != nil {
			m.notice = "Bookmark failed: " + msg.err.Error()
		} else {
			m.notice = ""
		}
		// Sync either way: the optimistic flip already happened, and on
		// failure the store has rolled it back.
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.search = m.searchInput.Value()
		m.cursor = 0
		m.startIndex = 0
		m.sync()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.notice = ""
		return m, m.load()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.startIndex {
				m.startIndex = m.cursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.questions)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Sort):
		m.sort = forum.NextSort(m.sort)
		m.cursor = 0
		m.startIndex = 0
		m.sync()

	case key.Matches(msg, m.keys.BookmarkFilter):
		m.bookmarkedOnly = !m.bookmarkedOnly
		m.cursor = 0
		m.startIndex = 0
		m.sync()

	case key.Matches(msg, m.keys.Bookmark):
		if q, ok := m.Selected(); ok {
			return m, m.bookmark(q.ID)
		}

	case key.Matches(msg, m.keys.Upvote):
		if q, ok := m.Selected(); ok {
			return m, m.vote(q.ID, domain.Upvote)
		}

	case key.Matches(msg, m.keys.Downvote):
		if q, ok := m.Selected(); ok {
			return m, m.vote(q.ID, domain.Downvote)
		}

	case key.Matches(msg, m.keys.Open):
		if q, ok := m.Selected(); ok {
			id := q.ID
			return m, func() tea.Msg { return OpenDetailMsg{ID: id} }
		}

	case key.Matches(msg, m.keys.AskEditor):
		return m, func() tea.Msg { return AskMsg{UseInline: false} }

	case key.Matches(msg, m.keys.AskInline):
		return m, func() tea.Msg { return AskMsg{UseInline: true} }
	}

	return m, nil
}
