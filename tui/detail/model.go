package detail

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codifyhq/termcodify/app"
	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/tui/common"
)

// --- Messages ---

// BackMsg asks the root model to return to the question list.
type BackMsg struct{}

// mutation kinds, used to route a result back to the editor that caused it.
const (
	actionReply       = "reply"
	actionInlineReply = "inline-reply"
	actionEditReply   = "edit-reply"
	actionDeleteReply = "delete-reply"
	actionVote        = "vote"
)

// mutationDoneMsg is sent after any store mutation attempt.
type mutationDoneMsg struct {
	action  string
	replyID string
	err     error
}

// reloadedMsg is sent after a full refresh of the question list.
type reloadedMsg struct {
	err error
}

// --- Focus ---

type focusArea int

const (
	focusThread focusArea = iota
	focusReplyEditor
	focusInline
	focusEdit
)

// --- Model ---

// Model is the per-question detail view. It owns only transient UI state:
// cursor position, the open/closed reply editor, which top-level replies
// have their inline composer expanded, and the draft buffer of an in-place
// reply edit. Canonical data always comes from the store.
type Model struct {
	store  *forum.Store
	userID string

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int

	questionID string
	question   domain.Question
	found      bool
	flat       []forum.FlatReply
	cursor     int // 0 is the question card, 1..n the flattened replies

	focus       focusArea
	activeReply string // target reply for focusInline and focusEdit

	replyOpen   bool
	replyEditor textarea.Model

	// Inline nested-reply composers, keyed by top-level reply id. Each
	// expanded reply carries its own draft, independent of the others.
	expanded map[string]textarea.Model

	editDraft textarea.Model

	confirmDelete string // reply id awaiting y/n
	notice        string
	loading       bool
	loadErr       error
}

// New creates a detail model for the given question.
func New(store *forum.Store, userID, questionID string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	m := Model{
		store:      store,
		userID:     userID,
		keys:       common.DefaultKeyMap(),
		spinner:    s,
		questionID: questionID,
		expanded:   make(map[string]textarea.Model),
	}
	m.sync()
	return m
}

// Init starts the spinner in case the store is still loading.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// sync re-derives the question and its reply thread from the store, and
// drops transient editor state whose target reply no longer exists.
func (m *Model) sync() {
	snap := m.store.Snapshot()
	m.loading = snap.Loading
	m.loadErr = snap.Err

	m.question, m.found = m.store.Question(m.questionID)
	if !m.found {
		m.flat = nil
		return
	}

	m.flat = forum.Flatten(forum.BuildThread(m.question.Replies))
	if m.cursor > len(m.flat) {
		m.cursor = len(m.flat)
	}

	alive := make(map[string]bool, len(m.flat))
	topLevel := make(map[string]bool, len(m.flat))
	for _, fr := range m.flat {
		alive[fr.ID] = true
		if fr.Depth == 0 {
			topLevel[fr.ID] = true
		}
	}
	for id := range m.expanded {
		if !topLevel[id] {
			delete(m.expanded, id)
		}
	}
	if m.activeReply != "" && !alive[m.activeReply] {
		m.focus = focusThread
		m.activeReply = ""
	}
	if m.confirmDelete != "" && !alive[m.confirmDelete] {
		m.confirmDelete = ""
	}
}

// selectedReply returns the reply under the cursor, if the cursor is on one.
func (m Model) selectedReply() (forum.FlatReply, bool) {
	if m.cursor < 1 || m.cursor > len(m.flat) {
		return forum.FlatReply{}, false
	}
	return m.flat[m.cursor-1], true
}

func (m Model) isOwn(r domain.Reply) bool {
	return m.userID != "" && r.Author.ID == m.userID
}

// --- Commands ---

func (m Model) reload() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return reloadedMsg{err: store.Load(context.Background())}
	}
}

func (m Model) addReply(parentID, replyToAuthor, text string) tea.Cmd {
	store := m.store
	questionID := m.questionID
	action := actionReply
	if parentID != "" {
		action = actionInlineReply
	}
	return func() tea.Msg {
		_, err := store.AddReply(context.Background(), questionID, app.NewReply{
			Text:          text,
			ParentID:      parentID,
			ReplyToAuthor: replyToAuthor,
		})
		return mutationDoneMsg{action: action, replyID: parentID, err: err}
	}
}

func (m Model) saveEdit(replyID, text string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.UpdateReply(context.Background(), replyID, text)
		return mutationDoneMsg{action: actionEditReply, replyID: replyID, err: err}
	}
}

func (m Model) deleteReply(replyID string) tea.Cmd {
	store := m.store
	questionID := m.questionID
	return func() tea.Msg {
		err := store.DeleteReply(context.Background(), replyID, questionID)
		return mutationDoneMsg{action: actionDeleteReply, replyID: replyID, err: err}
	}
}

func (m Model) voteQuestion(dir domain.VoteDirection) tea.Cmd {
	store := m.store
	id := m.questionID
	return func() tea.Msg {
		_, err := store.VoteQuestion(context.Background(), id, dir)
		return mutationDoneMsg{action: actionVote, err: err}
	}
}

func (m Model) voteReply(replyID string, dir domain.VoteDirection) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.VoteReply(context.Background(), replyID, dir)
		return mutationDoneMsg{action: actionVote, replyID: replyID, err: err}
	}
}

// --- Update ---

// Update handles messages for the detail view.
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

	case reloadedMsg:
		if msg.err != nil {
			m.notice = "Refresh failed: " + msg.err.Error()
		} else {
			m.notice = ""
		}
		m.sync()
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward anything else to the focused editor (cursor blink etc.).
	return m.updateFocusedEditor(msg)
}

// handleMutationDone applies a mutation result. On failure the triggering
// editor stays open with its draft intact so no input is lost; on success
// the editor closes and the thread re-syncs from the store.
func (m Model) handleMutationDone(msg mutationDoneMsg) Model {
	if msg.err != nil {
		m.notice = "Request failed: " + msg.err.Error()
		return m
	}
	m.notice = ""

	switch msg.action {
	case actionReply:
		m.replyOpen = false
		m.replyEditor.Reset()
		m.focus = focusThread

	case actionInlineReply:
		delete(m.expanded, msg.replyID)
		if m.focus == focusInline && m.activeReply == msg.replyID {
			m.focus = focusThread
			m.activeReply = ""
		}

	case actionEditReply:
		if m.focus == focusEdit && m.activeReply == msg.replyID {
			m.focus = focusThread
			m.activeReply = ""
		}

	case actionDeleteReply:
		m.confirmDelete = ""
	}

	m.sync()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.focus != focusThread {
		return m.handleEditorKey(msg)
	}

	if m.confirmDelete != "" {
		switch msg.String() {
		case "y":
			return m, m.deleteReply(m.confirmDelete)
		case "n", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), msg.String() == "q":
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.flat) {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Upvote):
		return m, m.voteAtCursor(domain.Upvote)

	case key.Matches(msg, m.keys.Downvote):
		return m, m.voteAtCursor(domain.Downvote)

	case key.Matches(msg, m.keys.Reply):
		return m.openComposer()

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selectedReply(); ok && m.isOwn(r.Reply) {
			m.confirmDelete = r.ID
		}
	}

	return m, nil
}

func (m Model) voteAtCursor(dir domain.VoteDirection) tea.Cmd {
	if m.cursor == 0 {
		return m.voteQuestion(dir)
	}
	if r, ok := m.selectedReply(); ok {
		return m.voteReply(r.ID, dir)
	}
	return nil
}

// openComposer opens the appropriate reply composer for the cursor: the
// question-level reply editor on the question card, or an inline composer
// on a top-level reply. Nested replies offer no inline affordance; the
// data model allows arbitrary depth, the screen keeps it two levels deep.
func (m Model) openComposer() (Model, tea.Cmd) {
	if m.cursor == 0 {
		if !m.replyOpen {
			m.replyEditor = newComposerArea("Write a reply...")
		}
		m.replyOpen = true
		m.focus = focusReplyEditor
		m.replyEditor.Focus()
		return m, textarea.Blink
	}

	r, ok := m.selectedReply()
	if !ok {
		return m, nil
	}
	if r.Depth != 0 {
		m.notice = "Replies can only be nested under top-level replies."
		return m, nil
	}

	if _, open := m.expanded[r.ID]; !open {
		m.expanded[r.ID] = newComposerArea("Reply to " + r.Author.Name + "...")
	}
	m.focus = focusInline
	m.activeReply = r.ID
	ta := m.expanded[r.ID]
	ta.Focus()
	m.expanded[r.ID] = ta
	return m, textarea.Blink
}

// startEdit enters edit mode on the cursor's reply. Only the author may
// edit; the draft starts from the current text and is discarded on cancel.
func (m Model) startEdit() (Model, tea.Cmd) {
	r, ok := m.selectedReply()
	if !ok || !m.isOwn(r.Reply) {
		return m, nil
	}

	m.editDraft = newComposerArea("")
	m.editDraft.SetValue(r.Text)
	m.editDraft.Focus()
	m.focus = focusEdit
	m.activeReply = r.ID
	return m, textarea.Blink
}

// handleEditorKey routes keys while a composer or edit buffer has focus.
// esc cancels and discards the draft; ctrl+d submits non-empty text.
func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		switch m.focus {
		case focusReplyEditor:
			m.replyOpen = false
			m.replyEditor.Reset()
		case focusInline:
			delete(m.expanded, m.activeReply)
		case focusEdit:
			// Draft discarded, stored text untouched.
		}
		m.focus = focusThread
		m.activeReply = ""
		return m, nil

	case "ctrl+d":
		return m.submitFocusedEditor()
	}

	return m.updateFocusedEditor(msg)
}

func (m Model) submitFocusedEditor() (Model, tea.Cmd) {
	switch m.focus {
	case focusReplyEditor:
		text := m.replyEditor.Value()
		if text == "" {
			return m, nil
		}
		return m, m.addReply("", "", text)

	case focusInline:
		ta := m.expanded[m.activeReply]
		text := ta.Value()
		if text == "" {
			return m, nil
		}
		replyTo := ""
		if r, ok := m.store.FindReply(m.activeReply); ok {
			replyTo = r.Author.Name
		}
		return m, m.addReply(m.activeReply, replyTo, text)

	case focusEdit:
		text := m.editDraft.Value()
		if text == "" {
			return m, nil
		}
		return m, m.saveEdit(m.activeReply, text)
	}

	return m, nil
}

func (m Model) updateFocusedEditor(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusReplyEditor:
		m.replyEditor, cmd = m.replyEditor.Update(msg)
	case focusInline:
		ta := m.expanded[m.activeReply]
		ta, cmd = ta.Update(msg)
		m.expanded[m.activeReply] = ta
	case focusEdit:
		m.editDraft, cmd = m.editDraft.Update(msg)
	}
	return m, cmd
}

func newComposerArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 2000
	ta.SetWidth(68)
	ta.SetHeight(4)
	return ta
}
