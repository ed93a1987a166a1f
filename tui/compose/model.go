package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Inline form fields, cycled with tab.
type field int

const (
	fieldTitle field = iota
	fieldTags
	fieldExcerpt
	fieldBody
	fieldCount
)

// --- Messages ---

// DoneMsg is sent when composing a question is complete (success or cancel).
type DoneMsg struct {
	Payload   domain.AskPayload
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the ask-a-question view.
type Model struct {
	mode    mode
	editor  *editor.EnvEditor
	status  string
	tmpPath string

	// Inline mode only.
	focus   field
	title   textinput.Model
	tags    textinput.Model
	excerpt textinput.Model
	body    textarea.Model
}

// NewEditor creates an ask model that opens $EDITOR via tea.Exec with a
// question template.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		status: "Opening editor...",
	}
}

// NewInline creates an ask model with an inline Bubble Tea form.
func NewInline() Model {
	title := textinput.New()
	title.Placeholder = "What do you want to ask?"
	title.CharLimit = 160
	title.Width = 70
	title.Focus()

	tags := textinput.New()
	tags.Placeholder = "tags, comma separated"
	tags.CharLimit = 120
	tags.Width = 70

	excerpt := textinput.New()
	excerpt.Placeholder = "one-line summary (optional)"
	excerpt.CharLimit = 200
	excerpt.Width = 70

	body := textarea.New()
	body.Placeholder = "Describe the problem..."
	body.CharLimit = 4000
	body.SetWidth(72)
	body.SetHeight(8)

	return Model{
		mode:    inlineMode,
		focus:   fieldTitle,
		title:   title,
		tags:    tags,
		excerpt: excerpt,
		body:    body,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textinput.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(askTemplate)
	if err != nil {
		return func() tea.Msg {
			return DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the ask view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err)})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err})
		}
		// ReadContent trims the buffer, so compare against the trimmed
		// template to detect an untouched one.
		if content == "" || content == strings.TrimSpace(askTemplate) {
			return m, done(DoneMsg{Cancelled: true})
		}

		payload := ParseAskBuffer(content)
		if payload.Title == "" && payload.Excerpt == "" && payload.Description == "" && len(payload.Tags) == 0 {
			return m, done(DoneMsg{Cancelled: true})
		}
		if payload.Title == "" {
			return m, done(DoneMsg{Err: domain.ErrEmptyTitle})
		}
		return m, done(DoneMsg{Payload: payload})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true})

		case "tab":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case "shift+tab":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil

		case "ctrl+d":
			payload := m.inlinePayload()
			if payload.Title == "" {
				m.status = "Title is required."
				return m, nil
			}
			return m, done(DoneMsg{Payload: payload})
		}

		return m.updateFocused(msg)
	}

	// Pass through any remaining messages to the focused field in inline mode.
	if m.mode == inlineMode {
		return m.updateFocused(msg)
	}

	return m, nil
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.title.Blur()
	m.tags.Blur()
	m.excerpt.Blur()
	m.body.Blur()
	switch f {
	case fieldTitle:
		m.title.Focus()
	case fieldTags:
		m.tags.Focus()
	case fieldExcerpt:
		m.excerpt.Focus()
	case fieldBody:
		m.body.Focus()
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	case fieldExcerpt:
		m.excerpt, cmd = m.excerpt.Update(msg)
	case fieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m Model) inlinePayload() domain.AskPayload {
	return buildAskPayload(
		m.title.Value(),
		m.tags.Value(),
		m.excerpt.Value(),
		m.body.Value(),
	)
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
