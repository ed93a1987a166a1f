package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/infra/editor"
	"github.com/codifyhq/termcodify/tui/common"
	"github.com/codifyhq/termcodify/tui/compose"
	"github.com/codifyhq/termcodify/tui/detail"
	"github.com/codifyhq/termcodify/tui/questions"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Store  *forum.Store
	Editor *editor.EnvEditor
	UserID string

	// Persisted UI preferences, restored at startup and saved on quit.
	InitialSearch string
	InitialSort   string
	SaveUIState   func(search, sort string) error
}

type activeView int

const (
	listView activeView = iota
	detailView
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps    Deps
	active  activeView
	list    questions.Model
	detail  detail.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Question posted!")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: listView,
		list:   questions.New(deps.Store, deps.InitialSearch, deps.InitialSort),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the list view, which triggers the initial load.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// askResultMsg is sent after a question creation attempt.
type askResultMsg struct {
	err error
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.active == listView && key.Matches(msg, a.keys.Quit) && !a.list.Searching() {
			a.saveUIState()
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Every view needs the size, not just the active one.
		a.list, _ = a.list.Update(msg)
		a.detail, _ = a.detail.Update(msg)
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		cmds = append(cmds, cmd)
		if a.active == detailView {
			a.detail, cmd = a.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case questions.OpenDetailMsg:
		a.active = detailView
		a.status = ""
		a.detail = detail.New(a.deps.Store, a.deps.UserID, msg.ID)
		return a, a.detail.Init()

	case questions.AskMsg:
		a.active = composeView
		a.status = ""
		if msg.UseInline {
			a.compose = compose.NewInline()
		} else {
			a.compose = compose.NewEditor(a.deps.Editor)
		}
		return a, a.compose.Init()

	case detail.BackMsg:
		a.active = listView
		a.list, _ = a.list.Update(questions.SyncMsg{})
		return a, nil

	case compose.DoneMsg:
		a.active = listView
		if msg.Err != nil {
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		}
		if msg.Cancelled {
			a.status = "Cancelled."
			return a, nil
		}
		a.status = "Posting..."
		return a, a.ask(msg.Payload)

	case askResultMsg:
		a.list, _ = a.list.Update(questions.SyncMsg{})
		if msg.err != nil {
			a.status = "Error posting: " + msg.err.Error()
		} else {
			a.status = "Question posted!"
		}
		return a, nil
	}

	// Delegate to the active sub-model.
	switch a.active {
	case listView:
		updated, cmd := a.list.Update(msg)
		a.list = updated
		return a, cmd
	case detailView:
		updated, cmd := a.detail.Update(msg)
		a.detail = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

func (a App) ask(payload domain.AskPayload) tea.Cmd {
	store := a.deps.Store
	return func() tea.Msg {
		_, err := store.Ask(context.Background(), payload)
		return askResultMsg{err: err}
	}
}

func (a App) saveUIState() {
	if a.deps.SaveUIState == nil {
		return
	}
	// Best effort; losing a preference is not worth blocking quit.
	_ = a.deps.SaveUIState(a.list.Search(), a.list.Sort())
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case listView:
		s = a.list.View()
	case detailView:
		s = a.detail.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  "+a.status)
	}

	return s
}
