package questions

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/codifyhq/termcodify/app"
	"github.com/codifyhq/termcodify/domain"
	"github.com/codifyhq/termcodify/forum"
)

type stubQuestionService struct {
	fetchErr error
}

func (s stubQuestionService) FetchAll(context.Context) ([]domain.Question, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return []domain.Question{
		{ID: "q1", Title: "Video cannot be loaded", Upvotes: 2},
		{ID: "q2", Title: "Other courses missing", Upvotes: 7, Bookmarked: true},
		{ID: "q3", Title: "Slice capacity confusion", Excerpt: "append and video demos", Upvotes: 7},
	}, nil
}

func (stubQuestionService) Ask(context.Context, domain.AskPayload) (domain.Question, error) {
	return domain.Question{}, nil
}

func (stubQuestionService) Vote(_ context.Context, id string, _ domain.VoteDirection) (domain.Question, error) {
	return domain.Question{ID: id, Upvotes: 3}, nil
}

func (stubQuestionService) ToggleBookmark(context.Context, string) error { return nil }

type stubReplyService struct{}

func (stubReplyService) Add(context.Context, string, app.NewReply) (domain.Reply, error) {
	return domain.Reply{}, nil
}

func (stubReplyService) Update(context.Context, string, string) (domain.Reply, error) {
	return domain.Reply{}, nil
}

func (stubReplyService) Delete(context.Context, string) error { return nil }

func (stubReplyService) Vote(context.Context, string, domain.VoteDirection) (domain.Reply, error) {
	return domain.Reply{}, nil
}

func newLoadedModel(t *testing.T, svc stubQuestionService, search, sort string) Model {
	t.Helper()
	store := forum.NewStore(svc, stubReplyService{}, nil)
	m := New(store, search, sort)
	cmd := m.load()
	m, _ = m.Update(cmd())
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLoadPopulatesList(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	if m.loading {
		t.Error("expected loading cleared")
	}
	if len(m.questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(m.questions))
	}
}

func TestLoadFailureSurfacesError(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{fetchErr: errors.New("gateway down")}, "", "")

	if m.err == nil {
		t.Error("expected load error surfaced")
	}
	if m.loading {
		t.Error("expected loading cleared even on failure")
	}
}

func TestSearchFiltersTitleAndExcerpt(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "video", "")

	if len(m.questions) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "video", len(m.questions))
	}
	if m.questions[0].ID != "q1" || m.questions[1].ID != "q3" {
		t.Errorf("unexpected matches: %s, %s", m.questions[0].ID, m.questions[1].ID)
	}
}

func TestSortKeyCyclesOrders(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", forum.SortLatest)

	m, _ = m.Update(keyRune('s'))
	if m.sort != forum.SortUpvotes {
		t.Fatalf("expected upvotes sort, got %s", m.sort)
	}
	// Ties on 7 upvotes keep collection order: q2 before q3.
	if m.questions[0].ID != "q2" || m.questions[1].ID != "q3" {
		t.Errorf("unexpected order: %s, %s", m.questions[0].ID, m.questions[1].ID)
	}
}

func TestBookmarkFilter(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	m, _ = m.Update(keyRune('B'))
	if len(m.questions) != 1 || m.questions[0].ID != "q2" {
		t.Fatalf("expected only bookmarked q2, got %d questions", len(m.questions))
	}

	m, _ = m.Update(keyRune('B'))
	if len(m.questions) != 3 {
		t.Errorf("expected filter toggled off, got %d questions", len(m.questions))
	}
}

func TestVoteAppliesServerCounters(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	m, cmd := m.Update(keyRune('u'))
	if cmd == nil {
		t.Fatal("expected vote command")
	}
	m, _ = m.Update(cmd())

	if m.questions[0].Upvotes != 3 {
		t.Errorf("expected server counters adopted, got %d", m.questions[0].Upvotes)
	}
}

func TestEnterEmitsOpenDetail(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg, ok := cmd().(OpenDetailMsg)
	if !ok || msg.ID != "q1" {
		t.Errorf("expected OpenDetailMsg for q1, got %#v", msg)
	}
}

func TestAskKeysEmitAskMsg(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	_, cmd := m.Update(keyRune('p'))
	if msg, ok := cmd().(AskMsg); !ok || msg.UseInline {
		t.Errorf("expected editor-mode AskMsg, got %#v", msg)
	}

	_, cmd = m.Update(keyRune('P'))
	if msg, ok := cmd().(AskMsg); !ok || !msg.UseInline {
		t.Errorf("expected inline-mode AskMsg, got %#v", msg)
	}
}

func TestSearchInputCapturesKeys(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", "")

	m, _ = m.Update(keyRune('/'))
	if !m.Searching() {
		t.Fatal("expected search input focused")
	}

	// While searching, 's' types into the input instead of cycling sort.
	m, _ = m.Update(keyRune('s'))
	if m.sort != forum.SortLatest {
		t.Error("sort must not change while typing a search")
	}
	if m.search != "s" {
		t.Errorf("expected search term %q, got %q", "s", m.search)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Searching() {
		t.Error("expected esc to close the search input")
	}
}

func TestViewFitsTerminalWidth(t *testing.T) {
	m := newLoadedModel(t, stubQuestionService{}, "", forum.SortLatest)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 24})

	for i, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line %d is %d cells wide, exceeds the 30-cell window", i, w)
		}
	}
}
