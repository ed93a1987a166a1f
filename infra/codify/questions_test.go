package codify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codifyhq/termcodify/domain"
)

const questionListBody = `[
  {
    "_id": "q1",
    "author": {"_id": "u1", "name": "Asha Rao"},
    "title": "Video cannot be loaded",
    "excerpt": "Player shows a spinner forever",
    "tags": ["player", "bug"],
    "upvotes": 10,
    "downvotes": 1,
    "bookmarkedBy": ["u9", "me"],
    "updatedAt": "2026-08-01T10:00:00Z",
    "replies": [
      {"_id": "r1", "author": {"_id": "u2", "name": "Dev"}, "text": "clear cache", "upvotes": 2, "downvotes": 0},
      {"_id": "r2", "author": "Mystery", "text": "same here", "parentId": "r1"}
    ]
  },
  {
    "_id": "q2",
    "author": {"_id": "u3", "name": "Lee"},
    "title": "Other courses missing",
    "upvotes": -3,
    "bookmarkedBy": [],
    "replies": []
  }
]`

func TestQuestionService_FetchAll_NormalizesAtBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/questions/getAll" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(questionListBody))
	}))
	defer srv.Close()

	svc := NewQuestionService(NewClient(srv.URL, staticToken("t"), discardLogger()), "me")
	questions, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	q1 := questions[0]
	if !q1.Bookmarked {
		t.Fatalf("viewer is in bookmarkedBy, expected bookmarked=true")
	}
	if q1.Author != (domain.Author{ID: "u1", Name: "Asha Rao"}) {
		t.Fatalf("unexpected author: %#v", q1.Author)
	}
	if len(q1.Replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(q1.Replies))
	}
	// String-shaped author normalizes to a name-only Author.
	if q1.Replies[1].Author != (domain.Author{Name: "Mystery"}) {
		t.Fatalf("string author not normalized: %#v", q1.Replies[1].Author)
	}
	if q1.Replies[0].QuestionID != "q1" {
		t.Fatalf("reply must inherit its question id, got %q", q1.Replies[0].QuestionID)
	}

	q2 := questions[1]
	if q2.Bookmarked {
		t.Fatalf("viewer not in bookmarkedBy, expected bookmarked=false")
	}
	if q2.Upvotes != 0 {
		t.Fatalf("negative counters must clamp to zero, got %d", q2.Upvotes)
	}
}

func TestQuestionService_FetchAll_ToleratesEmptyAuthorObject(t *testing.T) {
	// A deleted user serializes as an author object with no fields; one
	// degenerate record must not take down the whole list fetch.
	body := `[{"_id":"q1","author":{},"title":"t","replies":[{"_id":"r1","author":{},"text":"x"}]}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	svc := NewQuestionService(NewClient(srv.URL, staticToken("t"), discardLogger()), "me")
	questions, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed on empty author object: %v", err)
	}
	if questions[0].Author != (domain.Author{}) {
		t.Fatalf("expected empty author, got %#v", questions[0].Author)
	}
	if questions[0].Replies[0].Author != (domain.Author{}) {
		t.Fatalf("expected empty reply author, got %#v", questions[0].Replies[0].Author)
	}
}

func TestQuestionService_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/questions/create" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "How do hooks work?" {
			t.Errorf("unexpected body: %#v", body)
		}
		w.Write([]byte(`{"_id":"q9","author":{"_id":"me","name":"You"},"title":"How do hooks work?"}`))
	}))
	defer srv.Close()

	svc := NewQuestionService(NewClient(srv.URL, staticToken("t"), discardLogger()), "me")
	q, err := svc.Ask(context.Background(), domain.AskPayload{Title: "  How do hooks work?  "})
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if q.ID != "q9" {
		t.Fatalf("unexpected created question: %#v", q)
	}
}

func TestQuestionService_Ask_RejectsEmptyTitle(t *testing.T) {
	svc := NewQuestionService(NewClient("http://unused", staticToken("t"), discardLogger()), "me")
	_, err := svc.Ask(context.Background(), domain.AskPayload{Title: "   "})
	if !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestQuestionService_Vote_HitsDirectionPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"_id":"q1","upvotes":11,"downvotes":2}`))
	}))
	defer srv.Close()

	svc := NewQuestionService(NewClient(srv.URL, staticToken("t"), discardLogger()), "me")
	q, err := svc.Vote(context.Background(), "q1", domain.Upvote)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if gotPath != "/api/questions/upvote/q1" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if q.Upvotes != 11 || q.Downvotes != 2 {
		t.Fatalf("unexpected counters: %#v", q)
	}
}
