package codify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codifyhq/termcodify/app"
	"github.com/codifyhq/termcodify/domain"
)

func TestReplyService_Add(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/questions/q1/replies" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["text"] != "try clearing cache" || body["parentId"] != "r1" || body["replyToAuthor"] != "Dev" {
			t.Errorf("unexpected body: %#v", body)
		}
		w.Write([]byte(`{"_id":"r7","author":{"_id":"me","name":"You"},"text":"try clearing cache","parentId":"r1"}`))
	}))
	defer srv.Close()

	svc := NewReplyService(NewClient(srv.URL, staticToken("t"), discardLogger()))
	reply, err := svc.Add(context.Background(), "q1", app.NewReply{
		Text:          "  try clearing cache  ",
		ParentID:      "r1",
		ReplyToAuthor: "Dev",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if reply.ID != "r7" || reply.ParentID != "r1" || reply.QuestionID != "q1" {
		t.Fatalf("unexpected reply: %#v", reply)
	}
}

func TestReplyService_AddAndUpdate_RejectEmptyText(t *testing.T) {
	svc := NewReplyService(NewClient("http://unused", staticToken("t"), discardLogger()))
	if _, err := svc.Add(context.Background(), "q1", app.NewReply{Text: " \n"}); !errors.Is(err, domain.ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply from Add, got: %v", err)
	}
	if _, err := svc.Update(context.Background(), "r1", ""); !errors.Is(err, domain.ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply from Update, got: %v", err)
	}
}

func TestReplyService_UpdateVoteDelete_Paths(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"_id":"r1","text":"edited","upvotes":3}`))
	}))
	defer srv.Close()

	svc := NewReplyService(NewClient(srv.URL, staticToken("t"), discardLogger()))

	if _, err := svc.Update(context.Background(), "r1", "edited"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/replies/r1" {
		t.Fatalf("unexpected update request: %s %s", gotMethod, gotPath)
	}

	reply, err := svc.Vote(context.Background(), "r1", domain.Downvote)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/replies/r1/vote" {
		t.Fatalf("unexpected vote request: %s %s", gotMethod, gotPath)
	}
	if reply.Upvotes != 3 {
		t.Fatalf("unexpected reply counters: %#v", reply)
	}

	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/replies/r1" {
		t.Fatalf("unexpected delete request: %s %s", gotMethod, gotPath)
	}
}
