package forum

import (
	"testing"

	"github.com/codifyhq/termcodify/domain"
)

func reply(id, parentID string) domain.Reply {
	return domain.Reply{ID: id, ParentID: parentID, Text: "reply " + id}
}

func TestBuildThreadNesting(t *testing.T) {
	replies := []domain.Reply{
		reply("r1", ""),
		reply("r2", "r1"),
		reply("r3", "r2"),
		reply("r4", ""),
	}

	forest := BuildThread(replies)

	if len(forest) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(forest))
	}
	if forest[0].ID != "r1" || forest[1].ID != "r4" {
		t.Errorf("unexpected top-level order: %s, %s", forest[0].ID, forest[1].ID)
	}
	if len(forest[0].Children) != 1 || forest[0].Children[0].ID != "r2" {
		t.Fatalf("expected r2 under r1, got %+v", forest[0].Children)
	}
	if len(forest[0].Children[0].Children) != 1 || forest[0].Children[0].Children[0].ID != "r3" {
		t.Errorf("expected r3 under r2")
	}
}

func TestBuildThreadPreservesEveryReply(t *testing.T) {
	tests := []struct {
		name    string
		replies []domain.Reply
	}{
		{"empty", nil},
		{"all top level", []domain.Reply{reply("a", ""), reply("b", ""), reply("c", "")}},
		{"deep chain", []domain.Reply{reply("a", ""), reply("b", "a"), reply("c", "b"), reply("d", "c")}},
		{"dangling parents", []domain.Reply{reply("a", "gone"), reply("b", "also-gone"), reply("c", "a")}},
		{"self parent", []domain.Reply{reply("a", "a"), reply("b", "a")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := BuildThread(tt.replies)
			if got := CountNodes(forest); got != len(tt.replies) {
				t.Errorf("expected %d nodes, got %d", len(tt.replies), got)
			}
		})
	}
}

func TestBuildThreadDanglingParentDemotedToTopLevel(t *testing.T) {
	replies := []domain.Reply{
		reply("r1", ""),
		reply("r2", "r1"),
		reply("r3", "zzz"),
	}

	forest := BuildThread(replies)

	if len(forest) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(forest))
	}
	if forest[1].ID != "r3" {
		t.Errorf("expected dangling r3 at top level, got %s", forest[1].ID)
	}
	if len(forest[0].Children) != 1 || forest[0].Children[0].ID != "r2" {
		t.Errorf("expected r2 to stay nested under r1")
	}
}

func TestBuildThreadIdempotent(t *testing.T) {
	replies := []domain.Reply{
		reply("r1", ""),
		reply("r2", "r1"),
		reply("r3", "r1"),
		reply("r4", "missing"),
	}

	first := Flatten(BuildThread(replies))
	second := Flatten(BuildThread(replies))

	if len(first) != len(second) {
		t.Fatalf("flatten lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Depth != second[i].Depth {
			t.Errorf("position %d differs: %s@%d vs %s@%d",
				i, first[i].ID, first[i].Depth, second[i].ID, second[i].Depth)
		}
	}
}

func TestFlattenDepthsAndOrder(t *testing.T) {
	replies := []domain.Reply{
		reply("r1", ""),
		reply("r2", "r1"),
		reply("r3", "r2"),
		reply("r4", ""),
		reply("r5", "r4"),
	}

	flat := Flatten(BuildThread(replies))

	want := []struct {
		id    string
		depth int
	}{
		{"r1", 0}, {"r2", 1}, {"r3", 2}, {"r4", 0}, {"r5", 1},
	}
	if len(flat) != len(want) {
		t.Fatalf("expected %d flat replies, got %d", len(want), len(flat))
	}
	for i, w := range want {
		if flat[i].ID != w.id || flat[i].Depth != w.depth {
			t.Errorf("position %d: expected %s@%d, got %s@%d",
				i, w.id, w.depth, flat[i].ID, flat[i].Depth)
		}
	}
}
