package compose

import (
	"strings"
	"testing"
)

func TestParseAskBufferWithHeaders(t *testing.T) {
	buffer := strings.Join([]string{
		"Title: Video cannot be loaded",
		"Tags: courses, Video, video",
		"Excerpt: player stuck on spinner",
		"",
		"The course player never starts.",
		"Tried two browsers.",
	}, "\n")

	payload := ParseAskBuffer(buffer)

	if payload.Title != "Video cannot be loaded" {
		t.Errorf("unexpected title %q", payload.Title)
	}
	if len(payload.Tags) != 2 || payload.Tags[0] != "courses" || payload.Tags[1] != "video" {
		t.Errorf("expected deduplicated lowercase tags, got %v", payload.Tags)
	}
	if payload.Excerpt != "player stuck on spinner" {
		t.Errorf("unexpected excerpt %q", payload.Excerpt)
	}
	if !strings.HasPrefix(payload.Description, "The course player") {
		t.Errorf("unexpected description %q", payload.Description)
	}
}

func TestParseAskBufferFreeForm(t *testing.T) {
	payload := ParseAskBuffer("Why does my loop never end?\nIt keeps printing forever.")

	if payload.Title != "Why does my loop never end?" {
		t.Errorf("expected first line as title, got %q", payload.Title)
	}
	if payload.Description != "It keeps printing forever." {
		t.Errorf("unexpected description %q", payload.Description)
	}
	if payload.Excerpt != "It keeps printing forever." {
		t.Errorf("expected excerpt derived from description, got %q", payload.Excerpt)
	}
}

func TestParseAskBufferDerivedExcerptIsClipped(t *testing.T) {
	long := strings.Repeat("x", 300)
	payload := ParseAskBuffer("Title: t\n\n" + long)

	if len(payload.Excerpt) > excerptLimit+3 {
		t.Errorf("expected clipped excerpt, got %d chars", len(payload.Excerpt))
	}
	if !strings.HasSuffix(payload.Excerpt, "...") {
		t.Errorf("expected ellipsis on clipped excerpt")
	}
}

func TestParseAskBufferEmptyTitle(t *testing.T) {
	payload := ParseAskBuffer("Title:\n\nbody only")
	if payload.Title != "" {
		t.Errorf("expected empty title, got %q", payload.Title)
	}
}
