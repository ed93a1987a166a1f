package compose

import (
	"strings"

	"github.com/codifyhq/termcodify/domain"
)

// askTemplate is the buffer pre-filled into $EDITOR for a new question.
const askTemplate = `Title:
Tags:
Excerpt:

`

// ParseAskBuffer parses an editor buffer into an ask payload. Header lines
// (Title:, Tags:, Excerpt:) are read until the first line that is neither a
// header nor blank; everything after is the description. A buffer without
// headers treats its first line as the title.
func ParseAskBuffer(content string) domain.AskPayload {
	lines := strings.Split(content, "\n")

	var title, tags, excerpt string
	sawHeader := false
	bodyStart := 0

scan:
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			bodyStart = i + 1
		case hasHeader(trimmed, "Title:"):
			title = headerValue(trimmed, "Title:")
			sawHeader = true
			bodyStart = i + 1
		case hasHeader(trimmed, "Tags:"):
			tags = headerValue(trimmed, "Tags:")
			sawHeader = true
			bodyStart = i + 1
		case hasHeader(trimmed, "Excerpt:"):
			excerpt = headerValue(trimmed, "Excerpt:")
			sawHeader = true
			bodyStart = i + 1
		default:
			break scan
		}
	}

	body := strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))

	if !sawHeader {
		// Free-form buffer: first line is the title, rest is the description.
		title = strings.TrimSpace(lines[0])
		if len(lines) > 1 {
			body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
		} else {
			body = ""
		}
	}

	return buildAskPayload(title, tags, excerpt, body)
}

func hasHeader(line, prefix string) bool {
	return len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix)
}

func headerValue(line, prefix string) string {
	return strings.TrimSpace(line[len(prefix):])
}

// buildAskPayload normalizes the raw form fields. Tags are split on commas
// and lowercased; a missing excerpt is derived from the description's first
// line so list rendering always has something to show.
func buildAskPayload(title, tags, excerpt, body string) domain.AskPayload {
	payload := domain.AskPayload{
		Title:       strings.TrimSpace(title),
		Excerpt:     strings.TrimSpace(excerpt),
		Description: strings.TrimSpace(body),
		Tags:        splitTags(tags),
	}
	if payload.Excerpt == "" {
		payload.Excerpt = deriveExcerpt(payload.Description)
	}
	return payload
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

const excerptLimit = 140

func deriveExcerpt(description string) string {
	first, _, _ := strings.Cut(description, "\n")
	first = strings.TrimSpace(first)
	if len(first) <= excerptLimit {
		return first
	}
	return strings.TrimSpace(first[:excerptLimit]) + "..."
}
