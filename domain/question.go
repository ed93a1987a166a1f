package domain

import "time"

// Author identifies who wrote a question or reply. ID is the server-side
// user id; the gateway normalizes mixed author shapes into this struct.
type Author struct {
	ID   string
	Name string
}

// Question is a top-level forum post owning a flat list of replies.
type Question struct {
	ID          string
	Author      Author
	Title       string
	Excerpt     string
	Description string // May contain rich-text markup; rendered as plain text.
	Tags        []string
	Upvotes     int
	Downvotes   int
	Bookmarked  bool // User-scoped, normalized from bookmarkedBy at the gateway.
	Replies     []Reply
	UpdatedAt   time.Time
}

// Reply is a threaded comment. ParentID empty means top-level; a ParentID
// that doesn't resolve within the same question is treated as top-level too.
type Reply struct {
	ID            string
	QuestionID    string
	Author        Author
	Text          string
	ParentID      string
	ReplyToAuthor string // Display-only "replied to X" hint.
	Upvotes       int
	Downvotes     int
	UpdatedAt     time.Time
}

// VoteDirection selects which counter a vote increments.
type VoteDirection string

const (
	Upvote   VoteDirection = "upvote"
	Downvote VoteDirection = "downvote"
)

// AskPayload is the input for creating a new question.
type AskPayload struct {
	Title       string
	Excerpt     string
	Description string
	Tags        []string
}

// ReplyCount returns the number of replies at any depth.
func (q Question) ReplyCount() int {
	return len(q.Replies)
}

// IsTopLevel reports whether the reply has no parent.
func (r Reply) IsTopLevel() bool {
	return r.ParentID == ""
}
