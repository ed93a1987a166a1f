package app

import (
	"context"

	"github.com/codifyhq/termcodify/domain"
)

// NewReply is the input for posting a reply. ParentID empty means the reply
// goes directly under the question.
type NewReply struct {
	Text          string
	ParentID      string
	ReplyToAuthor string
}

// ReplyService talks to the forum backend about replies.
type ReplyService interface {
	// Add posts a reply under the given question.
	Add(ctx context.Context, questionID string, reply NewReply) (domain.Reply, error)

	// Update replaces a reply's text. The server enforces authorship.
	Update(ctx context.Context, replyID string, text string) (domain.Reply, error)

	// Delete removes a reply by ID.
	Delete(ctx context.Context, replyID string) error

	// Vote increments one of the reply's counters and returns the updated reply.
	Vote(ctx context.Context, replyID string, dir domain.VoteDirection) (domain.Reply, error)
}
