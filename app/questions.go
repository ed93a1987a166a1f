package app

import (
	"context"

	"github.com/codifyhq/termcodify/domain"
)

// QuestionService talks to the forum backend about questions.
type QuestionService interface {
	// FetchAll returns every question, newest first, replies populated.
	FetchAll(ctx context.Context) ([]domain.Question, error)

	// Ask creates a new question and returns the server-assigned record.
	Ask(ctx context.Context, payload domain.AskPayload) (domain.Question, error)

	// Vote increments one of the question's counters and returns the
	// updated question as the server sees it.
	Vote(ctx context.Context, id string, dir domain.VoteDirection) (domain.Question, error)

	// ToggleBookmark flips the caller's bookmark on the question.
	ToggleBookmark(ctx context.Context, id string) error
}
