package codify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codifyhq/termcodify/domain"
)

// questionService implements app.QuestionService against the Codify API.
type questionService struct {
	client *Client
	userID string // Viewer id, used to normalize the bookmarked flag.
}

// NewQuestionService creates a QuestionService backed by the Codify API.
// Pass the current user's id so user-scoped fields normalize correctly.
func NewQuestionService(client *Client, userID string) *questionService {
	return &questionService{client: client, userID: userID}
}

func (s *questionService) FetchAll(ctx context.Context) ([]domain.Question, error) {
	data, err := s.client.Get(ctx, "/api/questions/getAll")
	if err != nil {
		return nil, fmt.Errorf("fetching questions: %w", err)
	}

	var wire []wireQuestion
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing questions: %w", err)
	}

	questions := make([]domain.Question, 0, len(wire))
	for _, w := range wire {
		questions = append(questions, w.toDomain(s.userID))
	}
	return questions, nil
}

func (s *questionService) Ask(ctx context.Context, payload domain.AskPayload) (domain.Question, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return domain.Question{}, domain.ErrEmptyTitle
	}

	body := map[string]any{
		"title":       strings.TrimSpace(payload.Title),
		"excerpt":     strings.TrimSpace(payload.Excerpt),
		"description": payload.Description,
		"tags":        payload.Tags,
	}
	data, err := s.client.Post(ctx, "/api/questions/create", body)
	if err != nil {
		return domain.Question{}, fmt.Errorf("asking question: %w", err)
	}
	return s.parseQuestion(data)
}

func (s *questionService) Vote(ctx context.Context, id string, dir domain.VoteDirection) (domain.Question, error) {
	path := fmt.Sprintf("/api/questions/%s/%s", dir, id)
	data, err := s.client.Post(ctx, path, nil)
	if err != nil {
		return domain.Question{}, fmt.Errorf("voting on question %s: %w", id, err)
	}
	return s.parseQuestion(data)
}

func (s *questionService) ToggleBookmark(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/questions/bookmark/%s", id)
	if _, err := s.client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("toggling bookmark on %s: %w", id, err)
	}
	return nil
}

func (s *questionService) parseQuestion(data []byte) (domain.Question, error) {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Question{}, fmt.Errorf("parsing question response: %w", err)
	}
	return w.toDomain(s.userID), nil
}
