package codify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codifyhq/termcodify/app"
	"github.com/codifyhq/termcodify/domain"
)

// replyService implements app.ReplyService against the Codify API.
type replyService struct {
	client *Client
}

// NewReplyService creates a ReplyService backed by the Codify API.
func NewReplyService(client *Client) *replyService {
	return &replyService{client: client}
}

func (s *replyService) Add(ctx context.Context, questionID string, reply app.NewReply) (domain.Reply, error) {
	text := strings.TrimSpace(reply.Text)
	if text == "" {
		return domain.Reply{}, domain.ErrEmptyReply
	}

	body := map[string]any{"text": text}
	if reply.ParentID != "" {
		body["parentId"] = reply.ParentID
	}
	if reply.ReplyToAuthor != "" {
		body["replyToAuthor"] = reply.ReplyToAuthor
	}

	path := fmt.Sprintf("/api/questions/%s/replies", questionID)
	data, err := s.client.Post(ctx, path, body)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("adding reply to question %s: %w", questionID, err)
	}
	return parseReply(data, questionID)
}

func (s *replyService) Update(ctx context.Context, replyID string, text string) (domain.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Reply{}, domain.ErrEmptyReply
	}

	path := fmt.Sprintf("/api/replies/%s", replyID)
	data, err := s.client.Patch(ctx, path, map[string]any{"text": text})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("updating reply %s: %w", replyID, err)
	}
	return parseReply(data, "")
}

func (s *replyService) Delete(ctx context.Context, replyID string) error {
	path := fmt.Sprintf("/api/replies/%s", replyID)
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting reply %s: %w", replyID, err)
	}
	return nil
}

func (s *replyService) Vote(ctx context.Context, replyID string, dir domain.VoteDirection) (domain.Reply, error) {
	path := fmt.Sprintf("/api/replies/%s/vote", replyID)
	data, err := s.client.Post(ctx, path, map[string]any{"type": string(dir)})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("voting on reply %s: %w", replyID, err)
	}
	return parseReply(data, "")
}

func parseReply(data []byte, questionID string) (domain.Reply, error) {
	var w wireReply
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Reply{}, fmt.Errorf("parsing reply response: %w", err)
	}
	if w.QuestionID == "" {
		w.QuestionID = questionID
	}
	return w.toDomain(), nil
}
