package codify

import (
	"encoding/json"
	"time"

	"github.com/codifyhq/termcodify/domain"
)

// wireAuthor tolerates the two author shapes the backend has shipped over
// time: an object {"_id": ..., "name": ...} and a bare name string. Both
// normalize to domain.Author so nothing past this boundary has to care.
type wireAuthor struct {
	ID   string
	Name string
}

func (a *wireAuthor) UnmarshalJSON(data []byte) error {
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	// An empty object (e.g. a deleted user) is still a valid author; only
	// fall through to the string branch when the shape is not an object.
	if err := json.Unmarshal(data, &obj); err == nil {
		a.ID = obj.ID
		a.Name = obj.Name
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

type wireReply struct {
	ID            string     `json:"_id"`
	QuestionID    string     `json:"questionId"`
	Author        wireAuthor `json:"author"`
	Text          string     `json:"text"`
	ParentID      string     `json:"parentId"`
	ReplyToAuthor string     `json:"replyToAuthor"`
	Upvotes       int        `json:"upvotes"`
	Downvotes     int        `json:"downvotes"`
	UpdatedAt     string     `json:"updatedAt"`
}

type wireQuestion struct {
	ID           string      `json:"_id"`
	Author       wireAuthor  `json:"author"`
	Title        string      `json:"title"`
	Excerpt      string      `json:"excerpt"`
	Description  string      `json:"description"`
	Tags         []string    `json:"tags"`
	Upvotes      int         `json:"upvotes"`
	Downvotes    int         `json:"downvotes"`
	BookmarkedBy []string    `json:"bookmarkedBy"`
	Replies      []wireReply `json:"replies"`
	UpdatedAt    string      `json:"updatedAt"`
}

func (w wireReply) toDomain() domain.Reply {
	return domain.Reply{
		ID:            w.ID,
		QuestionID:    w.QuestionID,
		Author:        domain.Author{ID: w.Author.ID, Name: w.Author.Name},
		Text:          w.Text,
		ParentID:      w.ParentID,
		ReplyToAuthor: w.ReplyToAuthor,
		Upvotes:       clampNonNegative(w.Upvotes),
		Downvotes:     clampNonNegative(w.Downvotes),
		UpdatedAt:     parseWireTime(w.UpdatedAt),
	}
}

// toDomain normalizes a wire question for the given viewer: the user-scoped
// Bookmarked flag comes from bookmarkedBy membership.
func (w wireQuestion) toDomain(userID string) domain.Question {
	replies := make([]domain.Reply, 0, len(w.Replies))
	for _, r := range w.Replies {
		if r.QuestionID == "" {
			r.QuestionID = w.ID
		}
		replies = append(replies, r.toDomain())
	}

	bookmarked := false
	if userID != "" {
		for _, id := range w.BookmarkedBy {
			if id == userID {
				bookmarked = true
				break
			}
		}
	}

	return domain.Question{
		ID:          w.ID,
		Author:      domain.Author{ID: w.Author.ID, Name: w.Author.Name},
		Title:       w.Title,
		Excerpt:     w.Excerpt,
		Description: w.Description,
		Tags:        w.Tags,
		Upvotes:     clampNonNegative(w.Upvotes),
		Downvotes:   clampNonNegative(w.Downvotes),
		Bookmarked:  bookmarked,
		Replies:     replies,
		UpdatedAt:   parseWireTime(w.UpdatedAt),
	}
}

func parseWireTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// clampNonNegative guards the counter invariant against a misbehaving server.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
