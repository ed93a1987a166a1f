package forum

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/codifyhq/termcodify/app"
	"github.com/codifyhq/termcodify/domain"
)

// Store is the single source of truth for questions and replies. Every
// view reads from it and every mutation goes through it; the tree organizer
// and the screens only ever hold derived, disposable copies.
//
// Bubble Tea runs tea.Cmd functions on their own goroutines, so gateway
// confirmations land off the render goroutine — hence the mutex. The lock
// is never held across a network call: operations validate, call the
// gateway, then re-resolve ids before mutating, so a concurrent delete
// cannot corrupt state (the late mutation simply finds nothing).
type Store struct {
	mu        sync.RWMutex
	questions []domain.Question
	loading   bool
	loadErr   error

	questionSvc app.QuestionService
	replySvc    app.ReplyService
	log         *slog.Logger
}

// Snapshot is a point-in-time copy of the store's observable state.
type Snapshot struct {
	Questions []domain.Question
	Loading   bool
	Err       error
}

// NewStore creates a Store over the given gateway services. Construct one
// at startup and inject it into the screens that need it.
func NewStore(questionSvc app.QuestionService, replySvc app.ReplyService, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		questionSvc: questionSvc,
		replySvc:    replySvc,
		log:         log,
		loading:     true,
	}
}

// Load fetches all questions and replaces the collection wholesale. On
// failure the previous collection is retained and the error is kept as the
// load-failed flag; there is no partial merge.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	questions, err := s.questionSvc.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = err
		s.log.Error("loading questions failed", "err", err)
		return fmt.Errorf("loading questions: %w", err)
	}
	s.questions = questions
	s.loadErr = nil
	return nil
}

// Snapshot returns a copy of the current collection and the loading/error flags.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Questions: cloneQuestions(s.questions),
		Loading:   s.loading,
		Err:       s.loadErr,
	}
}

// Query returns a filtered, ordered view of the collection. See applyQuery
// for the search and sort semantics. The result is a copy; mutating it has
// no effect on the store.
func (s *Store) Query(search, sortOrder string) []domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return applyQuery(cloneQuestions(s.questions), search, sortOrder)
}

// Question looks up a question by id.
func (s *Store) Question(id string) (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			return cloneQuestion(s.questions[i]), true
		}
	}
	return domain.Question{}, false
}

// Ask creates a question through the gateway and, once the server confirms,
// prepends it to the collection. Nothing is shown optimistically.
func (s *Store) Ask(ctx context.Context, payload domain.AskPayload) (domain.Question, error) {
	created, err := s.questionSvc.Ask(ctx, payload)
	if err != nil {
		s.log.Warn("ask question failed", "title", payload.Title, "err", err)
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append([]domain.Question{created}, s.questions...)
	return cloneQuestion(created), nil
}

// VoteQuestion sends a vote and applies the server's counters on
// confirmation. There is no optimistic increment, so a failed vote leaves
// the counters untouched and needs no rollback. Repeated votes are not
// deduplicated here; one-vote-per-user is the server's concern.
func (s *Store) VoteQuestion(ctx context.Context, id string, dir domain.VoteDirection) (domain.Question, error) {
	if _, ok := s.Question(id); !ok {
		return domain.Question{}, domain.ErrNotFound
	}

	updated, err := s.questionSvc.Vote(ctx, id, dir)
	if err != nil {
		s.log.Warn("question vote failed", "question", id, "dir", dir, "err", err)
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Upvotes = updated.Upvotes
			s.questions[i].Downvotes = updated.Downvotes
			return cloneQuestion(s.questions[i]), nil
		}
	}
	return domain.Question{}, domain.ErrNotFound
}

// VoteReply is VoteQuestion for replies: confirm first, then adopt the
// server's counters.
func (s *Store) VoteReply(ctx context.Context, replyID string, dir domain.VoteDirection) (domain.Reply, error) {
	if _, _, ok := s.findReply(replyID); !ok {
		return domain.Reply{}, domain.ErrNotFound
	}

	updated, err := s.replySvc.Vote(ctx, replyID, dir)
	if err != nil {
		s.log.Warn("reply vote failed", "reply", replyID, "dir", dir, "err", err)
		return domain.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for qi := range s.questions {
		for ri := range s.questions[qi].Replies {
			if s.questions[qi].Replies[ri].ID == replyID {
				s.questions[qi].Replies[ri].Upvotes = updated.Upvotes
				s.questions[qi].Replies[ri].Downvotes = updated.Downvotes
				return s.questions[qi].Replies[ri], nil
			}
		}
	}
	return domain.Reply{}, domain.ErrNotFound
}

// ToggleBookmark flips the local flag immediately — bookmarking is a
// display convenience, not shared state — and rolls the flip back if the
// gateway call fails.
func (s *Store) ToggleBookmark(ctx context.Context, id string) error {
	if !s.flipBookmark(id) {
		return domain.ErrNotFound
	}

	if err := s.questionSvc.ToggleBookmark(ctx, id); err != nil {
		s.log.Warn("bookmark toggle failed, rolling back", "question", id, "err", err)
		s.flipBookmark(id)
		return err
	}
	return nil
}

func (s *Store) flipBookmark(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Bookmarked = !s.questions[i].Bookmarked
			return true
		}
	}
	return false
}

// AddReply posts a reply under the named question and appends it to the
// question's reply list once the server confirms. An empty ParentID means
// top-level.
func (s *Store) AddReply(ctx context.Context, questionID string, reply app.NewReply) (domain.Reply, error) {
	if _, ok := s.Question(questionID); !ok {
		return domain.Reply{}, domain.ErrNotFound
	}

	created, err := s.replySvc.Add(ctx, questionID, reply)
	if err != nil {
		s.log.Warn("add reply failed", "question", questionID, "err", err)
		return domain.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			s.questions[i].Replies = append(s.questions[i].Replies, created)
			break
		}
	}
	return created, nil
}

// UpdateReply replaces a reply's text after server confirmation. Authorship
// is enforced server-side; the store performs no local authorization check.
func (s *Store) UpdateReply(ctx context.Context, replyID string, text string) (domain.Reply, error) {
	if _, _, ok := s.findReply(replyID); !ok {
		return domain.Reply{}, domain.ErrNotFound
	}

	updated, err := s.replySvc.Update(ctx, replyID, text)
	if err != nil {
		s.log.Warn("update reply failed", "reply", replyID, "err", err)
		return domain.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for qi := range s.questions {
		for ri := range s.questions[qi].Replies {
			if s.questions[qi].Replies[ri].ID == replyID {
				s.questions[qi].Replies[ri].Text = updated.Text
				s.questions[qi].Replies[ri].UpdatedAt = updated.UpdatedAt
				return s.questions[qi].Replies[ri], nil
			}
		}
	}
	return domain.Reply{}, domain.ErrNotFound
}

// DeleteReply removes a reply once the server confirms. Children are not
// cascade-deleted: their parent reference dangles, and the tree organizer
// demotes them to top level on the next build.
func (s *Store) DeleteReply(ctx context.Context, replyID, questionID string) error {
	if _, _, ok := s.findReply(replyID); !ok {
		return domain.ErrNotFound
	}

	if err := s.replySvc.Delete(ctx, replyID); err != nil {
		s.log.Warn("delete reply failed", "reply", replyID, "err", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for qi := range s.questions {
		if s.questions[qi].ID != questionID {
			continue
		}
		replies := s.questions[qi].Replies
		for ri := range replies {
			if replies[ri].ID == replyID {
				s.questions[qi].Replies = append(replies[:ri:ri], replies[ri+1:]...)
				return nil
			}
		}
	}
	return nil
}

// findReply locates a reply anywhere in the collection.
func (s *Store) findReply(replyID string) (questionID string, reply domain.Reply, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for qi := range s.questions {
		for _, r := range s.questions[qi].Replies {
			if r.ID == replyID {
				return s.questions[qi].ID, r, true
			}
		}
	}
	return "", domain.Reply{}, false
}

// FindReply exposes reply lookup for the screens (e.g. resolving the
// replied-to author for an inline reply).
func (s *Store) FindReply(replyID string) (domain.Reply, bool) {
	_, r, ok := s.findReply(replyID)
	return r, ok
}

func cloneQuestions(in []domain.Question) []domain.Question {
	out := make([]domain.Question, len(in))
	for i, q := range in {
		out[i] = cloneQuestion(q)
	}
	return out
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Replies = append([]domain.Reply(nil), q.Replies...)
	q.Tags = append([]string(nil), q.Tags...)
	return q
}
