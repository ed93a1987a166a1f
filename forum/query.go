package forum

import (
	"sort"
	"strings"

	"github.com/codifyhq/termcodify/domain"
)

// Sort orders accepted by Store.Query.
const (
	SortLatest  = "latest"  // Collection order: server-assigned recency.
	SortUpvotes = "upvotes" // Descending by upvote count.
	SortReplies = "replies" // Descending by reply count.
)

// NextSort cycles through the sort orders, for the list screen's sort key.
func NextSort(s string) string {
	switch s {
	case SortLatest:
		return SortUpvotes
	case SortUpvotes:
		return SortReplies
	default:
		return SortLatest
	}
}

// NormalizeSort maps unknown sort values to SortLatest.
func NormalizeSort(s string) string {
	switch s {
	case SortUpvotes, SortReplies:
		return s
	default:
		return SortLatest
	}
}

// applyQuery filters by case-insensitive substring match on title or excerpt,
// then orders the result. Sorting is stable: ties keep collection order.
// The input slice is not modified.
func applyQuery(questions []domain.Question, search, sortOrder string) []domain.Question {
	result := make([]domain.Question, 0, len(questions))

	term := strings.ToLower(strings.TrimSpace(search))
	for _, q := range questions {
		if term != "" &&
			!strings.Contains(strings.ToLower(q.Title), term) &&
			!strings.Contains(strings.ToLower(q.Excerpt), term) {
			continue
		}
		result = append(result, q)
	}

	switch NormalizeSort(sortOrder) {
	case SortUpvotes:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Upvotes > result[j].Upvotes
		})
	case SortReplies:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ReplyCount() > result[j].ReplyCount()
		})
	}

	return result
}
