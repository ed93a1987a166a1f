package forum

import "github.com/codifyhq/termcodify/domain"

// ReplyNode is a reply plus its nested children, ready for rendering.
type ReplyNode struct {
	domain.Reply
	Children []*ReplyNode
}

// BuildThread converts a question's flat reply list into a forest of
// nested nodes. A reply whose ParentID resolves to another reply in the
// same list becomes that reply's child; everything else — no parent, or a
// dangling parent reference — is placed at top level. Input order is
// preserved among siblings, so calling it twice on the same list yields
// structurally identical trees.
//
// Construction is iterative and map-based, O(n) time and space; only
// rendering walks the tree recursively.
func BuildThread(replies []domain.Reply) []*ReplyNode {
	if len(replies) == 0 {
		return nil
	}

	nodes := make(map[string]*ReplyNode, len(replies))
	for _, r := range replies {
		nodes[r.ID] = &ReplyNode{Reply: r}
	}

	roots := make([]*ReplyNode, 0, len(replies))
	for _, r := range replies {
		node := nodes[r.ID]
		parent, ok := nodes[r.ParentID]
		if r.ParentID == "" || !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// FlatReply is a reply paired with its nesting depth, produced by Flatten
// for linear cursor navigation over a rendered thread.
type FlatReply struct {
	domain.Reply
	Depth int
}

// Flatten walks the forest depth-first and returns every node exactly once,
// parents before children.
func Flatten(forest []*ReplyNode) []FlatReply {
	var out []FlatReply
	var walk func(nodes []*ReplyNode, depth int)
	walk = func(nodes []*ReplyNode, depth int) {
		for _, n := range nodes {
			out = append(out, FlatReply{Reply: n.Reply, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return out
}

// CountNodes returns the number of nodes across the forest, children included.
func CountNodes(forest []*ReplyNode) int {
	total := 0
	var walk func(nodes []*ReplyNode)
	walk = func(nodes []*ReplyNode) {
		for _, n := range nodes {
			total++
			walk(n.Children)
		}
	}
	walk(forest)
	return total
}
