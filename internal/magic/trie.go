package magic

// trieNode stores signature patterns sharing a start offset. Patterns
// with a common byte prefix share nodes; a node is terminal for every
// type label whose full pattern ends at it.
type trieNode struct {
	children map[byte]*trieNode
	labels   []string
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[byte]*trieNode),
	}
}

// insert walks pattern down the trie, creating nodes as needed, and
// marks the final node terminal for label. Inserting the same
// (pattern, label) pair twice leaves the trie unchanged.
func (n *trieNode) insert(pattern []byte, label string) {
	curr := n
	for _, b := range pattern {
		next, ok := curr.children[b]
		if !ok {
			next = newTrieNode()
			curr.children[b] = next
		}
		curr = next
	}

	for _, l := range curr.labels {
		if l == label {
			return
		}
	}
	curr.labels = append(curr.labels, label)
}

// walk follows buf down the trie and reports the labels of the deepest
// terminal node reached, together with the number of bytes consumed to
// get there. A pattern needing bytes beyond len(buf) can never win.
func (n *trieNode) walk(buf []byte) (labels []string, depth int) {
	curr := n
	for i, b := range buf {
		next, ok := curr.children[b]
		if !ok {
			break
		}
		curr = next

		if len(curr.labels) > 0 {
			labels = curr.labels
			depth = i + 1
		}
	}
	return labels, depth
}
