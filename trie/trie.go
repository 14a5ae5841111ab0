// Package trie implements a generic, char-keyed prefix tree with visitor
// hooks on insert and remove. It is the shared data structure behind both
// the IRI occurrence index (iritrie) and the namespace dictionary (nstrie).
package trie

import "sort"

// Node is a single trie node. It exclusively owns its children; there are
// no back references, so the zero value is a valid, empty root.
type Node[T any] struct {
	value    T
	hasValue bool
	terminal bool
	children map[rune]*Node[T]
}

// New returns an empty trie rooted at a fresh node.
func New[T any]() *Node[T] {
	return &Node[T]{}
}

// Value returns the payload stored at n, if any.
func (n *Node[T]) Value() (T, bool) {
	return n.value, n.hasValue
}

// Set overwrites the payload stored at n. Visitor hooks use this to
// maintain aggregates (e.g. occurrence counters) on nodes they are called
// back on, without going through Insert again.
func (n *Node[T]) Set(v T) {
	n.value = v
	n.hasValue = true
}

// Terminal reports whether n corresponds to a key that was explicitly
// inserted (as opposed to an interior node created only to route to
// deeper keys).
func (n *Node[T]) Terminal() bool {
	return n.terminal
}

// ChildKeys returns the node's child characters in sorted order, so callers
// get the deterministic iteration order the spec requires.
func (n *Node[T]) ChildKeys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Child returns the child reached by r, if any.
func (n *Node[T]) Child(r rune) (*Node[T], bool) {
	c, ok := n.children[r]
	return c, ok
}

// NumChildren reports the number of direct children.
func (n *Node[T]) NumChildren() int {
	return len(n.children)
}

// Hooks bundle the two visitor points insert/remove need.
//
// Terminal is called once, on the node reached by the full key, in place of
// the default "set value" step — this is how counting terminal visitors
// like iritrie's incOwn coexist with the plain "set value" terminal step.
//
// Node is invoked on every node on the path from the terminal back up to
// the root, post-order, so that aggregate-recomputing visitors see
// finalized child state before they run.
type Hooks[T any] struct {
	Terminal func(n *Node[T])
	Node     func(n *Node[T])
}

// Insert walks/creates nodes for each character in key, then marks the
// final node terminal. If hooks.Terminal is set, it runs instead of the
// default "set value" step. hooks.Node, if set, runs on every ancestor on
// the way back up to the root (post-order).
func (n *Node[T]) Insert(key string, value T, hooks Hooks[T]) {
	n.insert([]rune(key), value, hooks)
}

func (n *Node[T]) insert(key []rune, value T, hooks Hooks[T]) {
	if len(key) == 0 {
		n.terminal = true
		if hooks.Terminal != nil {
			hooks.Terminal(n)
		} else {
			n.value = value
			n.hasValue = true
		}
		if hooks.Node != nil {
			hooks.Node(n)
		}
		return
	}

	first := key[0]
	if n.children == nil {
		n.children = make(map[rune]*Node[T])
	}
	child, ok := n.children[first]
	if !ok {
		child = &Node[T]{}
		n.children[first] = child
	}
	child.insert(key[1:], value, hooks)
	if hooks.Node != nil {
		hooks.Node(n)
	}
}

// RemoveHook is invoked on each ancestor encountered while bubbling up
// after a removal, with the branching character and the removed subtree
// (nil when nothing was removed along that edge), so stats can be
// repaired in a single upward sweep.
type RemoveHook[T any] func(parent *Node[T], branch rune, removed *Node[T])

// Remove deletes key. If removeSubtree is true the entire subtree rooted at
// key's last node is deleted; otherwise only the terminal flag at that node
// is cleared. Non-terminal leaves bubble up and their parent edges are
// dropped. Removing a missing key is a no-op. Returns the value held at the
// removed terminal node, if any.
func (n *Node[T]) Remove(key string, removeSubtree bool, cb RemoveHook[T]) (T, bool) {
	var zero T
	val, wasTerminal, _, _ := n.remove([]rune(key), removeSubtree, cb)
	if !wasTerminal {
		return zero, false
	}
	return val, true
}

// remove returns (value, wasTerminal, removed, bubbleUp): wasTerminal tells
// whether the node at key was a terminal (so value is its payload), removed
// whether anything was deleted or cleared (which drives cb on the
// ancestors), and bubbleUp that n itself became a non-terminal leaf and
// should be unlinked from its parent.
func (n *Node[T]) remove(key []rune, removeSubtree bool, cb RemoveHook[T]) (T, bool, bool, bool) {
	var zero T
	if len(key) == 0 {
		if !n.terminal {
			return zero, false, false, false
		}
		val := n.value
		n.terminal = false
		n.hasValue = false
		n.value = zero
		return val, true, true, len(n.children) == 0
	}

	first := key[0]
	child, ok := n.children[first]
	if !ok {
		return zero, false, false, false
	}

	if len(key) == 1 {
		if removeSubtree || len(child.children) == 0 {
			val, wasTerminal := child.value, child.terminal
			delete(n.children, first)
			if cb != nil {
				cb(n, first, child)
			}
			return val, wasTerminal, true, len(n.children) == 0 && !n.terminal
		}
		if !child.terminal {
			return zero, false, false, false
		}
		val := child.value
		child.terminal = false
		child.hasValue = false
		var z T
		child.value = z
		return val, true, true, false
	}

	val, wasTerminal, removed, bubble := child.remove(key[1:], removeSubtree, cb)
	if !removed {
		return zero, false, false, false
	}
	if bubble {
		delete(n.children, first)
		if cb != nil {
			cb(n, first, child)
		}
		return val, wasTerminal, true, len(n.children) == 0 && !n.terminal
	}
	if cb != nil {
		cb(n, first, nil)
	}
	return val, wasTerminal, true, false
}

// Find walks key to completion and returns the node and the traversed
// string iff the path exists fully (and is terminal, when mustBeTerminal).
func (n *Node[T]) Find(key string, mustBeTerminal bool) (*Node[T], string, bool) {
	runes := []rune(key)
	cur := n
	for _, r := range runes {
		child, ok := cur.children[r]
		if !ok {
			return nil, "", false
		}
		cur = child
	}
	if mustBeTerminal && !cur.terminal {
		return nil, "", false
	}
	return cur, key, true
}

// LongestPrefix walks as far as possible along key, remembering the last
// terminal node seen (or the deepest reached node, when mustBeTerminal is
// false). Returns the matched node and the prefix string consumed to reach
// it. Returns ok=false if no such node exists (e.g. mustBeTerminal and no
// terminal ancestor at all, including the root).
func (n *Node[T]) LongestPrefix(key string, mustBeTerminal bool) (*Node[T], string, bool) {
	runes := []rune(key)
	cur := n
	var lastTerm *Node[T]
	var lastTermLen int
	if cur.terminal {
		lastTerm = cur
		lastTermLen = 0
	}
	i := 0
	for ; i < len(runes); i++ {
		child, ok := cur.children[runes[i]]
		if !ok {
			break
		}
		cur = child
		if cur.terminal {
			lastTerm = cur
			lastTermLen = i + 1
		}
	}
	if mustBeTerminal {
		if lastTerm == nil {
			return nil, "", false
		}
		return lastTerm, string(runes[:lastTermLen]), true
	}
	return cur, string(runes[:i]), true
}

// Entry is one (key, node) pair yielded by Iterate.
type Entry[T any] struct {
	Key  string
	Node *Node[T]
}

// Iterate performs an in-order traversal enumerating terminal nodes only,
// in lexicographic key order.
func (n *Node[T]) Iterate() []Entry[T] {
	var out []Entry[T]
	n.iterate("", &out)
	return out
}

func (n *Node[T]) iterate(prefix string, out *[]Entry[T]) {
	if n.terminal {
		*out = append(*out, Entry[T]{Key: prefix, Node: n})
	}
	for _, r := range n.ChildKeys() {
		n.children[r].iterate(prefix+string(r), out)
	}
}
