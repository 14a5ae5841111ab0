// Package iritrie specializes trie.Trie to carry per-node occurrence
// statistics for IRIs observed while scanning a graph. It is the bounded
// working set the inference pipeline mines namespaces from.
package iritrie

import "github.com/andrefs/graphsumm/trie"

// NodeStats carries the three non-negative counters the spec requires.
// Own is the number of times the IRI ending at this node was observed as a
// terminal. Desc is the sum of Own across all descendants. UniqDesc is the
// number of distinct terminal descendants (own occurrences of descendant
// terminals count as one, not their own tally).
type NodeStats struct {
	Own      uint64
	Desc     uint64
	UniqDesc uint64
}

// Trie wraps trie.Trie[NodeStats].
type Trie struct {
	root *trie.Node[NodeStats]
}

// New returns an empty IriTrie.
func New() *Trie {
	return &Trie{root: trie.New[NodeStats]()}
}

// Root exposes the underlying root node, e.g. for SegTree snapshotting.
func (t *Trie) Root() *trie.Node[NodeStats] {
	return t.root
}

// hooks returns the standard insert hooks used together during inference
// insertion: incOwn as the terminal visitor, updateStats as the node
// visitor.
func hooks() trie.Hooks[NodeStats] {
	return trie.Hooks[NodeStats]{
		Terminal: incOwn,
		Node:     updateStats,
	}
}

// incOwn is the terminal visitor: node.own += 1.
func incOwn(n *trie.Node[NodeStats]) {
	v, _ := n.Value()
	v.Own++
	n.Set(v)
}

// updateStats is the node visitor: recomputes desc and uniq_desc from
// immediate children.
func updateStats(n *trie.Node[NodeStats]) {
	var desc, uniq uint64
	for _, r := range n.ChildKeys() {
		child, _ := n.Child(r)
		cv, _ := child.Value()
		desc += cv.Own + cv.Desc
		if cv.Own > 0 {
			uniq++
		}
		uniq += cv.UniqDesc
	}
	v, _ := n.Value()
	v.Desc = desc
	v.UniqDesc = uniq
	n.Set(v)
}

// Insert adds iri to the trie, incrementing Own at the terminal and
// repairing Desc/UniqDesc on every ancestor bottom-up.
func (t *Trie) Insert(iri string) {
	t.root.Insert(iri, NodeStats{}, hooks())
}

// upd_stats_visitor: recompute stats on every ancestor after a removal.
func updStatsRemoveHook(parent *trie.Node[NodeStats], _ rune, _ *trie.Node[NodeStats]) {
	updateStats(parent)
}

// RemovePrefix removes the subtree rooted at namespace, repairing stats on
// the single upward sweep back to the root.
func (t *Trie) RemovePrefix(namespace string) {
	t.root.Remove(namespace, true, updStatsRemoveHook)
}

// RemovePrefixes iterates a list of namespace strings, removing each
// subtree. This is how the aggregator discards IRIs that have been
// classified into a known namespace or garbage-collected.
func (t *Trie) RemovePrefixes(namespaces []string) {
	for _, ns := range namespaces {
		t.RemovePrefix(ns)
	}
}

// Count returns own+desc at the root: the total number of unresolved IRI
// occurrences currently held in the trie.
func (t *Trie) Count() uint64 {
	v, _ := t.root.Value()
	return v.Own + v.Desc
}
