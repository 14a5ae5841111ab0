// Package segtree builds a segment-keyed tree from an IriTrie snapshot and
// runs the bounded top-k namespace-inference algorithm over it.
package segtree

import (
	"net/url"
	"sort"

	"github.com/andrefs/graphsumm/iritrie"
	"github.com/andrefs/graphsumm/trie"
)

// Tunables per spec.md §4.4/§9. MinNSSize adopts the production setting
// (1000), not the 20 seen in one historical revision.
const (
	MinNSSize       = 1000
	MinDomainOccurs = 100
	MaxNS           = 5
)

// Node is a SegTree node; edges are whole URL segments.
type Node struct {
	Value    uint64
	Children map[string]*Node
}

func newNode() *Node {
	return &Node{Children: map[string]*Node{}}
}

// CouldBeNS reports whether n's value clears the namespace-candidate bar.
func (n *Node) CouldBeNS() bool {
	return n.Value >= MinNSSize
}

// BuildFromIriTrie performs a depth-first traversal of root, accumulating
// characters into a segment and splitting on "/" or "#" once the candidate
// boundary parses as a URL with a host — this is what prevents the
// "http://" colon-slash-slash from being split into meaningless two
// character namespaces.
func BuildFromIriTrie(root *trie.Node[iritrie.NodeStats]) *Node {
	res := newNode()
	buildAux(res, root, "", "")
	return res
}

func leafValue(n *trie.Node[iritrie.NodeStats]) uint64 {
	v, _ := n.Value()
	return v.Own + v.Desc
}

func buildAux(dst *Node, src *trie.Node[iritrie.NodeStats], wordAcc, prevStr string) {
	keys := src.ChildKeys()
	if len(keys) == 0 {
		if wordAcc != "" {
			dst.Children[wordAcc] = &Node{Value: leafValue(src), Children: map[string]*Node{}}
		}
		return
	}

	for _, c := range keys {
		child, _ := src.Child(c)
		if c == '/' || c == '#' {
			cand := prevStr + wordAcc + string(c)
			u, err := url.Parse(cand)
			if err != nil || u.Host == "" {
				// not a real segment boundary; keep accumulating
				buildAux(dst, child, wordAcc+string(c), prevStr)
				return
			}
			seg := wordAcc + string(c)
			sub, ok := dst.Children[seg]
			if !ok {
				sub = &Node{Value: leafValue(child), Children: map[string]*Node{}}
				dst.Children[seg] = sub
			}
			buildAux(sub, child, "", prevStr+seg)
		} else {
			buildAux(dst, child, wordAcc+string(c), prevStr)
		}
	}
}

// Candidate is an inference-round namespace candidate, ordered by
// (value desc, children asc) so the largest, least-branchy candidates are
// preferred for expansion.
type Candidate struct {
	Namespace string
	Value     uint64
	node      *Node
}

func (c Candidate) numChildren() int { return len(c.node.Children) }

// Infer runs the bounded top-k expansion algorithm described in spec.md
// §4.4 over root (the SegTree root, an empty-string node whose children
// are the top-level namespace candidates). Returns the inferred namespace
// candidates and the list of root children garbage-collected for being
// below MinDomainOccurs.
func Infer(root *Node) (inferred []Candidate, gc []string) {
	h := map[string]Candidate{}

	for seg, child := range root.Children {
		if child.Value < MinDomainOccurs {
			gc = append(gc, seg)
		}
		if child.CouldBeNS() {
			h[seg] = Candidate{Namespace: seg, Value: child.Value, node: child}
		}
	}

	expandAux(h)

	for _, c := range h {
		inferred = append(inferred, c)
	}
	sort.Slice(inferred, func(i, j int) bool {
		if inferred[i].Value != inferred[j].Value {
			return inferred[i].Value > inferred[j].Value
		}
		return inferred[i].numChildren() < inferred[j].numChildren()
	})
	sort.Strings(gc)
	return inferred, gc
}

func expandAux(h map[string]Candidate) {
	expanded := 0
	for expanded < MaxNS {
		// pick the best candidate (value desc, children asc) whose
		// qualifying children are non-empty and whose replacement keeps
		// |h| within MaxNS.
		keys := make([]string, 0, len(h))
		for k := range h {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ci, cj := h[keys[i]], h[keys[j]]
			if ci.Value != cj.Value {
				return ci.Value > cj.Value
			}
			return ci.numChildren() < cj.numChildren()
		})

		var chosen *Candidate
		var qualifying []string
		for _, k := range keys {
			c := h[k]
			var q []string
			for seg, child := range c.node.Children {
				if child.CouldBeNS() {
					q = append(q, seg)
				}
			}
			if len(q) == 0 {
				continue
			}
			if len(q)+len(h)-1 > MaxNS {
				continue
			}
			cc := c
			chosen = &cc
			qualifying = q
			break
		}
		if chosen == nil {
			return
		}

		delete(h, chosen.Namespace)
		for _, seg := range qualifying {
			child := chosen.node.Children[seg]
			ns := chosen.Namespace + seg
			h[ns] = Candidate{Namespace: ns, Value: child.Value, node: child}
			expanded++
		}
	}
}
