package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertFind(t *testing.T) {
	root := New[int]()
	root.Insert("abc", 1, Hooks[int]{})

	node, key, ok := root.Find("abc", true)
	require.True(t, ok)
	assert.Equal(t, "abc", key)
	v, has := node.Value()
	assert.True(t, has)
	assert.Equal(t, 1, v)

	_, _, ok = root.Find("ab", true)
	assert.False(t, ok, "interior node with no explicit insert must not be terminal")
}

func TestRemoveSubtreeBubblesUp(t *testing.T) {
	root := New[int]()
	root.Insert("a", 1, Hooks[int]{})
	root.Insert("abc", 1, Hooks[int]{})
	root.Insert("abcde", 1, Hooks[int]{})

	_, removed := root.Remove("abcd", true, nil)
	assert.False(t, removed, "abcd was never a terminal")

	node, _, ok := root.Find("abc", true)
	require.True(t, ok)
	assert.True(t, node.Terminal())

	_, _, ok = root.Find("abcde", true)
	assert.False(t, ok, "abcde's subtree should have been removed")
}

func TestLongestPrefix(t *testing.T) {
	root := New[string]()
	root.Insert("http://example.org/", "ex", Hooks[string]{})
	root.Insert("http://example.org/sub/", "exs", Hooks[string]{})

	node, prefix, ok := root.LongestPrefix("http://example.org/sub/X", true)
	require.True(t, ok)
	assert.Equal(t, "http://example.org/sub/", prefix)
	v, _ := node.Value()
	assert.Equal(t, "exs", v)

	node, prefix, ok = root.LongestPrefix("http://example.org/Y", true)
	require.True(t, ok)
	assert.Equal(t, "http://example.org/", prefix)
	v, _ = node.Value()
	assert.Equal(t, "ex", v)

	_, _, ok = root.LongestPrefix("http://other.org/", true)
	assert.False(t, ok)
}

func TestIterateLexicographic(t *testing.T) {
	root := New[int]()
	root.Insert("b", 2, Hooks[int]{})
	root.Insert("a", 1, Hooks[int]{})
	root.Insert("ab", 3, Hooks[int]{})

	entries := root.Iterate()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"a", "ab", "b"}, []string{entries[0].Key, entries[1].Key, entries[2].Key})
}

func TestInsertHooksRunBottomUp(t *testing.T) {
	root := New[int]()
	var order []string
	hooks := Hooks[int]{
		Terminal: func(n *Node[int]) { n.Set(99) },
		Node: func(n *Node[int]) {
			v, _ := n.Value()
			order = append(order, "node-visited-with-"+string(rune('0'+v)))
		},
	}
	root.Insert("a", 1, hooks)
	// the node hook runs on the terminal itself (value 99) then on root
	// (still zero-value, since root's Terminal hook never ran).
	require.Len(t, order, 2)
}
