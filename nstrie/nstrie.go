// Package nstrie implements the namespace dictionary: a trie keyed by full
// namespace IRI, valued by (alias, provenance), used to classify IRIs by
// longest terminal-prefix match.
package nstrie

import (
	"encoding/json"
	"sort"

	"github.com/andrefs/graphsumm/trie"
)

// Source records where a namespace entry came from.
type Source int

const (
	SourceUser Source = iota
	SourceCommunity
	SourceGraphFile
	SourceInference
)

func (s Source) String() string {
	switch s {
	case SourceUser:
		return "user"
	case SourceCommunity:
		return "community"
	case SourceGraphFile:
		return "graph-file"
	case SourceInference:
		return "inference"
	default:
		return "unknown"
	}
}

// Entry is the payload carried at a terminal node.
type Entry struct {
	Alias     string
	Namespace string
	Source    Source
}

// Trie is keyed by namespace IRI; only terminal nodes carry a value.
// Invariant: aliases are unique across the trie.
type Trie struct {
	root    *trie.Node[Entry]
	aliases map[string]string // alias -> namespace, for uniqueness checks
}

// New returns an empty NamespaceTrie.
func New() *Trie {
	return &Trie{root: trie.New[Entry](), aliases: map[string]string{}}
}

// HasAlias reports whether alias is already in use.
func (t *Trie) HasAlias(alias string) bool {
	_, ok := t.aliases[alias]
	return ok
}

// Namespace resolves alias back to the namespace it was registered for,
// satisfying alias.Lookup.
func (t *Trie) Namespace(alias string) (string, bool) {
	ns, ok := t.aliases[alias]
	return ns, ok
}

// Add inserts namespace with the given alias and source. Returns false
// (without mutating anything) if the alias is already taken by a different
// namespace, since the spec treats that collision as "caller treats the
// incoming namespace as already-known; no error" — the alias generator is
// responsible for avoiding the collision before calling Add.
func (t *Trie) Add(namespace, alias string, source Source) bool {
	if existing, ok := t.aliases[alias]; ok && existing != namespace {
		return false
	}
	t.root.Insert(namespace, Entry{Alias: alias, Namespace: namespace, Source: source}, trie.Hooks[Entry]{})
	t.aliases[alias] = namespace
	return true
}

// LongestPrefix returns the deepest terminal ancestor of iri, plus the
// namespace string matched, or ok=false if no namespace covers iri.
func (t *Trie) LongestPrefix(iri string) (Entry, string, bool) {
	n, prefix, ok := t.root.LongestPrefix(iri, true)
	if !ok {
		return Entry{}, "", false
	}
	v, _ := n.Value()
	return v, prefix, true
}

// Covers reports whether iri has any terminal ancestor namespace at all —
// used by the inference pipeline to skip IRIs already classified.
func (t *Trie) Covers(iri string) bool {
	_, _, ok := t.LongestPrefix(iri)
	return ok
}

// AddCommunity loads a batch of (namespace, alias) pairs, honoring the
// insertion-precedence invariant: entries are inserted shortest-namespace
// first so a later, longer namespace is free to win the longest-prefix
// query over an already-registered shorter one. When allowSubns is false,
// a candidate namespace that is already covered by an existing terminal
// ancestor is skipped.
func (t *Trie) AddCommunity(entries []Entry, allowSubns bool) {
	sort.Slice(entries, func(i, j int) bool { return len(entries[i].Namespace) < len(entries[j].Namespace) })
	for _, e := range entries {
		if !allowSubns && t.Covers(e.Namespace) {
			continue
		}
		t.Add(e.Namespace, e.Alias, e.Source)
	}
}

// snapshot is the on-disk shape: alias -> [namespace, source].
type snapshot map[string][2]string

// Snapshot serializes the trie as alias -> [namespace, source] JSON, the
// shape persisted to all-prefixes.json.
func (t *Trie) Snapshot() ([]byte, error) {
	out := make(snapshot, len(t.aliases))
	for _, e := range t.root.Iterate() {
		v, _ := e.Node.Value()
		out[v.Alias] = [2]string{v.Namespace, v.Source.String()}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Load restores a trie previously produced by Snapshot.
func Load(data []byte) (*Trie, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	t := New()
	for alias, pair := range snap {
		t.Add(pair[0], alias, parseSource(pair[1]))
	}
	return t, nil
}

func parseSource(s string) Source {
	switch s {
	case "user":
		return SourceUser
	case "community":
		return SourceCommunity
	case "graph-file":
		return SourceGraphFile
	case "inference":
		return SourceInference
	default:
		return SourceUser
	}
}
