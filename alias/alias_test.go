package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry is a minimal in-memory Lookup for exercising Generate without
// depending on nstrie.
type fakeRegistry struct {
	byAlias map[string]string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{byAlias: map[string]string{}}
}

func (r *fakeRegistry) HasAlias(alias string) bool {
	_, ok := r.byAlias[alias]
	return ok
}

func (r *fakeRegistry) Namespace(alias string) (string, bool) {
	ns, ok := r.byAlias[alias]
	return ns, ok
}

func (r *fakeRegistry) add(alias, namespace string) {
	r.byAlias[alias] = namespace
}

func TestGenerateLeftmostHostLabel(t *testing.T) {
	reg := newFakeRegistry()
	got, ok := Generate("http://example.com/", reg)
	require.True(t, ok)
	assert.Equal(t, "example", got)
}

func TestGenerateSameNamespaceShortcut(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("example", "http://example.com/")

	got, ok := Generate("http://example.com/", reg)
	assert.False(t, ok, "re-generating for an already-registered namespace is a no-op")
	assert.Equal(t, "", got)
}

func TestGenerateConflictingTLD(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("example", "http://example.com/")

	got, ok := Generate("http://example.net/", reg)
	require.True(t, ok)
	assert.Equal(t, "examp"+"com", got, "abbrev5 of the conflicting alias plus the conflicting entry's TLD")
}

func TestGenerateNumericFallback(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("example", "http://example.com/")
	reg.add("exampcom", "http://example.net/")

	got, ok := Generate("http://example.org/", reg)
	require.True(t, ok)
	assert.Equal(t, "examp2", got)
}

func TestGenerateNoHostFallsBackToAbbreviation(t *testing.T) {
	reg := newFakeRegistry()
	got, ok := Generate("urn:isbn:namespace", reg)
	require.True(t, ok)
	assert.Equal(t, "urn:i", got)
}
