package infer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrefs/graphsumm/nstrie"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFoldsFilePrefixesIntoNamespaceTrie(t *testing.T) {
	path := writeTemp(t, "data.ttl",
		"@prefix ex: <http://example.org/> .\n"+
			"ex:s ex:p ex:o .\n")

	ns := nstrie.New()
	res := Run([]string{path}, ns, 2)

	require.Empty(t, res.FatalErrors)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "infer", res.Tasks[0].Stage)
	assert.Equal(t, uint64(1), res.Tasks[0].Triples)

	entry, namespace, ok := ns.LongestPrefix("http://example.org/Anything")
	require.True(t, ok)
	assert.Equal(t, "ex", entry.Alias)
	assert.Equal(t, "http://example.org/", namespace)
}

func TestRunReportsFatalErrorForMissingFile(t *testing.T) {
	ns := nstrie.New()
	res := Run([]string{filepath.Join(t.TempDir(), "missing.ttl")}, ns, 2)

	require.Len(t, res.FatalErrors, 1)
	assert.Empty(t, res.Tasks)
}

func TestRunLeavesTrieUntouchedWithoutPrefixDeclarations(t *testing.T) {
	// an N-Triples file carries no prefix declarations at all; any
	// namespace it implies is only ever discovered via inference, not via
	// this fold-in step, so the trie should remain untouched here.
	path := writeTemp(t, "data.nt",
		"<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n")

	ns := nstrie.New()
	res := Run([]string{path}, ns, 2)

	require.Empty(t, res.FatalErrors)
	assert.False(t, ns.HasAlias("example"), "no namespace is registered without either a prefix declaration or inference crossing its threshold")
}
