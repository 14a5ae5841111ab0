package prefixes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrefs/graphsumm/nstrie"
)

func TestParseCSVFiltersNonCanonical(t *testing.T) {
	csv := "alias,namespace,status\n" +
		"ex,http://example.org/,canonical\n" +
		"old,http://old.example.org/,deprecated\n"

	entries, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ex", entries[0].Alias)
	assert.Equal(t, "http://example.org/", entries[0].Namespace)
}

func TestParseCSVFiltersBlacklist(t *testing.T) {
	csv := "alias,namespace,status\n" +
		"owl,http://www.w3.org/2002/07/owl#,canonical\n" +
		"ex,http://example.org/,canonical\n"

	entries, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ex", entries[0].Alias)
}

func TestParseCSVFiltersDoubleHash(t *testing.T) {
	csv := "alias,namespace,status\n" +
		"bad,http://example.org/a#b#,canonical\n" +
		"ex,http://example.org/,canonical\n"

	entries, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ex", entries[0].Alias)
}

func TestBuildAssignsCommunitySource(t *testing.T) {
	tr := build([]entry{{Alias: "ex", Namespace: "http://example.org/"}})
	got, namespace, ok := tr.LongestPrefix("http://example.org/Thing")
	require.True(t, ok)
	assert.Equal(t, "ex", got.Alias)
	assert.Equal(t, nstrie.SourceCommunity, got.Source)
	assert.Equal(t, "http://example.org/", namespace)
}
