package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrefs/graphsumm/meta"
	"github.com/andrefs/graphsumm/normalize"
	"github.com/andrefs/graphsumm/nstrie"
)

func TestWorkerCountBounds(t *testing.T) {
	// never below 2, regardless of files or NumCPU.
	assert.GreaterOrEqual(t, workerCount(0), 2)
	assert.GreaterOrEqual(t, workerCount(1), 2)

	// never more than files+1.
	assert.LessOrEqual(t, workerCount(1), 2)
}

func TestCountUnknown(t *testing.T) {
	freq := normalize.TripleFreq{
		{S: "ex", P: "ex", O: "ex"}:                              3,
		{S: normalize.AliasUnknown, P: "ex", O: "ex"}:             2,
		{S: "ex", P: "ex", O: normalize.AliasUnknown}:             5,
	}
	assert.Equal(t, uint64(7), countUnknown(freq))
}

func TestWriteSummaryCreatesOutputFile(t *testing.T) {
	dir := t.TempDir()
	res := normalize.Result{
		Freq:   normalize.TripleFreq{{S: "ex", P: "ex", O: "ex"}: 100},
		Groups: map[string]normalize.Group{"ex": {Alias: "ex", Namespace: "http://example.org/"}},
	}
	require.NoError(t, writeSummary(dir, res, 10))

	data, err := os.ReadFile(filepath.Join(dir, "output.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#t0001")
}

func TestWritePrefixesSnapshotsTrie(t *testing.T) {
	dir := t.TempDir()
	ns := nstrie.New()
	ns.Add("http://example.org/", "ex", nstrie.SourceUser)
	require.NoError(t, writePrefixes(dir, ns))

	data, err := os.ReadFile(filepath.Join(dir, "all-prefixes.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://example.org/")
}

func TestWriteTasksMarshalsReport(t *testing.T) {
	dir := t.TempDir()
	report := meta.NewReport()
	report.Add(meta.TaskRecord{Path: "a.ttl", Stage: "infer"})
	require.NoError(t, writeTasks(dir, report))

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	var got meta.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report.RunID, got.RunID)
	require.Len(t, got.Tasks, 1)
}

func TestWriteErrorsLogSkippedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeErrorsLog(dir, nil))
	_, err := os.Stat(filepath.Join(dir, "errors.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteErrorsLogWritesLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeErrorsLog(dir, []string{"fatal parse error in a.ttl: boom"}))

	data, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
}
