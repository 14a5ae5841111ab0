// Package orchestrator sequences a full graphsumm run: community-prefix
// load, inference pass, normalization pass, and summary/output-tree
// assembly. It is graphsumm's analogue of the teacher's Mutator — the
// single place that wires the pipelines together end to end.
package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/andrefs/graphsumm/infer"
	"github.com/andrefs/graphsumm/meta"
	"github.com/andrefs/graphsumm/normalize"
	"github.com/andrefs/graphsumm/nstrie"
	"github.com/andrefs/graphsumm/prefixes"
	"github.com/andrefs/graphsumm/summary"
)

// Options mirrors runner.Options, duplicated here so orchestrator has no
// dependency on the CLI flag-parsing package.
type Options struct {
	Inputs        []string
	Output        string
	InferNS       bool
	IgnoreUnknown bool
	MinOccurs     int
}

// workerCount sizes the pool as max(2, min(files+1, runtime.NumCPU()-2)).
// The aggregator takes one of those slots, so Run hands workerCount-1 to the
// pipelines as their parser-worker limit.
func workerCount(files int) int {
	n := files + 1
	if cores := runtime.NumCPU() - 2; cores < n {
		n = cores
	}
	if n < 2 {
		n = 2
	}
	return n
}

// Run executes a full graphsumm pass and writes the output tree to
// opts.Output. Returns an error when the community prefixes cannot be
// loaded, when the output tree cannot be written, or when every input file
// fails in the normalization pass (the output tree is written first).
func Run(opts Options) error {
	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		return fmt.Errorf("orchestrator: creating output dir: %w", err)
	}

	ns, err := prefixes.Load()
	if err != nil {
		return fmt.Errorf("orchestrator: loading community prefixes: %w", err)
	}

	report := meta.NewReport()
	var errorLines []string
	workers := workerCount(len(opts.Inputs))

	if opts.InferNS {
		gologger.Info().Msgf("running namespace inference over %d file(s)", len(opts.Inputs))
		ires := infer.Run(opts.Inputs, ns, workers-1)
		report.Tasks = append(report.Tasks, ires.Tasks...)
		errorLines = append(errorLines, ires.ErrorLines...)
		for _, e := range ires.FatalErrors {
			gologger.Warning().Msgf("inference: %v", e)
		}
	}

	gologger.Info().Msgf("running normalization over %d file(s)", len(opts.Inputs))
	nres := normalize.Run(opts.Inputs, ns, opts.IgnoreUnknown, workers-1)
	report.Tasks = append(report.Tasks, nres.Tasks...)
	errorLines = append(errorLines, nres.ErrorLines...)
	for _, e := range nres.FatalErrors {
		gologger.Warning().Msgf("normalize: %v", e)
	}
	report.UnknownTerms = countUnknown(nres.Freq)

	minOccurs := opts.MinOccurs
	if minOccurs <= 0 {
		minOccurs = summary.DefaultMinOccurs
	}

	if err := writeSummary(opts.Output, nres, minOccurs); err != nil {
		return err
	}
	if err := writePrefixes(opts.Output, ns); err != nil {
		return err
	}
	if err := writeTasks(opts.Output, report); err != nil {
		return err
	}
	if err := writeErrorsLog(opts.Output, errorLines); err != nil {
		return err
	}

	if len(opts.Inputs) > 0 && len(nres.FatalErrors) == len(opts.Inputs) {
		return fmt.Errorf("orchestrator: every input file failed: %w", nres.FatalErrors[0])
	}

	gologger.Info().Msgf("graphsumm run complete: %s", opts.Output)
	return nil
}

func countUnknown(freq normalize.TripleFreq) uint64 {
	var n uint64
	for k, count := range freq {
		if k.S == normalize.AliasUnknown || k.P == normalize.AliasUnknown || k.O == normalize.AliasUnknown {
			n += count
		}
	}
	return n
}

func writeSummary(outDir string, res normalize.Result, minOccurs int) error {
	f, err := os.Create(filepath.Join(outDir, "output.ttl"))
	if err != nil {
		return fmt.Errorf("orchestrator: creating output.ttl: %w", err)
	}
	defer f.Close()
	return summary.Write(f, res.Freq, res.Groups, minOccurs)
}

func writePrefixes(outDir string, ns *nstrie.Trie) error {
	data, err := ns.Snapshot()
	if err != nil {
		return fmt.Errorf("orchestrator: snapshotting prefixes: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "all-prefixes.json"), data, 0o644)
}

func writeTasks(outDir string, report *meta.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("orchestrator: marshaling tasks.json: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "tasks.json"), data, 0o644)
}

func writeErrorsLog(outDir string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	f, err := os.Create(filepath.Join(outDir, "errors.log"))
	if err != nil {
		return fmt.Errorf("orchestrator: creating errors.log: %w", err)
	}
	defer f.Close()
	for _, l := range lines {
		fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), l)
	}
	return nil
}
