// Package meta collects per-file task timings and term counters across a
// run, the way the teacher's telemetry layer tracks permutation counts, and
// serializes them to tasks.json.
package meta

import (
	"time"

	"github.com/google/uuid"
)

// TaskRecord is one file's worth of per-stage bookkeeping.
type TaskRecord struct {
	Path     string    `json:"path"`
	Stage    string    `json:"stage"` // "infer" or "normalize"
	Triples  uint64    `json:"triples"`
	IRIs     uint64    `json:"iris"`
	Blanks   uint64    `json:"blanks"`
	Literals uint64    `json:"literals"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// Duration returns how long the task ran.
func (t TaskRecord) Duration() time.Duration {
	return t.Finished.Sub(t.Started)
}

// Report aggregates every TaskRecord produced by a run, tagged with a run
// id so separate runs over the same output directory can be told apart.
type Report struct {
	RunID        string       `json:"run_id"`
	Tasks        []TaskRecord `json:"tasks"`
	InferRounds  uint64       `json:"infer_rounds"`  // housekeeping passes during inference; no stage sets it, so it is always 0
	UnknownTerms uint64       `json:"unknown_terms"` // triples with at least one term that has no matching namespace
}

// NewReport returns an empty Report tagged with a fresh run id.
func NewReport() *Report {
	return &Report{RunID: uuid.New().String()}
}

// Add appends a completed TaskRecord.
func (r *Report) Add(t TaskRecord) {
	r.Tasks = append(r.Tasks, t)
}
