// Package normalize implements the second pass over the input files: every
// triple term is classified through the finalized NamespaceTrie and folded
// into a four-level frequency map keyed by namespace alias.
package normalize

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/andrefs/graphsumm/meta"
	"github.com/andrefs/graphsumm/nstrie"
	"github.com/andrefs/graphsumm/rdfio"
)

// Sentinel aliases for unresolved terms, per spec.md §3.
const (
	AliasUnknown = "UNKNOWN"
	AliasBlank   = "BLANK"
	AliasXSD     = "xsd"
	AliasRDF     = "rdf"
)

// ChannelCapacity matches the inference pipeline's bounded channel.
const ChannelCapacity = 100

// TripleKey is one (subject-alias, predicate-alias, object-alias) edge.
type TripleKey struct {
	S, P, O    string
	IsDatatype bool
}

// TripleFreq is the four-level nested frequency map: s -> p -> o ->
// is_datatype -> count, flattened here to a map keyed by TripleKey for
// simplicity of Go map semantics (equivalent shape, same invariants).
type TripleFreq map[TripleKey]uint64

// Group is a (alias, namespace) pair accumulated for the summary's
// namespace declarations; only namespaces actually used are recorded.
type Group struct {
	Alias     string
	Namespace string
}

// Result is the outcome of a normalization pass.
type Result struct {
	Freq        TripleFreq
	Groups      map[string]Group // alias -> Group
	Tasks       []meta.TaskRecord
	ErrorLines  []string
	FatalErrors []error
}

type normalizedTerm struct {
	alias      string
	namespace  string
	isDatatype bool
	isBlank    bool
	isUnknown  bool
}

type mkind int

const (
	kindTriple mkind = iota
	kindFinished
	kindFatalError
)

type message struct {
	kind mkind
	path string

	s, p, o normalizedTerm
	dropped bool

	triples, iris, blanks, literals uint64
	started, finished               time.Time
	err                              error
}

// Run executes the normalization pipeline over paths using the finalized
// NamespaceTrie ns. When ignoreUnknown is true, triples with any
// unresolved term are dropped instead of being tagged Unknown. At most
// workers files are parsed at once.
func Run(paths []string, ns *nstrie.Trie, ignoreUnknown bool, workers int) Result {
	if workers < 1 {
		workers = 1
	}
	ch := make(chan message, ChannelCapacity)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			sem <- struct{}{}
			defer func() { <-sem }()
			worker(p, ns, ignoreUnknown, ch, &wg)
		}(p)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	return aggregate(ch, len(paths))
}

func worker(path string, ns *nstrie.Trie, ignoreUnknown bool, ch chan<- message, wg *sync.WaitGroup) {
	defer wg.Done()
	started := time.Now()

	stream, closer, err := rdfio.Open(path)
	if err != nil {
		ch <- message{kind: kindFatalError, path: path, err: err}
		return
	}
	defer closer.Close()

	var triples, iris, blanks, literals uint64
	for {
		t, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			ch <- message{kind: kindFatalError, path: path, err: err}
			return
		}
		triples++

		s := classify(t.Subject, ns, &iris, &blanks, &literals)
		p := classify(t.Predicate, ns, &iris, &blanks, &literals)
		o := classify(t.Object, ns, &iris, &blanks, &literals)

		dropped := ignoreUnknown && (s.isUnknown || p.isUnknown || o.isUnknown)
		ch <- message{kind: kindTriple, path: path, s: s, p: p, o: o, dropped: dropped}
	}

	ch <- message{kind: kindFinished, path: path, triples: triples, iris: iris, blanks: blanks, literals: literals, started: started, finished: time.Now()}
}

// classify resolves a single term to a normalizedTerm. Named nodes are
// matched via longest_prefix. A literal without a language tag (typed, or
// plain and so carrying xsd:string) is resolved the same way on its
// datatype IRI, falling back to the xsd sentinel when no namespace matches;
// a language-tagged literal routes to the rdf group.
func classify(t rdfio.Term, ns *nstrie.Trie, iris, blanks, literals *uint64) normalizedTerm {
	switch t.Kind {
	case rdfio.KindBlank:
		*blanks++
		return normalizedTerm{alias: AliasBlank, isBlank: true}
	case rdfio.KindLiteral:
		*literals++
		if t.Lang != "" {
			return normalizedTerm{alias: AliasRDF, isDatatype: true}
		}
		entry, namespace, ok := ns.LongestPrefix(t.IRI)
		if !ok {
			return normalizedTerm{alias: AliasXSD, isDatatype: true}
		}
		return normalizedTerm{alias: entry.Alias, namespace: namespace, isDatatype: true}
	default: // KindIRI
		*iris++
		entry, namespace, ok := ns.LongestPrefix(t.IRI)
		if !ok {
			return normalizedTerm{alias: AliasUnknown, isUnknown: true}
		}
		return normalizedTerm{alias: entry.Alias, namespace: namespace}
	}
}

func aggregate(ch <-chan message, fileCount int) Result {
	res := Result{Freq: TripleFreq{}, Groups: map[string]Group{}}
	running := fileCount

	record := func(t normalizedTerm) {
		if t.isBlank || t.alias == AliasUnknown || t.namespace == "" {
			return
		}
		res.Groups[t.alias] = Group{Alias: t.alias, Namespace: t.namespace}
	}

	for running > 0 {
		m, ok := <-ch
		if !ok {
			break
		}
		switch m.kind {
		case kindTriple:
			if m.dropped {
				continue
			}
			record(m.s)
			record(m.p)
			record(m.o)
			key := TripleKey{S: m.s.alias, P: m.p.alias, O: m.o.alias, IsDatatype: m.o.isDatatype}
			res.Freq[key]++
		case kindFinished:
			running--
			res.Tasks = append(res.Tasks, meta.TaskRecord{
				Path: m.path, Stage: "normalize",
				Triples: m.triples, IRIs: m.iris, Blanks: m.blanks, Literals: m.literals,
				Started: m.started, Finished: m.finished,
			})
		case kindFatalError:
			running--
			res.FatalErrors = append(res.FatalErrors, m.err)
			res.ErrorLines = append(res.ErrorLines, "fatal parse error in "+m.path+": "+m.err.Error())
		}
	}

	return res
}

// SortedKeys returns the TripleFreq's keys in a deterministic order,
// grouped first by subject alias, then predicate, then object, so the
// summary writer emits statements in a stable, reproducible sequence.
func SortedKeys(freq TripleFreq) []TripleKey {
	keys := make([]TripleKey, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.S != b.S {
			return a.S < b.S
		}
		if a.P != b.P {
			return a.P < b.P
		}
		if a.O != b.O {
			return a.O < b.O
		}
		return !a.IsDatatype && b.IsDatatype
	})
	return keys
}
