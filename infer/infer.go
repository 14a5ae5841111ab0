// Package infer implements the streaming namespace-inference pipeline:
// N-1 parser workers feed a single aggregator that maintains a bounded
// IriTrie, periodically mining new namespaces from its segment structure
// and garbage-collecting rarely-seen prefixes.
package infer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/andrefs/graphsumm/alias"
	"github.com/andrefs/graphsumm/iritrie"
	"github.com/andrefs/graphsumm/meta"
	"github.com/andrefs/graphsumm/nstrie"
	"github.com/andrefs/graphsumm/rdfio"
	"github.com/andrefs/graphsumm/segtree"
)

// Tunables per spec.md §4.5/§9.
const (
	ChannelCapacity   = 100
	ResourceHeartbeat = 1_000_000
	IriTrieSize       = 1_000_000
)

// TriplePos identifies which term position an IRI occupied in its triple.
type TriplePos int

const (
	PosSubject TriplePos = iota
	PosPredicate
	PosObject
)

// mkindFields carries every possible message payload; only the fields for
// the active kind are meaningful. A tagged struct (instead of an interface)
// keeps the channel allocation-free in the hot path.
type mkindFields struct {
	kind mkind
	path string

	iri string
	pos TriplePos

	namespace string
	prefAlias string

	triples, iris, blanks, literals uint64
	started, finished               time.Time

	err error
}

type mkind int

const (
	kindResource mkind = iota
	kindPrefixDecl
	kindFinished
	kindFatalError
)

// Result is what Run returns: the task records, error log lines and fatal
// errors of this pass, for meta/telemetry. Namespaces found during the pass
// are added directly to the trie passed to Run.
type Result struct {
	Tasks       []meta.TaskRecord
	ErrorLines  []string
	FatalErrors []error
}

// Run executes the inference pipeline over paths, adding newly inferred
// namespaces to ns as it goes (source=Inference), and returns per-file task
// records. At most workers files are parsed at once.
func Run(paths []string, ns *nstrie.Trie, workers int) Result {
	if workers < 1 {
		workers = 1
	}
	ch := make(chan mkindFields, ChannelCapacity)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			sem <- struct{}{}
			defer func() { <-sem }()
			worker(p, ch, &wg)
		}(p)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	return aggregate(ch, ns, len(paths))
}

func worker(path string, ch chan<- mkindFields, wg *sync.WaitGroup) {
	defer wg.Done()
	started := time.Now()

	stream, closer, err := rdfio.Open(path)
	if err != nil {
		ch <- mkindFields{kind: kindFatalError, path: path, err: err}
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
			ch <- mkindFields{kind: kindFatalError, path: path, err: err}
			return
		}
		triples++
		emitTerm(ch, t.Subject, PosSubject, &iris, &blanks, &literals)
		emitTerm(ch, t.Predicate, PosPredicate, &iris, &blanks, &literals)
		emitTerm(ch, t.Object, PosObject, &iris, &blanks, &literals)
	}

	for pfx, ns := range stream.Prefixes() {
		ch <- mkindFields{kind: kindPrefixDecl, path: path, namespace: ns, prefAlias: pfx}
	}
	ch <- mkindFields{kind: kindFinished, path: path, triples: triples, iris: iris, blanks: blanks, literals: literals, started: started, finished: time.Now()}
}

func emitTerm(ch chan<- mkindFields, t rdfio.Term, pos TriplePos, iris, blanks, literals *uint64) {
	switch t.Kind {
	case rdfio.KindIRI:
		*iris++
		ch <- mkindFields{kind: kindResource, iri: truncate(t.IRI), pos: pos}
	case rdfio.KindBlank:
		*blanks++
	case rdfio.KindLiteral:
		*literals++
	}
}

func truncate(iri string) string {
	return rdfio.TruncateGraphemes(iri, rdfio.MaxIRILength)
}

// aggregate owns the IriTrie and the namespace trie for the duration of the
// pass; it is the only goroutine that touches either.
func aggregate(ch <-chan mkindFields, ns *nstrie.Trie, fileCount int) Result {
	iriTrie := iritrie.New()
	prefixDecls := map[string]string{} // namespace -> alias, collected across all files
	running := fileCount

	var res Result
	var received uint64

	for running > 0 {
		m, ok := <-ch
		if !ok {
			break
		}
		switch m.kind {
		case kindResource:
			if ns.Covers(m.iri) {
				continue
			}
			iriTrie.Insert(m.iri)
			received++
			if received%ResourceHeartbeat == 0 {
				gologger.Info().Msgf("infer: %d resources processed", received)
				maintenance(iriTrie, ns)
			}
		case kindPrefixDecl:
			prefixDecls[m.namespace] = m.prefAlias
		case kindFinished:
			running--
			res.Tasks = append(res.Tasks, meta.TaskRecord{
				Path: m.path, Stage: "infer",
				Triples: m.triples, IRIs: m.iris, Blanks: m.blanks, Literals: m.literals,
				Started: m.started, Finished: m.finished,
			})
		case kindFatalError:
			running--
			res.FatalErrors = append(res.FatalErrors, fmt.Errorf("%s: %w", m.path, m.err))
			res.ErrorLines = append(res.ErrorLines, fmt.Sprintf("fatal parse error in %s: %v", m.path, m.err))
		}
	}

	// final maintenance pass, then fold in every file-declared prefix.
	maintenance(iriTrie, ns)
	for namespace, a := range prefixDecls {
		iriTrie.RemovePrefix(namespace)
		if _, matched, ok := ns.LongestPrefix(namespace); ok && matched == namespace {
			continue
		}
		if a == "" {
			if minted, ok := alias.Generate(namespace, ns); ok {
				a = minted
			}
		}
		if a != "" {
			ns.Add(namespace, a, nstrie.SourceGraphFile)
		}
	}

	return res
}

// maintenance runs SegTree inference over the current IriTrie snapshot when
// it has grown past IriTrieSize, promotes inferred namespaces into ns, and
// prunes both inferred and garbage-collected prefixes from the IriTrie.
func maintenance(iriTrie *iritrie.Trie, ns *nstrie.Trie) {
	if iriTrie.Count() <= IriTrieSize {
		return
	}

	seg := segtree.BuildFromIriTrie(iriTrie.Root())
	inferred, gc := segtree.Infer(seg)

	var toRemove []string
	for _, c := range inferred {
		if !ns.Covers(c.Namespace) {
			if a, ok := alias.Generate(c.Namespace, ns); ok {
				ns.Add(c.Namespace, a, nstrie.SourceInference)
			}
		}
		toRemove = append(toRemove, c.Namespace)
	}
	toRemove = append(toRemove, gc...)
	iriTrie.RemovePrefixes(toRemove)
}
