// Package rdfio adapts github.com/knakk/rdf into the streaming triple
// iterator the inference and normalization pipelines consume. RDF parsing
// proper is an external collaborator per spec.md §1 — this file is the
// seam, not a parser.
package rdfio

import (
	"errors"
	"io"
	"strings"

	"github.com/knakk/rdf"
)

// ErrRDFStar is returned when a quoted triple (RDF-star) is encountered.
// knakk/rdf has no notion of quoted triples, so a term position beginning
// with "<<" surfaces as a plain decode error; Stream reclassifies that
// specific shape as ErrRDFStar so callers can apply the fatal/unimplemented
// policy spec.md §7 requires instead of a generic parse-error policy.
var ErrRDFStar = errors.New("rdfio: RDF-star quoted triples are not supported")

// TermKind distinguishes the RDF term shapes the pipelines care about.
type TermKind int

const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// Term is graphsumm's reduced view of an rdf.Term: enough to classify a
// triple's subject/predicate/object without carrying the full knakk/rdf
// type across package boundaries.
type Term struct {
	Kind TermKind
	IRI  string // set when Kind == KindIRI, or the literal's datatype IRI
	Lang string // set when Kind == KindLiteral and the literal has a language tag
}

// Triple is graphsumm's reduced view of rdf.Triple.
type Triple struct {
	Subject, Predicate, Object Term
}

// Stream is the streaming triple iterator contract the pipelines consume.
type Stream interface {
	// Next returns the next triple, or io.EOF once the source is
	// exhausted.
	Next() (Triple, error)
	// Prefixes returns the prefix declarations observed in the file.
	// Only complete once Next has returned io.EOF.
	Prefixes() map[string]string
}

type tripleStream struct {
	dec      *rdf.TripleDecoder
	prefixes *prefixScanner
	isQuad   bool
	quadDec  *rdf.QuadDecoder
}

// Open opens path, auto-detecting compression and serialization from its
// extension, and returns a Stream plus a Closer releasing every resource
// opened along the way.
func Open(path string) (Stream, io.Closer, error) {
	raw, closer, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}
	scanner := newPrefixScanner(raw)

	format, _ := DetectFormat(path)
	switch format {
	case FormatNQuads:
		qd := rdf.NewQuadDecoder(scanner, rdf.FormatNT)
		return &tripleStream{quadDec: qd, prefixes: scanner, isQuad: true}, closer, nil
	case FormatNTriples:
		return &tripleStream{dec: rdf.NewTripleDecoder(scanner, rdf.FormatNT), prefixes: scanner}, closer, nil
	default:
		return &tripleStream{dec: rdf.NewTripleDecoder(scanner, rdf.FormatTTL), prefixes: scanner}, closer, nil
	}
}

func (s *tripleStream) Next() (Triple, error) {
	var t rdf.Triple
	var err error
	if s.isQuad {
		var q rdf.Quad
		q, err = s.quadDec.Decode()
		t = q.Statement
	} else {
		t, err = s.dec.Decode()
	}
	if err != nil {
		if err == io.EOF {
			return Triple{}, io.EOF
		}
		if looksLikeRDFStar(err) {
			return Triple{}, ErrRDFStar
		}
		return Triple{}, err
	}
	return Triple{
		Subject:   toTerm(t.Subj),
		Predicate: toTerm(t.Pred),
		Object:    toTerm(t.Obj),
	}, nil
}

func (s *tripleStream) Prefixes() map[string]string {
	return s.prefixes.Prefixes()
}

func looksLikeRDFStar(err error) bool {
	return strings.Contains(err.Error(), "<<")
}

func toTerm(t rdf.Term) Term {
	switch v := t.(type) {
	case *rdf.Blank:
		return Term{Kind: KindBlank}
	case *rdf.URI:
		return Term{Kind: KindIRI, IRI: v.URI}
	case *rdf.Literal:
		term := Term{Kind: KindLiteral, Lang: v.Lang}
		// RDF1.1 gives untyped/string literals an implicit xsd:string
		// datatype (knakk/rdf follows this per its own doc comment), so a
		// plain literal and an explicit "x"^^xsd:string are indistinguishable
		// here; both resolve through the namespace trie on DataType.URI.
		if v.DataType != nil && v.Lang == "" {
			term.IRI = v.DataType.URI
		}
		return term
	default:
		return Term{Kind: KindBlank}
	}
}
