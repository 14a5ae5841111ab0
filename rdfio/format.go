package rdfio

import (
	"path/filepath"
	"strings"
)

// Format is the RDF serialization a Stream parses.
type Format int

const (
	FormatTurtle Format = iota
	FormatNTriples
	FormatNQuads
)

func (f Format) String() string {
	switch f {
	case FormatNTriples:
		return "nt"
	case FormatNQuads:
		return "nq"
	default:
		return "ttl"
	}
}

// Compression is a transparently-unwrapped outer envelope.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
)

// DetectFormat inspects path's extension(s) per spec.md §6: .bz2/.gz are
// stripped first as a compression envelope, then the inner extension picks
// the parser — .nt -> N-Triples, .nq -> N-Quads (graph discarded),
// anything else -> Turtle.
func DetectFormat(path string) (Format, Compression) {
	compression := CompressionNone
	inner := path

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		compression = CompressionGzip
		inner = strings.TrimSuffix(path, filepath.Ext(path))
	case ".bz2":
		compression = CompressionBzip2
		inner = strings.TrimSuffix(path, filepath.Ext(path))
	}

	switch strings.ToLower(filepath.Ext(inner)) {
	case ".nt":
		return FormatNTriples, compression
	case ".nq":
		return FormatNQuads, compression
	default:
		return FormatTurtle, compression
	}
}
