package rdfio

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

// openReader opens path and transparently unwraps gzip/bzip2 as detected
// by DetectFormat, returning a reader plus a closer that releases every
// resource opened along the way (file handle and/or decompressor).
func openReader(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	_, compression := DetectFormat(path)
	switch compression {
	case CompressionGzip:
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return gr, multiCloser{gr, f}, nil
	case CompressionBzip2:
		br, err := bzip2.NewReader(f, nil)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return br, multiCloser{br, f}, nil
	default:
		return f, f, nil
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// prefixPattern matches Turtle/SPARQL-style prefix declarations:
//
//	@prefix ex: <http://example.org/> .
//	PREFIX ex: <http://example.org/>
var prefixPattern = regexp.MustCompile(`(?i)^\s*(?:@prefix|prefix)\s+([A-Za-z][\w.-]*)?:\s*<([^>]*)>`)

// prefixScanner wraps a source reader, inspecting each line for a prefix
// declaration as it streams through, while forwarding bytes unchanged to
// whatever decoder consumes it. Declarations accumulate in Prefixes and are
// stable once the wrapped reader reaches EOF.
type prefixScanner struct {
	src      *bufio.Reader
	pending  []byte
	prefixes map[string]string
}

func newPrefixScanner(r io.Reader) *prefixScanner {
	return &prefixScanner{src: bufio.NewReader(r), prefixes: map[string]string{}}
}

func (p *prefixScanner) Read(buf []byte) (int, error) {
	for len(p.pending) == 0 {
		line, err := p.src.ReadBytes('\n')
		if len(line) > 0 {
			p.scanLine(line)
			p.pending = line
		}
		if err != nil {
			if len(p.pending) > 0 {
				break
			}
			return 0, err
		}
	}
	n := copy(buf, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *prefixScanner) scanLine(line []byte) {
	m := prefixPattern.FindSubmatch(line)
	if m == nil {
		return
	}
	alias := strings.TrimSpace(string(m[1]))
	ns := string(m[2])
	p.prefixes[alias] = ns
}

// Prefixes returns whatever prefix declarations have been observed so far;
// it is only complete once the stream has been fully drained.
func (p *prefixScanner) Prefixes() map[string]string {
	return p.prefixes
}
