// Package summary writes the namespace-level graph summary as reified
// Turtle, following the fixed base IRI and statement shape of spec.md §4.8.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/andrefs/graphsumm/normalize"
)

// BaseIRI is the fixed base the summary graph is minted under.
const BaseIRI = "http://andrefs.com/graph-summ/v1"

// DefaultMinOccurs is the occurrence threshold below which an edge is
// omitted from the summary.
const DefaultMinOccurs = 10

// Write emits freq and groups as Turtle to w, keeping only edges whose
// count is >= minOccurs. Statement ids are minted #t0001, #t0002, ... in
// the deterministic iteration order normalize.SortedKeys provides.
func Write(w io.Writer, freq normalize.TripleFreq, groups map[string]normalize.Group, minOccurs int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "@base <%s> .\n", BaseIRI)
	fmt.Fprintf(bw, "@prefix : <%s#> .\n", BaseIRI)
	fmt.Fprintf(bw, "@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .\n")
	fmt.Fprintf(bw, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n")

	aliases := make([]string, 0, len(groups))
	for a := range groups {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	for _, a := range aliases {
		g := groups[a]
		fmt.Fprintf(bw, "<#%s> <%s#namespacePrefix> <%s> .\n", g.Alias, BaseIRI, g.Namespace)
	}
	bw.WriteString("\n")

	id := 0
	for _, key := range normalize.SortedKeys(freq) {
		count := freq[key]
		if count < uint64(minOccurs) {
			continue
		}
		id++
		tid := fmt.Sprintf("#t%04d", id)

		linkType := "GroupsLink"
		if key.IsDatatype {
			linkType = "DatatypeLink"
		}
		fmt.Fprintf(bw, "<%s> a <%s#%s> .\n", tid, BaseIRI, linkType)
		fmt.Fprintf(bw, "<%s> a rdf:Statement .\n", tid)
		fmt.Fprintf(bw, "<%s> rdf:subject <#%s> .\n", tid, key.S)
		fmt.Fprintf(bw, "<%s> rdf:predicate <#%s> .\n", tid, key.P)
		fmt.Fprintf(bw, "<%s> rdf:object <#%s> .\n", tid, key.O)
		fmt.Fprintf(bw, "<%s> <%s#occurrences> \"%d\"^^xsd:integer .\n\n", tid, BaseIRI, count)
	}

	return bw.Flush()
}
