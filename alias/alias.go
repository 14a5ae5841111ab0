// Package alias mints short, collision-free aliases for newly discovered
// namespaces.
package alias

import (
	"fmt"
	"net/url"
	"strings"
)

// Registry is the minimal view of the existing alias -> namespace mapping
// the generator needs; nstrie.Trie satisfies it.
type Registry interface {
	HasAlias(alias string) bool
}

// lookup additionally needs to resolve an alias back to its namespace, to
// implement the "conflict resolves to the exact same namespace" shortcut
// and the TLD/path-segment disambiguation branches.
type Lookup interface {
	Registry
	Namespace(alias string) (string, bool)
}

// abbrev5 returns the first five characters (runes) of s.
func abbrev5(s string) string {
	r := []rune(s)
	if len(r) <= 5 {
		return s
	}
	return string(r[:5])
}

func hostLabels(raw string) []string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	return strings.Split(u.Host, ".")
}

func tld(raw string) string {
	labels := hostLabels(raw)
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1]
}

func lastPathSegment(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Generate mints an alias for namespace against the existing registry,
// following spec.md §4.6 step by step. ok=false means the namespace is
// already known under its conflicting alias's exact value and the caller
// should treat it as already-inserted rather than an error.
func Generate(namespace string, reg Lookup) (string, bool) {
	labels := hostLabels(namespace)
	if len(labels) == 0 {
		// not a URL with a host; fall back to a raw abbreviation so the
		// algorithm remains total.
		cand := abbrev5(namespace)
		for n := 2; ; n++ {
			if !reg.HasAlias(cand) {
				return cand, true
			}
			cand = fmt.Sprintf("%s%d", abbrev5(namespace), n)
		}
	}

	// Candidate 1: leftmost host label.
	cand1 := labels[0]
	if !reg.HasAlias(cand1) {
		return cand1, true
	}

	conflictNS, _ := reg.Namespace(cand1)
	if conflictNS == namespace {
		return "", false
	}

	// Candidate 2: abbrev5(alias) + conflicting TLD, if TLDs differ.
	myTLD, conflTLD := tld(namespace), tld(conflictNS)
	if myTLD != conflTLD && conflTLD != "" {
		cand2 := abbrev5(cand1) + conflTLD
		if !reg.HasAlias(cand2) {
			return cand2, true
		}

		// Candidate 3: abbrev5(alias) + last path segment, if both URLs
		// have path segments and they differ.
		myPath, conflPath := lastPathSegment(namespace), lastPathSegment(conflictNS)
		if myPath != "" && conflPath != "" && myPath != conflPath {
			cand3 := abbrev5(cand1) + myPath
			if !reg.HasAlias(cand3) {
				return cand3, true
			}
		}

		// Fallback: abbrev5(alias) + <n>, smallest unused n >= 2.
		for n := 2; ; n++ {
			cand := fmt.Sprintf("%s%d", abbrev5(cand1), n)
			if !reg.HasAlias(cand) {
				return cand, true
			}
		}
	}

	// TLDs match (or conflict has none): skip straight to the numeric
	// fallback on the base candidate.
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s%d", abbrev5(cand1), n)
		if !reg.HasAlias(cand) {
			return cand, true
		}
	}
}
