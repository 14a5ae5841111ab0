package rdfio

import "github.com/rivo/uniseg"

// MaxIRILength is the grapheme-cluster cap applied to every IRI before it
// is forwarded on the message channel (spec.md §4.5, IRI_MAX_LENGTH).
const MaxIRILength = 200

// TruncateGraphemes truncates s to at most n Unicode grapheme clusters,
// using uniseg so combining marks and multi-rune clusters are never split
// mid-grapheme.
func TruncateGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	gr := uniseg.NewGraphemes(s)
	count := 0
	end := 0
	for gr.Next() {
		count++
		if count > n {
			return s[:end]
		}
		_, to := gr.Positions()
		end = to
	}
	return s
}
