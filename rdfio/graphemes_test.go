package rdfio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateGraphemesShorterThanLimit(t *testing.T) {
	assert.Equal(t, "abc", TruncateGraphemes("abc", 10))
}

func TestTruncateGraphemesExactLimit(t *testing.T) {
	s := strings.Repeat("x", MaxIRILength)
	assert.Equal(t, s, TruncateGraphemes(s, MaxIRILength))
}

func TestTruncateGraphemesOverLimit(t *testing.T) {
	s := strings.Repeat("x", MaxIRILength+50)
	got := TruncateGraphemes(s, MaxIRILength)
	assert.Len(t, []rune(got), MaxIRILength)
}

func TestTruncateGraphemesZero(t *testing.T) {
	assert.Equal(t, "", TruncateGraphemes("abc", 0))
}
