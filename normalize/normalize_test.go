package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrefs/graphsumm/nstrie"
	"github.com/andrefs/graphsumm/rdfio"
)

func TestClassifyIRI(t *testing.T) {
	ns := nstrie.New()
	ns.Add("http://example.org/", "ex", nstrie.SourceUser)
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindIRI, IRI: "http://example.org/Thing"}, ns, &iris, &blanks, &literals)
	assert.Equal(t, "ex", got.alias)
	assert.Equal(t, "http://example.org/", got.namespace)
	assert.False(t, got.isUnknown)
	assert.Equal(t, uint64(1), iris)
}

func TestClassifyUnknownIRI(t *testing.T) {
	ns := nstrie.New()
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindIRI, IRI: "http://unmapped.org/Thing"}, ns, &iris, &blanks, &literals)
	assert.Equal(t, AliasUnknown, got.alias)
	assert.True(t, got.isUnknown)
}

func TestClassifyBlank(t *testing.T) {
	ns := nstrie.New()
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindBlank}, ns, &iris, &blanks, &literals)
	assert.Equal(t, AliasBlank, got.alias)
	assert.True(t, got.isBlank)
	assert.Equal(t, uint64(1), blanks)
}

func TestClassifyLangTaggedLiteral(t *testing.T) {
	ns := nstrie.New()
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindLiteral, Lang: "en"}, ns, &iris, &blanks, &literals)
	assert.Equal(t, AliasRDF, got.alias)
	assert.True(t, got.isDatatype)
	assert.Equal(t, uint64(1), literals)
}

func TestClassifyPlainLiteralFallsBackToXSD(t *testing.T) {
	ns := nstrie.New()
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindLiteral, IRI: "http://www.w3.org/2001/XMLSchema#string"}, ns, &iris, &blanks, &literals)
	assert.Equal(t, AliasXSD, got.alias)
	assert.True(t, got.isDatatype)
}

func TestClassifyCustomDatatype(t *testing.T) {
	ns := nstrie.New()
	ns.Add("http://example.org/", "ex", nstrie.SourceUser)
	var iris, blanks, literals uint64

	got := classify(rdfio.Term{Kind: rdfio.KindLiteral, IRI: "http://example.org/myType"}, ns, &iris, &blanks, &literals)
	assert.Equal(t, "ex", got.alias)
	assert.True(t, got.isDatatype)
}

func TestSortedKeysDeterministicOrder(t *testing.T) {
	freq := TripleFreq{
		{S: "ex", P: "ex", O: "xsd", IsDatatype: true}:  1,
		{S: "ex", P: "ex", O: "ex2", IsDatatype: false}: 1,
		{S: "a", P: "b", O: "c"}:                        1,
	}
	keys := SortedKeys(freq)
	assert := assert.New(t)
	if assert.Len(keys, 3) {
		assert.Equal(TripleKey{S: "a", P: "b", O: "c"}, keys[0])
		assert.Equal("ex", keys[1].S)
		assert.False(keys[1].IsDatatype, "for the same s/p, object ex2 sorts before xsd, so the GroupsLink entry comes first")
		assert.True(keys[2].IsDatatype)
	}
}
