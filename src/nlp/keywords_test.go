package nlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagger struct {
	tokens []TaggedToken
	err    error
}

func (f *fakeTagger) Tag(text string) ([]TaggedToken, error) {
	return f.tokens, f.err
}

func nn(words ...string) []TaggedToken {
	tokens := make([]TaggedToken, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, TaggedToken{Text: w, Tag: "NN"})
	}
	return tokens
}

func TestExtractor_RanksByFrequency(t *testing.T) {
	tokens := nn("Cache", "server", "cache", "latency", "Server", "cache")
	e := NewExtractor(&fakeTagger{tokens: tokens}, 2)

	assert.Equal(t, []string{"cache", "server"}, e.Keywords("text"))
}

func TestExtractor_TiesKeepFirstOccurrence(t *testing.T) {
	tokens := nn("zeta", "alpha", "mid", "alpha", "zeta", "mid")
	e := NewExtractor(&fakeTagger{tokens: tokens}, 3)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, e.Keywords("text"))
}

func TestExtractor_FiltersNonNounsStopwordsAndShortTokens(t *testing.T) {
	tokens := []TaggedToken{
		{Text: "runs", Tag: "VBZ"},
		{Text: "quickly", Tag: "RB"},
		{Text: "x", Tag: "NN"},
		{Text: "I", Tag: "NNP"},
		{Text: "Ma", Tag: "NNP"},
		{Text: "databases", Tag: "NNS"},
		{Text: "Postgres", Tag: "NNP"},
	}
	e := NewExtractor(&fakeTagger{tokens: tokens}, 5)

	assert.Equal(t, []string{"databases", "postgres"}, e.Keywords("text"))
}

func TestExtractor_EmptyResults(t *testing.T) {
	e := NewExtractor(&fakeTagger{tokens: []TaggedToken{{Text: "is", Tag: "VBZ"}}}, 3)
	got := e.Keywords("text")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Equal(t, []string{}, e.Keywords("   "))

	failing := NewExtractor(&fakeTagger{err: errors.New("broken")}, 3)
	assert.Equal(t, []string{}, failing.Keywords("text"))
}

func TestNewExtractor_DefaultTopN(t *testing.T) {
	e := NewExtractor(&fakeTagger{}, 0)
	assert.Equal(t, DefaultTopN, e.topN)
}

func TestProseTagger_Deterministic(t *testing.T) {
	text := "The database stores every order. The database replicates each order to a second database."
	e := NewExtractor(NewProseTagger(), 3)

	first := e.Keywords(text)
	second := e.Keywords(text)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, "database", first[0])
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("won't"))
	assert.False(t, IsStopword("golang"))
	assert.Len(t, englishStopwords, 179)
}

func TestProseTagger_RetailSentence(t *testing.T) {
	tagger := NewProseTagger()

	tokens, err := tagger.Tag("AI is transforming retail.")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, TaggedToken{Text: "AI", Tag: "NNP"}, tokens[0])
	// prose reads "retail" after a gerund as an adjective
	assert.Equal(t, TaggedToken{Text: "retail", Tag: "JJ"}, tokens[3])

	e := NewExtractor(tagger, DefaultTopN)
	assert.Equal(t, []string{"ai"}, e.Keywords("AI is transforming retail."))
}
