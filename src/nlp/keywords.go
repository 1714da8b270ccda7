package nlp

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"blog_analyzer/src/logger"

	"github.com/jdkato/prose/v2"
)

// DefaultTopN is the number of keywords returned when no limit is configured
const DefaultTopN = 3

// TaggedToken is a word with its Penn Treebank part-of-speech tag
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger splits text into words and tags each with its part of speech
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// ProseTagger tags text with the prose averaged perceptron model
type ProseTagger struct{}

// NewProseTagger creates a tagger backed by prose
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag tokenizes and tags the text
func (p *ProseTagger) Tag(text string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	tokens := doc.Tokens()
	tagged := make([]TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		tagged = append(tagged, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return tagged, nil
}

// Extractor ranks the most frequent nouns of a text
type Extractor struct {
	tagger Tagger
	topN   int
}

// NewExtractor creates a keyword extractor. A non-positive topN falls back to DefaultTopN.
func NewExtractor(tagger Tagger, topN int) *Extractor {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Extractor{tagger: tagger, topN: topN}
}

// Keywords returns up to topN lowercased nouns ordered by descending frequency.
// Ties keep the order of first occurrence. The result is never nil.
func (e *Extractor) Keywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	tokens, err := e.tagger.Tag(text)
	if err != nil {
		log := logger.With("nlp")
		log.Warn().Err(err).Msg("⚠️ Tagging failed, returning no keywords")
		return []string{}
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.ToLower(tok.Text)
		if utf8.RuneCountInString(word) <= 1 || IsStopword(word) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > e.topN {
		order = order[:e.topN]
	}
	if order == nil {
		return []string{}
	}
	return order
}
