package nodes

import (
	"context"

	"blog_analyzer/pkg"
)

// DetailsExtractor converts free text into title, topics and sentiment.
// It returns pkg.InvalidExtraction when it cannot extract them confidently.
type DetailsExtractor interface {
	ExtractDetails(ctx context.Context, text string) (pkg.ExtractionResult, error)
}

// Summarizer produces a short free-text summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// KeywordExtractor ranks the most frequent nouns of a text
type KeywordExtractor interface {
	Keywords(text string) []string
}
