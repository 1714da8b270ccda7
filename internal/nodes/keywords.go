package nodes

import (
	"context"

	"blog_analyzer/internal/core"
	"blog_analyzer/src/logger"
)

// KeywordsNode ranks nouns of the stored input locally. It never fails.
type KeywordsNode struct {
	extractor KeywordExtractor
}

// NewKeywordsNode creates the keyword node
func NewKeywordsNode(extractor KeywordExtractor) *KeywordsNode {
	return &KeywordsNode{extractor: extractor}
}

// Execute commits the keywords and advances to the summary step
func (k *KeywordsNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	fields := input.Fields.Clone()

	keywords := k.extractor.Keywords(fields.UserInput)
	if keywords == nil {
		keywords = []string{}
	}
	fields.Keywords = keywords

	log := logger.With("nodes")
	log.Debug().
		Str("session_id", input.SessionID).
		Strs("keywords", keywords).
		Msg("🔑 Keywords extracted")

	return core.NodeOutput{Fields: fields, NextNode: core.StepGeneratingSummary}, nil
}

// GetName returns the node name
func (k *KeywordsNode) GetName() core.Step {
	return core.StepExtractingKeywords
}
