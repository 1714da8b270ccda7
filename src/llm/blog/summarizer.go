package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Summarizer asks the chat model for a one or two sentence summary
type Summarizer struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewSummarizer compiles the summary template and chat model into a chain
func NewSummarizer(ctx context.Context, chatModel model.BaseChatModel) (*Summarizer, error) {
	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(newSummaryTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating summary chain: %w", err)
	}

	return &Summarizer{chain: chain}, nil
}

// Summarize returns the summary text
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.chain.Invoke(ctx, map[string]any{inputKey: text})
	if err != nil {
		return "", fmt.Errorf("error generating summary: %w", err)
	}
	return strings.TrimSpace(out.Content), nil
}
