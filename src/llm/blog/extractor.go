package blog

import (
	"context"
	"fmt"
	"time"

	"blog_analyzer/pkg"
	"blog_analyzer/src/logger"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// DetailsExtractor asks the chat model for title, topics and sentiment
type DetailsExtractor struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewDetailsExtractor compiles the template and chat model into a chain
func NewDetailsExtractor(ctx context.Context, chatModel model.BaseChatModel) (*DetailsExtractor, error) {
	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(newDetailsTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating details chain: %w", err)
	}

	return &DetailsExtractor{chain: chain}, nil
}

// ExtractDetails runs the chain and parses the answer
func (d *DetailsExtractor) ExtractDetails(ctx context.Context, text string) (pkg.ExtractionResult, error) {
	start := time.Now()

	out, err := d.chain.Invoke(ctx, map[string]any{inputKey: text})
	if err != nil {
		return nil, fmt.Errorf("error generating details: %w", err)
	}

	result, err := ParseDetails(out.Content)
	if err != nil {
		return nil, err
	}

	log := logger.With("llm")
	log.Debug().
		Int("input_chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("Details response parsed")

	return result, nil
}
