package nodes

import (
	"blog_analyzer/internal/core"
)

// PipelineConfig wires the collaborators of the analysis pipeline
type PipelineConfig struct {
	Extractor     DetailsExtractor
	Summarizer    Summarizer
	Keywords      KeywordExtractor
	MaxInputChars int
}

// NewPipeline builds the processor for the fixed four-step analysis flow
func NewPipeline(cfg PipelineConfig) (*core.Processor, error) {
	return core.NewProcessor(core.DefaultFlow(),
		NewAskNode(),
		NewDetailsNode(cfg.Extractor, cfg.MaxInputChars),
		NewKeywordsNode(cfg.Keywords),
		NewSummaryNode(cfg.Summarizer),
	)
}
