package nodes

import (
	"context"
	"errors"
	"strings"

	"blog_analyzer/internal/core"
	"blog_analyzer/src/logger"
)

var errEmptySummary = errors.New("empty summary returned")

// SummaryNode asks the summarizer for a short summary. A failed summary is replaced
// by an error text so the pipeline always reaches the terminal step.
type SummaryNode struct {
	summarizer Summarizer
}

// NewSummaryNode creates the summary node
func NewSummaryNode(summarizer Summarizer) *SummaryNode {
	return &SummaryNode{summarizer: summarizer}
}

// Execute commits the summary and ends the pipeline
func (s *SummaryNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	fields := input.Fields.Clone()

	summary, err := s.summarizer.Summarize(ctx, fields.UserInput)
	summary = strings.TrimSpace(summary)
	if err == nil && summary == "" {
		err = errEmptySummary
	}
	if err != nil {
		log := logger.With("nodes")
		log.Warn().Err(err).Str("session_id", input.SessionID).Msg("⚠️ Summary generation failed, storing error text")
		summary = summaryErrorText(err)
	}
	fields.Summary = summary

	return core.NodeOutput{Fields: fields, NextNode: core.StepTerminal}, nil
}

// GetName returns the node name
func (s *SummaryNode) GetName() core.Step {
	return core.StepGeneratingSummary
}
