package nodes

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"blog_analyzer/internal/core"
	"blog_analyzer/pkg"
	"blog_analyzer/src/logger"
)

// DetailsNode extracts title, topics and sentiment from the user's article.
// Every failure re-suspends at this step and leaves the fields untouched.
type DetailsNode struct {
	extractor     DetailsExtractor
	maxInputChars int
}

// NewDetailsNode creates the details node. A maxInputChars of zero disables the length check.
func NewDetailsNode(extractor DetailsExtractor, maxInputChars int) *DetailsNode {
	return &DetailsNode{
		extractor:     extractor,
		maxInputChars: maxInputChars,
	}
}

// Execute validates the input and commits the extracted details
func (d *DetailsNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	log := logger.With("nodes").With().Str("session_id", input.SessionID).Str("node", string(d.GetName())).Logger()
	suspend := func(message string) (core.NodeOutput, error) {
		return core.NodeOutput{Fields: input.Fields, Interrupt: message}, nil
	}

	text := input.UserInput
	if strings.TrimSpace(text) == "" {
		log.Info().Msg("Empty input, asking again")
		return suspend(EmptyInputMessage)
	}
	if d.maxInputChars > 0 && utf8.RuneCountInString(text) > d.maxInputChars {
		log.Info().Int("chars", utf8.RuneCountInString(text)).Msg("Input too long, asking again")
		return suspend(inputTooLongMessage(d.maxInputChars))
	}

	start := time.Now()
	result, err := d.extractor.ExtractDetails(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Details extraction failed")
		return suspend(extractionErrorMessage(err))
	}

	switch r := result.(type) {
	case pkg.ValidExtraction:
		fields := input.Fields.Clone()
		fields.UserInput = text
		fields.Title = r.Title
		fields.Topics = append([]string{}, r.Topics...)
		fields.Sentiment = r.Sentiment

		log.Info().
			Int("topics", len(r.Topics)).
			Str("sentiment", string(r.Sentiment)).
			Dur("elapsed", time.Since(start)).
			Msg("🧠 Details extracted")
		return core.NodeOutput{Fields: fields, NextNode: core.StepExtractingKeywords}, nil

	case pkg.InvalidExtraction:
		log.Info().Str("reason", r.Reason).Msg("Model could not extract details")
		return suspend(RetryMessage)

	default:
		return core.NodeOutput{}, fmt.Errorf("unexpected extraction result %T", result)
	}
}

// GetName returns the node name
func (d *DetailsNode) GetName() core.Step {
	return core.StepCollectingDetails
}
