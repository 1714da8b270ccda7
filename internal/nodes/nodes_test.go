package nodes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blog_analyzer/internal/core"
	"blog_analyzer/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	result pkg.ExtractionResult
	err    error
	calls  []string
}

func (f *fakeExtractor) ExtractDetails(ctx context.Context, text string) (pkg.ExtractionResult, error) {
	f.calls = append(f.calls, text)
	return f.result, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return f.summary, f.err
}

type fakeKeywords struct {
	keywords []string
}

func (f *fakeKeywords) Keywords(text string) []string {
	return f.keywords
}

func validExtraction() pkg.ValidExtraction {
	return pkg.ValidExtraction{
		Title:     "Go in Production",
		Topics:    []string{"go", "backend"},
		Sentiment: pkg.SentimentPositive,
	}
}

func newPipeline(t *testing.T, ext *fakeExtractor, sum *fakeSummarizer, kw *fakeKeywords) *core.Processor {
	t.Helper()
	p, err := NewPipeline(PipelineConfig{
		Extractor:     ext,
		Summarizer:    sum,
		Keywords:      kw,
		MaxInputChars: 50,
	})
	require.NoError(t, err)
	return p
}

func TestAskNode(t *testing.T) {
	node := NewAskNode()
	assert.Equal(t, core.StepAwaitingInput, node.GetName())

	out, err := node.Execute(context.Background(), core.NodeInput{})
	require.NoError(t, err)
	assert.Equal(t, AskPrompt, out.Interrupt)

	out, err = node.Execute(context.Background(), core.NodeInput{Resumed: true, UserInput: "x"})
	require.NoError(t, err)
	assert.Empty(t, out.Interrupt)
	assert.Equal(t, core.StepCollectingDetails, out.NextNode)
}

func TestDetailsNode_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		extractor *fakeExtractor
		interrupt string
		called    bool
	}{
		{
			name:      "blank input",
			input:     "   ",
			extractor: &fakeExtractor{result: validExtraction()},
			interrupt: EmptyInputMessage,
		},
		{
			name:      "too long",
			input:     strings.Repeat("é", 51),
			extractor: &fakeExtractor{result: validExtraction()},
			interrupt: "Your input is too long. Please provide an article shorter than 50 characters.",
		},
		{
			name:      "extractor error",
			input:     "an article",
			extractor: &fakeExtractor{err: errors.New("timeout")},
			interrupt: "LLM error while extracting blog details: timeout",
			called:    true,
		},
		{
			name:      "invalid extraction",
			input:     "an article",
			extractor: &fakeExtractor{result: pkg.InvalidExtraction{Reason: "no topics"}},
			interrupt: RetryMessage,
			called:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewDetailsNode(tt.extractor, 50)
			prev := core.Fields{UserInput: "older"}

			out, err := node.Execute(context.Background(), core.NodeInput{UserInput: tt.input, Resumed: true, Fields: prev})
			require.NoError(t, err)
			assert.Equal(t, tt.interrupt, out.Interrupt)
			assert.Equal(t, prev, out.Fields)
			assert.Equal(t, tt.called, len(tt.extractor.calls) == 1)
		})
	}
}

func TestDetailsNode_ValidCommitsInput(t *testing.T) {
	node := NewDetailsNode(&fakeExtractor{result: validExtraction()}, 0)

	out, err := node.Execute(context.Background(), core.NodeInput{UserInput: "an article", Resumed: true})
	require.NoError(t, err)

	assert.Empty(t, out.Interrupt)
	assert.Equal(t, core.StepExtractingKeywords, out.NextNode)
	assert.Equal(t, "an article", out.Fields.UserInput)
	assert.Equal(t, "Go in Production", out.Fields.Title)
	assert.Equal(t, []string{"go", "backend"}, out.Fields.Topics)
	assert.Equal(t, pkg.SentimentPositive, out.Fields.Sentiment)
}

func TestKeywordsNode_NilBecomesEmpty(t *testing.T) {
	node := NewKeywordsNode(&fakeKeywords{})

	out, err := node.Execute(context.Background(), core.NodeInput{Fields: core.Fields{UserInput: "a"}})
	require.NoError(t, err)
	assert.NotNil(t, out.Fields.Keywords)
	assert.Empty(t, out.Fields.Keywords)
	assert.Equal(t, core.StepGeneratingSummary, out.NextNode)
}

func TestSummaryNode_Fallback(t *testing.T) {
	out, err := NewSummaryNode(&fakeSummarizer{err: errors.New("rate limited")}).
		Execute(context.Background(), core.NodeInput{})
	require.NoError(t, err)
	assert.Equal(t, "LLM error: rate limited", out.Fields.Summary)
	assert.Equal(t, core.StepTerminal, out.NextNode)

	out, err = NewSummaryNode(&fakeSummarizer{summary: "  "}).
		Execute(context.Background(), core.NodeInput{})
	require.NoError(t, err)
	assert.Equal(t, "LLM error: empty summary returned", out.Fields.Summary)
}

func TestPipeline_HappyPath(t *testing.T) {
	ext := &fakeExtractor{result: validExtraction()}
	p := newPipeline(t, ext, &fakeSummarizer{summary: "A summary."}, &fakeKeywords{keywords: []string{"service", "latency"}})
	ctx := context.Background()

	snap, err := p.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, core.StepAwaitingInput, snap.Step)
	assert.Equal(t, AskPrompt, snap.PendingMessage)

	snap, err = p.Resume(ctx, snap, "Go services keep latency low.")
	require.NoError(t, err)

	assert.Equal(t, core.StepTerminal, snap.Step)
	assert.True(t, core.IsComplete(snap))
	assert.Equal(t, "Go services keep latency low.", snap.Fields.UserInput)
	assert.Equal(t, []string{"service", "latency"}, snap.Fields.Keywords)
	assert.Equal(t, "A summary.", snap.Fields.Summary)
}

func TestPipeline_RetryThenSucceed(t *testing.T) {
	ext := &fakeExtractor{result: pkg.InvalidExtraction{}}
	p := newPipeline(t, ext, &fakeSummarizer{summary: "ok"}, &fakeKeywords{keywords: []string{}})
	ctx := context.Background()

	snap, err := p.Start(ctx, "s1")
	require.NoError(t, err)

	snap, err = p.Resume(ctx, snap, "gibberish")
	require.NoError(t, err)
	assert.Equal(t, core.StepCollectingDetails, snap.Step)
	assert.Equal(t, RetryMessage, snap.PendingMessage)
	assert.Empty(t, snap.Fields.UserInput)

	snap, err = p.Resume(ctx, snap, "")
	require.NoError(t, err)
	assert.Equal(t, EmptyInputMessage, snap.PendingMessage)
	assert.Len(t, ext.calls, 1)

	ext.result = validExtraction()
	snap, err = p.Resume(ctx, snap, "a real article")
	require.NoError(t, err)
	assert.Equal(t, core.StepTerminal, snap.Step)
	assert.Equal(t, "a real article", snap.Fields.UserInput)
	assert.True(t, core.IsComplete(snap))
}

func TestPipeline_SummaryFailureStillCompletes(t *testing.T) {
	p := newPipeline(t, &fakeExtractor{result: validExtraction()}, &fakeSummarizer{err: errors.New("down")}, &fakeKeywords{keywords: []string{"go"}})
	ctx := context.Background()

	snap, err := p.Start(ctx, "s1")
	require.NoError(t, err)
	snap, err = p.Resume(ctx, snap, "article")
	require.NoError(t, err)

	assert.Equal(t, core.StepTerminal, snap.Step)
	assert.Equal(t, "LLM error: down", snap.Fields.Summary)
	assert.True(t, core.IsComplete(snap))
}
