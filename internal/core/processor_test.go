package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNode struct {
	name  Step
	exec  func(input NodeInput) (NodeOutput, error)
	calls int
}

func (s *stubNode) Execute(ctx context.Context, input NodeInput) (NodeOutput, error) {
	s.calls++
	return s.exec(input)
}

func (s *stubNode) GetName() Step {
	return s.name
}

func passThrough(name Step) *stubNode {
	return &stubNode{name: name, exec: func(input NodeInput) (NodeOutput, error) {
		return NodeOutput{Fields: input.Fields}, nil
	}}
}

func suspendOnEntry(name Step, message string) *stubNode {
	return &stubNode{name: name, exec: func(input NodeInput) (NodeOutput, error) {
		if input.Resumed {
			return NodeOutput{Fields: input.Fields}, nil
		}
		return NodeOutput{Fields: input.Fields, Interrupt: message}, nil
	}}
}

func newTestProcessor(t *testing.T, nodes ...Node) *Processor {
	t.Helper()
	p, err := NewProcessor(DefaultFlow(), nodes...)
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return fixed }
	return p
}

func TestNewProcessor_RequiresEveryStep(t *testing.T) {
	_, err := NewProcessor(DefaultFlow(), passThrough(StepAwaitingInput), passThrough(StepCollectingDetails))
	assert.Error(t, err)

	_, err = NewProcessor(DefaultFlow(), nil)
	assert.Error(t, err)

	_, err = NewProcessor(DefaultFlow(), passThrough(StepTerminal))
	assert.Error(t, err)
}

func TestProcessor_StartSuspendsAtEntry(t *testing.T) {
	ask := suspendOnEntry(StepAwaitingInput, "give me text")
	p := newTestProcessor(t, ask,
		passThrough(StepCollectingDetails),
		passThrough(StepExtractingKeywords),
		passThrough(StepGeneratingSummary),
	)

	snap, err := p.Start(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", snap.SessionID)
	assert.Equal(t, StepAwaitingInput, snap.Step)
	assert.Equal(t, "give me text", snap.PendingMessage)
	assert.True(t, snap.Suspended())
	assert.Equal(t, 1, ask.calls)
}

func TestProcessor_ResumeRunsToTerminal(t *testing.T) {
	details := &stubNode{name: StepCollectingDetails, exec: func(input NodeInput) (NodeOutput, error) {
		f := input.Fields.Clone()
		f.UserInput = input.UserInput
		f.Topics = []string{"go"}
		return NodeOutput{Fields: f}, nil
	}}
	summary := &stubNode{name: StepGeneratingSummary, exec: func(input NodeInput) (NodeOutput, error) {
		f := input.Fields.Clone()
		f.Summary = "short"
		return NodeOutput{Fields: f}, nil
	}}
	p := newTestProcessor(t,
		suspendOnEntry(StepAwaitingInput, "prompt"),
		details,
		passThrough(StepExtractingKeywords),
		summary,
	)

	start, err := p.Start(context.Background(), "s1")
	require.NoError(t, err)

	done, err := p.Resume(context.Background(), start, "hello")
	require.NoError(t, err)

	assert.Equal(t, StepTerminal, done.Step)
	assert.Empty(t, done.PendingMessage)
	assert.False(t, done.Suspended())
	assert.Equal(t, "hello", done.Fields.UserInput)
	assert.Equal(t, []string{"go"}, done.Fields.Topics)
	assert.Equal(t, "short", done.Fields.Summary)

	// the input snapshot is left untouched
	assert.Equal(t, StepAwaitingInput, start.Step)
	assert.Equal(t, "prompt", start.PendingMessage)
	assert.Nil(t, start.Fields.Topics)
}

func TestProcessor_ResumeSuspendsAgain(t *testing.T) {
	attempts := 0
	details := &stubNode{name: StepCollectingDetails, exec: func(input NodeInput) (NodeOutput, error) {
		attempts++
		if attempts == 1 {
			return NodeOutput{Fields: input.Fields, Interrupt: "again"}, nil
		}
		return NodeOutput{Fields: input.Fields}, nil
	}}
	p := newTestProcessor(t,
		suspendOnEntry(StepAwaitingInput, "prompt"),
		details,
		passThrough(StepExtractingKeywords),
		passThrough(StepGeneratingSummary),
	)

	snap, err := p.Start(context.Background(), "s1")
	require.NoError(t, err)

	snap, err = p.Resume(context.Background(), snap, "bad")
	require.NoError(t, err)
	assert.Equal(t, StepCollectingDetails, snap.Step)
	assert.Equal(t, "again", snap.PendingMessage)

	snap, err = p.Resume(context.Background(), snap, "good")
	require.NoError(t, err)
	assert.Equal(t, StepTerminal, snap.Step)
	assert.Equal(t, 2, attempts)
}

func TestProcessor_ResumeRejectsTerminalAndRunning(t *testing.T) {
	p := newTestProcessor(t,
		suspendOnEntry(StepAwaitingInput, "prompt"),
		passThrough(StepCollectingDetails),
		passThrough(StepExtractingKeywords),
		passThrough(StepGeneratingSummary),
	)

	_, err := p.Resume(context.Background(), &Snapshot{SessionID: "s1", Step: StepTerminal}, "x")
	assert.ErrorIs(t, err, ErrSessionTerminal)

	_, err = p.Resume(context.Background(), &Snapshot{SessionID: "s1", Step: StepCollectingDetails}, "x")
	assert.ErrorIs(t, err, ErrNotSuspended)
}

func TestProcessor_NodeErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	p := newTestProcessor(t,
		suspendOnEntry(StepAwaitingInput, "prompt"),
		&stubNode{name: StepCollectingDetails, exec: func(input NodeInput) (NodeOutput, error) {
			return NodeOutput{}, boom
		}},
		passThrough(StepExtractingKeywords),
		passThrough(StepGeneratingSummary),
	)

	snap, err := p.Start(context.Background(), "s1")
	require.NoError(t, err)

	_, err = p.Resume(context.Background(), snap, "x")
	assert.ErrorIs(t, err, boom)
}
