package core

import (
	"context"
	"slices"
	"time"

	"blog_analyzer/pkg"
)

// Step is a pipeline state a session can occupy
type Step string

const (
	StepAwaitingInput      Step = "awaiting_input"
	StepCollectingDetails  Step = "collecting_details"
	StepExtractingKeywords Step = "extracting_keywords"
	StepGeneratingSummary  Step = "generating_summary"
	StepTerminal           Step = "terminal"
)

// Node represents a single step of the analysis pipeline
type Node interface {
	Execute(ctx context.Context, input NodeInput) (NodeOutput, error)
	GetName() Step
}

// NodeInput contains the input data for a node
type NodeInput struct {
	SessionID string `json:"session_id"`
	// UserInput is the value supplied by the resume call that started this run.
	UserInput string `json:"user_input"`
	// Resumed is true only for the node the session was suspended at.
	Resumed bool   `json:"resumed"`
	Fields  Fields `json:"fields"`
}

// NodeOutput contains the output data from a node.
// A non-empty Interrupt suspends the session at the executing node.
type NodeOutput struct {
	Fields    Fields `json:"fields"`
	Interrupt string `json:"interrupt,omitempty"`
	NextNode  Step   `json:"next_node,omitempty"`
}

// Fields holds the values accumulated by a session.
// Lists are present when non-nil; an empty keyword list is still present.
type Fields struct {
	UserInput string        `json:"user_input,omitempty"`
	Title     string        `json:"title,omitempty"`
	Topics    []string      `json:"topics"`
	Sentiment pkg.Sentiment `json:"sentiment,omitempty"`
	Summary   string        `json:"summary,omitempty"`
	Keywords  []string      `json:"keywords"`
}

// Clone returns a deep copy of the fields
func (f Fields) Clone() Fields {
	f.Topics = slices.Clone(f.Topics)
	f.Keywords = slices.Clone(f.Keywords)
	return f
}

// Snapshot is the persisted state of a session
type Snapshot struct {
	SessionID      string    `json:"session_id"`
	Step           Step      `json:"step"`
	Fields         Fields    `json:"fields"`
	PendingMessage string    `json:"pending_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Fields = s.Fields.Clone()
	return &c
}

// Suspended reports whether the session is waiting for user input
func (s *Snapshot) Suspended() bool {
	return s.Step != StepTerminal && s.PendingMessage != ""
}

// View converts the snapshot into its API representation
func (s *Snapshot) View() pkg.SessionView {
	return pkg.SessionView{
		SessionID:      s.SessionID,
		Step:           string(s.Step),
		PendingMessage: s.PendingMessage,
		Fields: pkg.SessionFields{
			UserInput: s.Fields.UserInput,
			Title:     s.Fields.Title,
			Topics:    slices.Clone(s.Fields.Topics),
			Sentiment: s.Fields.Sentiment,
			Summary:   s.Fields.Summary,
			Keywords:  slices.Clone(s.Fields.Keywords),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// GraphFlow defines the execution flow between nodes
type GraphFlow struct {
	StartNode Step          `json:"start_node"`
	Edges     map[Step]Step `json:"edges"` // node -> next node
}

// DefaultFlow is the fixed analysis pipeline
func DefaultFlow() GraphFlow {
	return GraphFlow{
		StartNode: StepAwaitingInput,
		Edges: map[Step]Step{
			StepAwaitingInput:      StepCollectingDetails,
			StepCollectingDetails:  StepExtractingKeywords,
			StepExtractingKeywords: StepGeneratingSummary,
			StepGeneratingSummary:  StepTerminal,
		},
	}
}
