package nodes

import (
	"context"

	"blog_analyzer/internal/core"
)

// AskNode is the entry step. It suspends with AskPrompt and, once resumed,
// forwards the supplied input to the details step.
type AskNode struct{}

// NewAskNode creates the entry node
func NewAskNode() *AskNode {
	return &AskNode{}
}

// Execute suspends on entry and passes through on resume
func (a *AskNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	if !input.Resumed {
		return core.NodeOutput{Fields: input.Fields, Interrupt: AskPrompt}, nil
	}

	return core.NodeOutput{Fields: input.Fields, NextNode: core.StepCollectingDetails}, nil
}

// GetName returns the node name
func (a *AskNode) GetName() core.Step {
	return core.StepAwaitingInput
}
