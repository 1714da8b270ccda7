package core

import (
	"context"
	"fmt"
	"time"

	"blog_analyzer/src/logger"
)

// Processor runs sessions through the pipeline, one invocation per create or resume call.
// Suspension is a returned snapshot with a pending message; no goroutine waits for input.
type Processor struct {
	nodes map[Step]Node
	flow  GraphFlow
	now   func() time.Time
}

// NewProcessor creates a processor for the flow. Every step of the flow needs a node.
func NewProcessor(flow GraphFlow, nodes ...Node) (*Processor, error) {
	p := &Processor{
		nodes: make(map[Step]Node),
		flow:  flow,
		now:   time.Now,
	}

	for _, node := range nodes {
		if err := p.AddNode(node); err != nil {
			return nil, err
		}
	}

	if flow.StartNode == "" {
		return nil, fmt.Errorf("start node cannot be empty")
	}
	if _, ok := p.nodes[flow.StartNode]; !ok {
		return nil, fmt.Errorf("no node registered for start step %s", flow.StartNode)
	}
	for from, to := range flow.Edges {
		if _, ok := p.nodes[from]; !ok {
			return nil, fmt.Errorf("no node registered for step %s", from)
		}
		if _, ok := p.nodes[to]; !ok && to != StepTerminal {
			return nil, fmt.Errorf("no node registered for step %s", to)
		}
	}

	return p, nil
}

// AddNode adds a node to the processor
func (p *Processor) AddNode(node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	name := node.GetName()
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	if name == StepTerminal {
		return fmt.Errorf("terminal step cannot have a node")
	}

	p.nodes[name] = node
	return nil
}

// Start creates the initial snapshot by running the start node, which suspends for input
func (p *Processor) Start(ctx context.Context, sessionID string) (*Snapshot, error) {
	now := p.now()
	snapshot := &Snapshot{
		SessionID: sessionID,
		Step:      p.flow.StartNode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return p.run(ctx, snapshot, NodeInput{SessionID: sessionID})
}

// Resume feeds input into the node the session is suspended at and runs until the
// next suspension or the terminal step. The given snapshot is never modified.
func (p *Processor) Resume(ctx context.Context, snapshot *Snapshot, input string) (*Snapshot, error) {
	if snapshot.Step == StepTerminal {
		return nil, ErrSessionTerminal
	}
	if snapshot.PendingMessage == "" {
		return nil, fmt.Errorf("%w: step %s", ErrNotSuspended, snapshot.Step)
	}

	return p.run(ctx, snapshot, NodeInput{
		SessionID: snapshot.SessionID,
		UserInput: input,
		Resumed:   true,
		Fields:    snapshot.Fields.Clone(),
	})
}

func (p *Processor) run(ctx context.Context, snapshot *Snapshot, input NodeInput) (*Snapshot, error) {
	log := logger.With("workflow")
	next := snapshot.Clone()
	next.PendingMessage = ""
	current := next.Step
	var path []Step

	for current != StepTerminal {
		path = append(path, current)

		node, ok := p.nodes[current]
		if !ok {
			return nil, fmt.Errorf("node not found: %s", current)
		}

		output, err := node.Execute(ctx, input)
		if err != nil {
			log.Error().Err(err).Str("session_id", next.SessionID).Str("node", string(current)).Msg("❌ Node execution failed")
			return nil, fmt.Errorf("error executing node %s: %w", current, err)
		}
		next.Fields = output.Fields

		if output.Interrupt != "" {
			next.PendingMessage = output.Interrupt
			break
		}

		nextNode := output.NextNode
		if nextNode == "" {
			nextNode = p.nextNode(current)
		}
		current = nextNode

		input = NodeInput{
			SessionID: next.SessionID,
			UserInput: input.UserInput,
			Fields:    next.Fields.Clone(),
		}
	}

	next.Step = current
	next.UpdatedAt = p.now()

	log.Debug().
		Str("session_id", next.SessionID).
		Str("step", string(next.Step)).
		Interface("path", path).
		Bool("suspended", next.Suspended()).
		Msg("🏁 Workflow run finished")

	return next, nil
}

// nextNode follows the flow edges; a step without an edge ends the pipeline
func (p *Processor) nextNode(current Step) Step {
	if to, ok := p.flow.Edges[current]; ok {
		return to
	}
	return StepTerminal
}
