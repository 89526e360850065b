package usecase

import (
	"fmt"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

var transitions = map[model.PipelineState][]model.PipelineState{
	model.StateBuilding:      {model.StateStoreResolved, model.StateFailed},
	model.StateStoreResolved: {model.StateValidated, model.StateFailed},
	model.StateValidated:     {model.StatePriced, model.StateValidationRejected, model.StateFailed},
	model.StatePriced:        {model.StateQuoted, model.StateFailed},
	model.StateQuoted:        {model.StateConfirmed, model.StateFailed},
	model.StateConfirmed:     {model.StatePlaced, model.StateFailed},
}

// CanTransition reports whether the pipeline may move from one state to another.
func CanTransition(from, to model.PipelineState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// pipeline tracks one order's progress through the states. Step names the upstream
// call or local stage that was last attempted.
type pipeline struct {
	state model.PipelineState
	step  string
	trail []model.PipelineState
}

func newPipeline(start model.PipelineState) *pipeline {
	return &pipeline{state: start, trail: []model.PipelineState{start}}
}

func (p *pipeline) attempt(step string) {
	p.step = step
}

func (p *pipeline) enter(to model.PipelineState) error {
	if !CanTransition(p.state, to) {
		return fmt.Errorf("illegal pipeline transition %s -> %s", p.state, to)
	}
	p.state = to
	p.trail = append(p.trail, to)
	return nil
}

// fail moves to FAILED from any non-terminal state and returns err wrapped with the step.
func (p *pipeline) fail(err error) error {
	if !p.state.Terminal() {
		p.state = model.StateFailed
		p.trail = append(p.trail, model.StateFailed)
	}
	return fmt.Errorf("%s: %w", p.step, err)
}
