package usecase

import (
	"errors"
	"testing"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

func TestPipelineHappyPathTrail(t *testing.T) {
	p := newPipeline(model.StateBuilding)
	for _, next := range []model.PipelineState{
		model.StateStoreResolved,
		model.StateValidated,
		model.StatePriced,
		model.StateQuoted,
		model.StateConfirmed,
		model.StatePlaced,
	} {
		if err := p.enter(next); err != nil {
			t.Fatalf("enter %s: %v", next, err)
		}
	}
	if len(p.trail) != 7 || p.state != model.StatePlaced || !p.state.Terminal() {
		t.Fatalf("unexpected trail %v", p.trail)
	}
}

func TestPipelineRejectsIllegalTransitions(t *testing.T) {
	cases := [][2]model.PipelineState{
		{model.StateBuilding, model.StateValidated},
		{model.StateStoreResolved, model.StatePriced},
		{model.StateStoreResolved, model.StateValidationRejected},
		{model.StateValidated, model.StateQuoted},
		{model.StatePriced, model.StatePlaced},
		{model.StateQuoted, model.StatePlaced},
		{model.StateValidationRejected, model.StatePriced},
		{model.StatePlaced, model.StateConfirmed},
		{model.StateFailed, model.StateBuilding},
	}
	for _, tc := range cases {
		if CanTransition(tc[0], tc[1]) {
			t.Errorf("expected %s -> %s to be illegal", tc[0], tc[1])
		}
		p := newPipeline(tc[0])
		if err := p.enter(tc[1]); err == nil {
			t.Errorf("expected enter %s -> %s to fail", tc[0], tc[1])
		}
	}
}

func TestPipelineFailWrapsStep(t *testing.T) {
	cause := errors.New("boom")
	p := newPipeline(model.StateBuilding)
	_ = p.enter(model.StateStoreResolved)
	p.attempt(StepValidateOrder)

	err := p.fail(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	if err.Error() != "validate-order: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if p.state != model.StateFailed {
		t.Fatalf("expected FAILED, got %s", p.state)
	}

	rejected := newPipeline(model.StateValidationRejected)
	_ = rejected.fail(cause)
	if rejected.state != model.StateValidationRejected {
		t.Fatal("terminal state must not change on failure")
	}
}
