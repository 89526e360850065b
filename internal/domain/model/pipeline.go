package model

// PipelineState names the stages an order passes through.
type PipelineState string

const (
	StateBuilding           PipelineState = "BUILDING"
	StateStoreResolved      PipelineState = "STORE_RESOLVED"
	StateValidated          PipelineState = "VALIDATED"
	StatePriced             PipelineState = "PRICED"
	StateQuoted             PipelineState = "QUOTED"
	StateConfirmed          PipelineState = "CONFIRMED"
	StatePlaced             PipelineState = "PLACED"
	StateValidationRejected PipelineState = "VALIDATION_REJECTED"
	StateFailed             PipelineState = "FAILED"
)

// Terminal reports whether no further transition may leave the state.
func (s PipelineState) Terminal() bool {
	switch s {
	case StatePlaced, StateValidationRejected, StateFailed:
		return true
	default:
		return false
	}
}
