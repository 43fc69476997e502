package model

import (
	"fmt"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
)

// State describes the fulfillment lifecycle of an order.
type State string

const (
	StateNew          State = "NEW"
	StateInProgress   State = "IN_PROGRESS"
	StateApproved     State = "APPROVED"
	StateReadyForUndo State = "READY_FOR_UNDO"
	StateUndo         State = "UNDO"
	StateRejected     State = "REJECTED"
)

// Trigger names the event that moves an order from one state to the next.
type Trigger string

const (
	TriggerClaimed                   Trigger = "claimed"
	TriggerTimeout                   Trigger = "timeout"
	TriggerCreditAndStockOK          Trigger = "creditAndStockOk"
	TriggerInsufficientCreditOrStock Trigger = "insufficientCreditOrStock"
	TriggerUndone                    Trigger = "undone"
)

// transitions is the complete table of legal state changes. APPROVED and
// REJECTED are terminal and have no outgoing transitions.
var transitions = map[State]map[Trigger]State{
	StateNew: {
		TriggerClaimed: StateInProgress,
	},
	StateInProgress: {
		TriggerTimeout:                   StateNew,
		TriggerCreditAndStockOK:          StateApproved,
		TriggerInsufficientCreditOrStock: StateReadyForUndo,
	},
	StateReadyForUndo: {
		TriggerClaimed: StateUndo,
	},
	StateUndo: {
		TriggerTimeout: StateReadyForUndo,
		TriggerUndone:  StateRejected,
	},
}

// Transition resolves the state an order enters when trigger fires in the
// current state. An undefined pair is a logic error and must not be retried.
func Transition(current State, trigger Trigger) (State, error) {
	next, ok := transitions[current][trigger]
	if !ok {
		return "", fmt.Errorf("%w: %s --%s-->", domainErrors.ErrIllegalTransition, current, trigger)
	}
	return next, nil
}

// Valid reports whether s is a defined state.
func (s State) Valid() bool {
	switch s {
	case StateNew, StateInProgress, StateApproved, StateReadyForUndo, StateUndo, StateRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}
