package model

import (
	"errors"
	"testing"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		current State
		trigger Trigger
		want    State
	}{
		{"new claimed", StateNew, TriggerClaimed, StateInProgress},
		{"in progress timeout", StateInProgress, TriggerTimeout, StateNew},
		{"in progress fulfilled", StateInProgress, TriggerCreditAndStockOK, StateApproved},
		{"in progress rejected", StateInProgress, TriggerInsufficientCreditOrStock, StateReadyForUndo},
		{"ready for undo claimed", StateReadyForUndo, TriggerClaimed, StateUndo},
		{"undo timeout", StateUndo, TriggerTimeout, StateReadyForUndo},
		{"undo done", StateUndo, TriggerUndone, StateRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.current, tc.trigger)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTransitionIllegal(t *testing.T) {
	cases := []struct {
		name    string
		current State
		trigger Trigger
	}{
		{"approved is terminal", StateApproved, TriggerClaimed},
		{"rejected is terminal", StateRejected, TriggerTimeout},
		{"new cannot time out", StateNew, TriggerTimeout},
		{"new cannot be fulfilled", StateNew, TriggerCreditAndStockOK},
		{"ready for undo cannot finish", StateReadyForUndo, TriggerUndone},
		{"undefined state", State("BOGUS"), TriggerClaimed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Transition(tc.current, tc.trigger); !errors.Is(err, domainErrors.ErrIllegalTransition) {
				t.Fatalf("expected illegal transition error, got %v", err)
			}
		})
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateNew, StateInProgress, StateApproved, StateReadyForUndo, StateUndo, StateRejected} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if State("BOGUS").Valid() {
		t.Error("expected BOGUS to be invalid")
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateApproved, StateRejected} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []State{StateNew, StateInProgress, StateReadyForUndo, StateUndo} {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
	if State("BOGUS").Terminal() {
		t.Error("expected undefined state to be non-terminal")
	}
}
