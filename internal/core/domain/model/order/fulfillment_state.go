package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// FulfillmentState is the position of an order in the preparation/delivery pipeline.
// It is independent of PaymentState.
type FulfillmentState int

const (
	// UnknownState catches uninitialized values.
	UnknownState FulfillmentState = iota
	Pending
	Preparing
	Prepared
	InTransit
	Delivered
	Cancelled
)

func getFulfillmentStateStrings() map[FulfillmentState]string {
	return map[FulfillmentState]string{
		UnknownState: "unknown",
		Pending:      "pending",
		Preparing:    "preparing",
		Prepared:     "prepared",
		InTransit:    "in_transit",
		Delivered:    "delivered",
		Cancelled:    "cancelled",
	}
}

// ParseFulfillmentState converts a wire name such as "in_transit" into a state.
func ParseFulfillmentState(s string) (FulfillmentState, error) {
	for state, str := range getFulfillmentStateStrings() {
		if state != UnknownState && str == s {
			return state, nil
		}
	}
	return UnknownState, errs.NewValueIsInvalidErrorWithCause(
		"fulfillment state is invalid", fmt.Errorf("%q is not a fulfillment state", s),
	)
}

func (s FulfillmentState) Validate() error {
	if s <= UnknownState || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillment state is invalid", fmt.Errorf("%d is not a valid fulfillment state", s),
		)
	}
	return nil
}

func (s FulfillmentState) String() string {
	if str, ok := getFulfillmentStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s FulfillmentState) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// NonTerminalStates lists every state an order can still be cancelled from.
func NonTerminalStates() []FulfillmentState {
	return []FulfillmentState{Pending, Preparing, Prepared, InTransit}
}

// ValidateOwnership checks that the presence of an owner fits the state.
//
//   - pending orders are never owned
//   - preparing, prepared, in_transit and delivered orders always have an owner
//   - cancelled orders keep whatever owner they had when cancelled
func (s FulfillmentState) ValidateOwnership(hasOwner bool) error {
	switch {
	case s == Pending && hasOwner:
		return errs.NewValueIsInvalidErrorWithCause(
			"owner is invalid", fmt.Errorf("%s is not a valid state to have an owner", s),
		)
	case !hasOwner && (s == Preparing || s == Prepared || s == InTransit || s == Delivered):
		return errs.NewValueIsInvalidErrorWithCause(
			"owner is invalid", fmt.Errorf("%s is not a valid state to have no owner", s),
		)
	}
	return nil
}
