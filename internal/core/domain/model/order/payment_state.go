package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// PaymentState records whether an external verifier confirmed payment.
// It gates work queue visibility but never the fulfillment state machine.
type PaymentState int

const (
	UnknownPayment PaymentState = iota
	Unpaid
	Paid
)

func (p PaymentState) String() string {
	switch p {
	case Unpaid:
		return "unpaid"
	case Paid:
		return "paid"
	case UnknownPayment:
		return "unknown"
	}
	return "unknown"
}

func (p PaymentState) Validate() error {
	if p != Unpaid && p != Paid {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment state is invalid", fmt.Errorf("%d is not a valid payment state", p),
		)
	}
	return nil
}

// ParsePaymentState converts "unpaid" or "paid" into a PaymentState.
func ParsePaymentState(s string) (PaymentState, error) {
	switch s {
	case "unpaid":
		return Unpaid, nil
	case "paid":
		return Paid, nil
	}
	return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
		"payment state is invalid", fmt.Errorf("%q is not a payment state", s),
	)
}
