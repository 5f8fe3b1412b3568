package order

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTotalMismatch is returned by RestoreOrder when the stored total is not
	// the sum of the line totals.
	ErrTotalMismatch = errors.New("total price does not match order lines")
)

// Order is the aggregate root of the fulfillment workflow.
//
// Order follows these invariants:
//   - at least one line, product ids unique across lines
//   - total price equals the sum of unit price snapshot * quantity over all lines
//   - lines and total never change after construction
//   - fulfillment and payment state are independent of each other
//   - ownership matches the fulfillment state (see FulfillmentState.ValidateOwnership)
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	deliveryAddressID kernel.UUID
	lines             []*Line
	totalPrice        kernel.Money

	fulfillmentState FulfillmentState
	paymentState     PaymentState

	// ownerID is the staff member currently holding the order (nil if unclaimed).
	ownerID *kernel.UUID

	// preparedByID is the baker whose claim started preparation.
	preparedByID *kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending, unpaid and unclaimed order and derives its total
// from the lines.
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), productID, 2, unitPrice)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, addressID, []*order.Line{line}, time.Now())
func NewOrder(id, customerID, deliveryAddressID kernel.UUID, lines []*Line, createdAt time.Time) (*Order, error) {
	o := &Order{
		fulfillmentState: Pending,
		paymentState:     Unpaid,
		createdAt:        createdAt,
		updatedAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDeliveryAddressID(deliveryAddressID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries a persisted order snapshot into RestoreOrder.
type RestoreOrderParams struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	DeliveryAddressID kernel.UUID
	Lines             []*Line
	TotalPrice        kernel.Money
	FulfillmentState  FulfillmentState
	PaymentState      PaymentState
	OwnerID           *kernel.UUID
	PreparedByID      *kernel.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder rebuilds an order from storage. The total invariant is checked again
// so corrupted rows surface as errors instead of wrong invoices.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	var ownerErr, preparedByErr error
	if p.OwnerID != nil {
		ownerErr = p.OwnerID.Validate()
	}
	if p.PreparedByID != nil {
		preparedByErr = p.PreparedByID.Validate()
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setDeliveryAddressID(p.DeliveryAddressID),
		o.setLines(p.Lines),
		p.FulfillmentState.Validate(),
		p.PaymentState.Validate(),
		ownerErr,
		preparedByErr,
	); err != nil {
		return nil, err
	}

	if !o.totalPrice.IsEqual(p.TotalPrice) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total price",
			fmt.Errorf("%w: stored %s, lines sum to %s", ErrTotalMismatch, p.TotalPrice, o.totalPrice))
	}
	if err := p.FulfillmentState.ValidateOwnership(p.OwnerID != nil); err != nil {
		return nil, err
	}

	o.fulfillmentState = p.FulfillmentState
	o.paymentState = p.PaymentState
	o.ownerID = copyID(p.OwnerID)
	o.preparedByID = copyID(p.PreparedByID)
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) DeliveryAddressID() kernel.UUID {
	return o.deliveryAddressID
}

// Lines returns the frozen line snapshots.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

func (o *Order) FulfillmentState() FulfillmentState {
	return o.fulfillmentState
}

func (o *Order) PaymentState() PaymentState {
	return o.paymentState
}

func (o *Order) IsPaid() bool {
	return o.paymentState == Paid
}

// Owner returns the staff member holding the order, nil if unclaimed.
func (o *Order) Owner() *kernel.UUID {
	return copyID(o.ownerID)
}

// PreparedBy returns the baker who started preparation, nil before that.
func (o *Order) PreparedBy() *kernel.UUID {
	return copyID(o.preparedByID)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setDeliveryAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery address id", err)
	}
	o.deliveryAddressID = id
	return nil
}

// setLines validates the lines and derives the total. Overflow is reported as out of range.
func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	total := kernel.Zero()
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if _, dup := seen[line.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("order lines",
				fmt.Errorf("product %s appears more than once", line.ProductID()))
		}
		seen[line.ProductID()] = struct{}{}

		var err error
		if total, err = total.Add(line.Total()); err != nil {
			return err
		}
	}

	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	o.totalPrice = total
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
