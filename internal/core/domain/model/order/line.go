package order

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

// MaxLineQuantity bounds a single line so line totals cannot overflow in practice.
const MaxLineQuantity = 100000

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one product of an order with the unit price frozen at placement time.
type Line struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	total     kernel.Money
	guard     guard.ConstructorGuard
}

// NewLine validates the line and precomputes unitPrice * quantity.
func NewLine(id, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Line, error) {
	var quantityErr, priceErr error
	if quantity <= 0 || quantity > MaxLineQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}
	if !unitPrice.IsPositive() {
		priceErr = errs.NewValueIsOutOfRangeError("unit price", unitPrice.Minor(), 1, "max int64")
	}
	if err := errors.Join(id.Validate(), productID.Validate(), quantityErr, priceErr); err != nil {
		return nil, err
	}

	total, err := unitPrice.Multiply(quantity)
	if err != nil {
		return nil, err
	}

	return &Line{
		id:        id,
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		total:     total,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

func (l *Line) Quantity() int {
	return l.quantity
}

// UnitPrice is the snapshot taken at placement. It never follows catalog changes.
func (l *Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l *Line) Total() kernel.Money {
	return l.total
}
