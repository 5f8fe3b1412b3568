package catalog

import (
	"errors"
	"strings"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog item with a positive base price.
type Product struct {
	id        kernel.UUID
	name      string
	category  string
	basePrice kernel.Money
	unit      string
	guard     guard.ConstructorGuard
}

// NewProduct validates every field and joins all violations into one error.
func NewProduct(id kernel.UUID, name, category string, basePrice kernel.Money, unit string) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setBasePrice(basePrice),
	); err != nil {
		return nil, err
	}
	p.category = strings.TrimSpace(category)
	p.unit = strings.TrimSpace(unit)
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) BasePrice() kernel.Money {
	return p.basePrice
}

// Unit is the selling unit label, e.g. "loaf" or "kg".
func (p *Product) Unit() string {
	return p.unit
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setBasePrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsOutOfRangeError("base price", price.Minor(), 1, "max int64")
	}
	p.basePrice = price
	return nil
}
