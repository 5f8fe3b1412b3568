package services

import (
	"errors"
	"fmt"

	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
)

// CartItem is one requested (product, quantity) pair.
type CartItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// ResolvedItem is a cart item with the price the server decided on.
type ResolvedItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
	// Overridden is true when a customer override replaced the base price.
	Overridden bool
}

// PriceResolver is a pure domain service: it never reads storage and keeps no state,
// so a single value is safe for concurrent use.
//
// Rules:
//   - an override for (customer, product) wins over the base price
//   - any unknown product fails the whole call; there is no partial result
//   - client supplied prices are never an input
//
// Example usage:
//
//	resolver := services.NewPriceResolver()
//	items, err := resolver.Resolve(customerID, cart, products, overrides)
//	var unknown *catalog.UnknownProductError
//	if errors.As(err, &unknown) {
//	    // reject the cart
//	}
type PriceResolver struct{}

func NewPriceResolver() PriceResolver {
	return PriceResolver{}
}

// Resolve prices cart for customerID. products and overrides are whatever the caller
// loaded for the cart's product ids; overrides for other customers are ignored.
func (PriceResolver) Resolve(
	customerID kernel.UUID,
	cart []CartItem,
	products []*catalog.Product,
	overrides []*catalog.PriceOverride,
) ([]ResolvedItem, error) {
	if err := ValidateCart(customerID, cart); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		byID[p.ID()] = p
	}

	overridden := make(map[kernel.UUID]kernel.Money, len(overrides))
	for _, o := range overrides {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.CustomerID().IsEqual(customerID) {
			overridden[o.ProductID()] = o.Price()
		}
	}

	resolved := make([]ResolvedItem, 0, len(cart))
	for _, item := range cart {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, catalog.NewUnknownProductError(item.ProductID)
		}

		unitPrice, isOverride := overridden[item.ProductID]
		if !isOverride {
			unitPrice = product.BasePrice()
		}

		lineTotal, err := unitPrice.Multiply(item.Quantity)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, ResolvedItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
			Overridden: isOverride,
		})
	}

	return resolved, nil
}

// ValidateCart checks the request shape before anything is loaded: a customer,
// at least one item, valid product ids, no duplicates and quantities in range.
func ValidateCart(customerID kernel.UUID, cart []CartItem) error {
	var customerErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	if len(cart) == 0 {
		return errors.Join(customerErr, errs.NewValueIsRequiredError("items"))
	}

	itemErrs := []error{customerErr}
	seen := make(map[kernel.UUID]struct{}, len(cart))
	for i, item := range cart {
		if err := item.ProductID.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, errs.NewValueIsRequiredErrorWithCause("product id", err)))
			continue
		}
		if item.Quantity <= 0 || item.Quantity > order.MaxLineQuantity {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i,
				errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, order.MaxLineQuantity)))
		}
		if _, dup := seen[item.ProductID]; dup {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("product %s appears more than once", item.ProductID))))
		}
		seen[item.ProductID] = struct{}{}
	}
	return errors.Join(itemErrs...)
}

// TotalOf sums the line totals of resolved items.
func TotalOf(items []ResolvedItem) (kernel.Money, error) {
	total := kernel.Zero()
	for _, item := range items {
		var err error
		if total, err = total.Add(item.LineTotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// ProductIDs lists the product ids of cart in order.
func ProductIDs(cart []CartItem) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ProductID)
	}
	return ids
}
