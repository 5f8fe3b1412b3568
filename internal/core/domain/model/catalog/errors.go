package catalog

import (
	"errors"
	"fmt"

	"bakery/internal/core/domain/model/kernel"
)

// ErrUnknownProduct is the sentinel behind UnknownProductError.
var ErrUnknownProduct = errors.New("unknown product")

// UnknownProductError reports a requested product id that is not in the catalog.
type UnknownProductError struct {
	ProductID kernel.UUID
}

func NewUnknownProductError(productID kernel.UUID) *UnknownProductError {
	return &UnknownProductError{ProductID: productID}
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProduct, e.ProductID)
}

func (e *UnknownProductError) Unwrap() error {
	return ErrUnknownProduct
}
