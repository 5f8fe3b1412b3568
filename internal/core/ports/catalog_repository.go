package ports

import (
	"context"

	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
)

// CatalogRepository is the read side of the catalog the price resolver consumes,
// plus the writes used to seed it.
type CatalogRepository interface {
	// AddProduct stores a new product. Reusing an id is errs.ObjectAlreadyExistsError.
	AddProduct(ctx context.Context, product *catalog.Product) error

	// GetProducts returns the products among ids that exist. Unknown ids are
	// silently skipped; the price resolver reports them.
	GetProducts(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)

	// GetOverrides returns customerID's overrides for the given products.
	GetOverrides(ctx context.Context, customerID kernel.UUID, productIDs []kernel.UUID) ([]*catalog.PriceOverride, error)

	// SetOverride inserts or replaces the override for (customer, product).
	SetOverride(ctx context.Context, override *catalog.PriceOverride) error
}
