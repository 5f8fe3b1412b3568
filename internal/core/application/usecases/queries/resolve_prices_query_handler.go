package queries

import (
	"context"

	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/services"
)

// CatalogReader is the subset of ports.CatalogRepository price previews need.
type CatalogReader interface {
	GetProducts(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)
	GetOverrides(ctx context.Context, customerID kernel.UUID, productIDs []kernel.UUID) ([]*catalog.PriceOverride, error)
}

// ResolvePricesQueryHandler runs the same resolver order placement uses, so a preview
// and the order placed right after it agree unless the catalog changed in between.
type ResolvePricesQueryHandler struct {
	catalog  CatalogReader
	resolver services.PriceResolver
}

func NewResolvePricesQueryHandler(catalog CatalogReader) ResolvePricesQueryHandler {
	return ResolvePricesQueryHandler{catalog: catalog, resolver: services.NewPriceResolver()}
}

func (h ResolvePricesQueryHandler) Handle(ctx context.Context, query ResolvePricesQuery) (ResolvePricesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolvePricesQueryResponse{}, err
	}

	ids := services.ProductIDs(query.Items())
	products, err := h.catalog.GetProducts(ctx, ids)
	if err != nil {
		return ResolvePricesQueryResponse{}, err
	}
	overrides, err := h.catalog.GetOverrides(ctx, query.CustomerID(), ids)
	if err != nil {
		return ResolvePricesQueryResponse{}, err
	}

	items, err := h.resolver.Resolve(query.CustomerID(), query.Items(), products, overrides)
	if err != nil {
		return ResolvePricesQueryResponse{}, err
	}
	total, err := services.TotalOf(items)
	if err != nil {
		return ResolvePricesQueryResponse{}, err
	}

	return ResolvePricesQueryResponse{Items: items, Total: total}, nil
}
