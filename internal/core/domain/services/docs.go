// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - PriceResolver: resolves authoritative unit prices for a cart from catalog
//     products and customer specific overrides
package services
