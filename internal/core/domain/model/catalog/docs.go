// Package catalog holds the read model of the bakery catalog used for pricing.
//
// Products and price overrides are maintained by catalog administration outside of
// the order core. The core reads them to resolve the price a customer pays:
// a PriceOverride for (customer, product) supersedes the product's base price.
package catalog
