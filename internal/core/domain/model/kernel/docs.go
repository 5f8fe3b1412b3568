// Package kernel provides the shared value objects of the bakery domain.
//
// The package includes:
//   - UUID: identifier for orders, lines, products, customers, addresses and staff
//   - Money: exact integer amount in minor currency units
//
// Both are immutable and safe for concurrent use. Their zero values are either
// invalid (UUID) or the neutral element (Money), never silently meaningful.
package kernel
