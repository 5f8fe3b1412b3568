// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"bakery/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogRepoFactory provides access to the catalog repository within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OrderUoW manages transactions for order-only operations: claims, advances,
	// cancellations and payment confirmations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlacementUoW reads the catalog and writes the order in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   products, err := uow.CatalogRepository().GetProducts(ctx, ids)
	//   // ... resolve prices, build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}
)
