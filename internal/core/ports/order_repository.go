// Package ports defines the persistence contracts the application layer depends on.
// Adapters under internal/adapters/out implement them.
package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with all of its lines. An id that is
	// already stored yields errs.ObjectAlreadyExistsError and writes nothing.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines. Missing orders yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ApplyStateChange executes change as one conditional write. It reports whether
	// the write landed; false means the compare part did not hold (or the order
	// does not exist) and the caller decides what that means.
	ApplyStateChange(ctx context.Context, change order.StateChange, at time.Time) (bool, error)

	// MarkPaid moves an unpaid order to paid. It reports false when nothing changed,
	// either because the order is already paid or because it does not exist.
	MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) (bool, error)

	// Exists reports whether an order with id is stored.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
