package queries

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/queue"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/guard"
)

var ErrGetWorkQueueQueryIsNotConstructed = errors.New(
	"GetWorkQueueQuery must be created via NewGetWorkQueueQuery constructor",
)

// GetWorkQueueQuery opens one of the caller's queues. The caller's role
// decides which orders the view contains.
type GetWorkQueueQuery struct {
	criteria queue.Criteria
	guard    guard.ConstructorGuard
}

func NewGetWorkQueueQuery(caller staff.Identity, view queue.View) (GetWorkQueueQuery, error) {
	criteria, err := queue.CriteriaFor(caller, view)
	if err != nil {
		return GetWorkQueueQuery{}, err
	}
	return GetWorkQueueQuery{criteria: criteria, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkQueueQueryIsNotConstructed)
}

func (q GetWorkQueueQuery) Criteria() queue.Criteria {
	return q.criteria
}

// WorkQueueItem is a read model row; it is not an aggregate and carries no behavior.
type WorkQueueItem struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	DeliveryAddressID kernel.UUID
	TotalPrice        kernel.Money
	FulfillmentState  order.FulfillmentState
	PaymentState      order.PaymentState
	Owner             *kernel.UUID
	CreatedAt         time.Time
	Lines             []WorkQueueLine
}

type WorkQueueLine struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
}

// GetWorkQueueQueryResponse lists orders oldest first.
type GetWorkQueueQueryResponse struct {
	Items []WorkQueueItem
}
