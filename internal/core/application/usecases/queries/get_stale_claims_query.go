package queries

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrGetStaleClaimsQueryIsNotConstructed = errors.New(
	"GetStaleClaimsQuery must be created via NewGetStaleClaimsQuery constructor",
)

// claimedStates are the states where an order waits on its owner.
var claimedStates = []order.FulfillmentState{order.Preparing, order.InTransit}

// GetStaleClaimsQuery finds claimed orders that have not moved since olderThan before now.
type GetStaleClaimsQuery struct {
	cutoff time.Time
	guard  guard.ConstructorGuard
}

func NewGetStaleClaimsQuery(olderThan time.Duration, now time.Time) (GetStaleClaimsQuery, error) {
	if olderThan <= 0 {
		return GetStaleClaimsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"olderThan", fmt.Errorf("%s is not positive", olderThan),
		)
	}
	if now.IsZero() {
		return GetStaleClaimsQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetStaleClaimsQuery{cutoff: now.Add(-olderThan), guard: guard.NewConstructorGuard()}, nil
}

func (q GetStaleClaimsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleClaimsQueryIsNotConstructed)
}

func (q GetStaleClaimsQuery) Cutoff() time.Time {
	return q.cutoff
}

type StaleClaim struct {
	OrderID   kernel.UUID
	State     order.FulfillmentState
	Owner     kernel.UUID
	UpdatedAt time.Time
}

type GetStaleClaimsQueryResponse struct {
	Claims []StaleClaim
}
