package queries

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type staleClaimRow struct {
	ID               uuid.UUID
	FulfillmentState string
	OwnerStaffID     uuid.UUID
	UpdatedAt        time.Time
}

// GetStaleClaimsQueryHandler lists claimed orders (preparing or in transit) whose
// row has not changed since the query's cutoff. It only reads; claims are never
// released automatically. Results are ordered oldest first.
//
// Example:
//
//	query, _ := NewGetStaleClaimsQuery(2*time.Hour, time.Now())
//	resp, err := handler.Handle(ctx, query)
//	for _, claim := range resp.Claims {
//	    // tell a manager
//	}
type GetStaleClaimsQueryHandler struct {
	db *gorm.DB
}

func NewGetStaleClaimsQueryHandler(db *gorm.DB) GetStaleClaimsQueryHandler {
	return GetStaleClaimsQueryHandler{db: db}
}

func (h GetStaleClaimsQueryHandler) Handle(ctx context.Context, query GetStaleClaimsQuery) (GetStaleClaimsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStaleClaimsQueryResponse{}, err
	}

	var rows []staleClaimRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			fulfillment_state,
			owner_staff_id,
			updated_at
		FROM orders
		WHERE fulfillment_state = ANY(?)
			AND owner_staff_id IS NOT NULL
			AND updated_at < ?
		ORDER BY updated_at, id
	`, pq.Array(stateNames(claimedStates)), query.Cutoff()).Scan(&rows).Error
	if err != nil {
		return GetStaleClaimsQueryResponse{}, errs.NewStorageError("read stale claims", err)
	}

	claims := make([]StaleClaim, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromGoogle(row.ID)
		if err != nil {
			return GetStaleClaimsQueryResponse{}, err
		}
		owner, err := kernel.UUIDFromGoogle(row.OwnerStaffID)
		if err != nil {
			return GetStaleClaimsQueryResponse{}, err
		}
		state, err := order.ParseFulfillmentState(row.FulfillmentState)
		if err != nil {
			return GetStaleClaimsQueryResponse{}, err
		}
		claims = append(claims, StaleClaim{OrderID: id, State: state, Owner: owner, UpdatedAt: row.UpdatedAt})
	}
	return GetStaleClaimsQueryResponse{Claims: claims}, nil
}
