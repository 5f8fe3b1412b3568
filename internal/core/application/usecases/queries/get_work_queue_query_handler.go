package queries

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/queue"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type workQueueRow struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	DeliveryAddressID uuid.UUID
	TotalPriceMinor   int64
	FulfillmentState  string
	PaymentState      string
	OwnerStaffID      *uuid.UUID
	CreatedAt         time.Time
}

type workQueueLineRow struct {
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int
	UnitPriceMinor int64
}

// GetWorkQueueQueryHandler reads queues straight from the orders table without
// loading aggregates. The query's criteria become WHERE clauses; lines are read in
// a second statement for all listed orders at once and keep their frozen prices
// even when the product has since left the catalog.
//
// Results are ordered by placement time. An empty queue is an empty slice.
type GetWorkQueueQueryHandler struct {
	db *gorm.DB
}

func NewGetWorkQueueQueryHandler(db *gorm.DB) GetWorkQueueQueryHandler {
	return GetWorkQueueQueryHandler{db: db}
}

func (h GetWorkQueueQueryHandler) Handle(ctx context.Context, query GetWorkQueueQuery) (GetWorkQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkQueueQueryResponse{}, err
	}
	criteria := query.Criteria()

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("id, customer_id, delivery_address_id, total_price_minor, fulfillment_state, payment_state, owner_staff_id, created_at")
	if len(criteria.States) > 0 {
		tx = tx.Where("fulfillment_state = ANY(?)", pq.Array(stateNames(criteria.States)))
	}
	if criteria.PaidOnly {
		tx = tx.Where("payment_state = ?", order.Paid.String())
	}
	switch criteria.Relation {
	case queue.OwnedByCaller:
		tx = tx.Where("owner_staff_id = ?", criteria.StaffMember.Bytes())
	case queue.PreparedByCaller:
		tx = tx.Where("prepared_by = ?", criteria.StaffMember.Bytes())
	}

	var rows []workQueueRow
	if err := tx.Order("created_at, id").Scan(&rows).Error; err != nil {
		return GetWorkQueueQueryResponse{}, errs.NewStorageError("read work queue", err)
	}
	if len(rows) == 0 {
		return GetWorkQueueQueryResponse{Items: []WorkQueueItem{}}, nil
	}

	lines, err := h.loadLines(ctx, rows)
	if err != nil {
		return GetWorkQueueQueryResponse{}, err
	}

	items := make([]WorkQueueItem, 0, len(rows))
	for _, row := range rows {
		item, err := toWorkQueueItem(row, lines[row.ID])
		if err != nil {
			return GetWorkQueueQueryResponse{}, err
		}
		items = append(items, item)
	}
	return GetWorkQueueQueryResponse{Items: items}, nil
}

func (h GetWorkQueueQueryHandler) loadLines(ctx context.Context, rows []workQueueRow) (map[uuid.UUID][]WorkQueueLine, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID.String())
	}

	var lineRows []workQueueLineRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.product_id,
			COALESCE(p.name, '') AS product_name,
			l.quantity,
			l.unit_price_minor
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ANY(?::uuid[])
		ORDER BY l.order_id, l.position
	`, pq.Array(ids)).Scan(&lineRows).Error
	if err != nil {
		return nil, errs.NewStorageError("read work queue lines", err)
	}

	byOrder := make(map[uuid.UUID][]WorkQueueLine, len(rows))
	for _, row := range lineRows {
		price, err := kernel.NewMoney(row.UnitPriceMinor)
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromGoogle(row.ProductID)
		if err != nil {
			return nil, err
		}
		byOrder[row.OrderID] = append(byOrder[row.OrderID], WorkQueueLine{
			ProductID:   productID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   price,
		})
	}
	return byOrder, nil
}

func toWorkQueueItem(row workQueueRow, lines []WorkQueueLine) (WorkQueueItem, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return WorkQueueItem{}, err
	}
	customerID, err := kernel.UUIDFromGoogle(row.CustomerID)
	if err != nil {
		return WorkQueueItem{}, err
	}
	addressID, err := kernel.UUIDFromGoogle(row.DeliveryAddressID)
	if err != nil {
		return WorkQueueItem{}, err
	}
	total, err := kernel.NewMoney(row.TotalPriceMinor)
	if err != nil {
		return WorkQueueItem{}, err
	}
	state, err := order.ParseFulfillmentState(row.FulfillmentState)
	if err != nil {
		return WorkQueueItem{}, err
	}
	payment, err := order.ParsePaymentState(row.PaymentState)
	if err != nil {
		return WorkQueueItem{}, err
	}

	var owner *kernel.UUID
	if row.OwnerStaffID != nil {
		ownerID, err := kernel.UUIDFromGoogle(*row.OwnerStaffID)
		if err != nil {
			return WorkQueueItem{}, err
		}
		owner = &ownerID
	}
	if lines == nil {
		lines = []WorkQueueLine{}
	}

	return WorkQueueItem{
		ID:                id,
		CustomerID:        customerID,
		DeliveryAddressID: addressID,
		TotalPrice:        total,
		FulfillmentState:  state,
		PaymentState:      payment,
		Owner:             owner,
		CreatedAt:         row.CreatedAt,
		Lines:             lines,
	}, nil
}

func stateNames(states []order.FulfillmentState) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}
	return names
}
