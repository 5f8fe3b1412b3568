// Package orderrepo persists order aggregates: one orders row plus its order_lines.
// Fulfillment and payment states are stored by name.
package orderrepo

import (
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Indexes back the work queue and the claim CAS.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	DeliveryAddressID uuid.UUID      `gorm:"type:uuid;not null"`
	TotalPriceMinor   int64          `gorm:"not null"`
	FulfillmentState  string         `gorm:"type:varchar(16);not null;index"`
	PaymentState      string         `gorm:"type:varchar(16);not null;index"`
	OwnerStaffID      *uuid.UUID     `gorm:"type:uuid;index"`
	PreparedBy        *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt         time.Time      `gorm:"not null;index"`
	UpdatedAt         time.Time      `gorm:"not null"`
	Lines             []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is written once together with its order and never updated.
type OrderLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int       `gorm:"not null"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity       int       `gorm:"not null"`
	UnitPriceMinor int64     `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:             line.ID().Bytes(),
			OrderID:        o.ID().Bytes(),
			Position:       i,
			ProductID:      line.ProductID().Bytes(),
			Quantity:       line.Quantity(),
			UnitPriceMinor: line.UnitPrice().Minor(),
		})
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		CustomerID:        o.CustomerID().Bytes(),
		DeliveryAddressID: o.DeliveryAddressID().Bytes(),
		TotalPriceMinor:   o.TotalPrice().Minor(),
		FulfillmentState:  o.FulfillmentState().String(),
		PaymentState:      o.PaymentState().String(),
		OwnerStaffID:      optionalID(o.Owner()),
		PreparedBy:        optionalID(o.PreparedBy()),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
		Lines:             lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromGoogle(dto.DeliveryAddressID)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, fmt.Errorf("order %s: %w", dto.ID, lineErr)
		}
		lines = append(lines, line)
	}

	total, err := kernel.NewMoney(dto.TotalPriceMinor)
	if err != nil {
		return nil, err
	}
	fulfillment, err := order.ParseFulfillmentState(dto.FulfillmentState)
	if err != nil {
		return nil, err
	}
	payment, err := order.ParsePaymentState(dto.PaymentState)
	if err != nil {
		return nil, err
	}
	owner, err := restoreOptionalID(dto.OwnerStaffID)
	if err != nil {
		return nil, err
	}
	preparedBy, err := restoreOptionalID(dto.PreparedBy)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		CustomerID:        customerID,
		DeliveryAddressID: addressID,
		Lines:             lines,
		TotalPrice:        total,
		FulfillmentState:  fulfillment,
		PaymentState:      payment,
		OwnerID:           owner,
		PreparedByID:      preparedBy,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := kernel.NewPositiveMoney(dto.UnitPriceMinor)
	if err != nil {
		return nil, err
	}
	return order.NewLine(id, productID, dto.Quantity, unitPrice)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func stateNames(states []order.FulfillmentState) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}
	return names
}
