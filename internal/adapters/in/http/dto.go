package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

type ResolvedItem struct {
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unitPrice"`
	LineTotal  int64     `json:"lineTotal"`
	Overridden bool      `json:"overridden"`
}

type ResolvedCart struct {
	Items []ResolvedItem `json:"items"`
	Total int64          `json:"total"`
}

// NewOrder lets the client pick the order id so a retried POST cannot place twice.
type NewOrder struct {
	OrderID           *uuid.UUID `json:"orderId,omitempty"`
	DeliveryAddressID uuid.UUID  `json:"deliveryAddressId"`
	Items             []CartItem `json:"items"`
	ExpectedTotal     *int64     `json:"expectedTotal,omitempty"`
}

type PlacedOrder struct {
	OrderID    uuid.UUID `json:"orderId"`
	TotalPrice int64     `json:"totalPrice"`
}

type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type TransitionResult struct {
	OrderID      uuid.UUID  `json:"orderId"`
	State        string     `json:"state"`
	OwnerStaffID *uuid.UUID `json:"ownerStaffId"`
}

type PaymentConfirmation struct {
	OrderID  uuid.UUID `json:"orderId"`
	Verified bool      `json:"verified"`
}

type PaymentConfirmationResult struct {
	OrderID uuid.UUID `json:"orderId"`
	Changed bool      `json:"changed"`
}

type QueueLine struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
}

type QueueOrder struct {
	OrderID           uuid.UUID   `json:"orderId"`
	CustomerID        uuid.UUID   `json:"customerId"`
	DeliveryAddressID uuid.UUID   `json:"deliveryAddressId"`
	TotalPrice        int64       `json:"totalPrice"`
	State             string      `json:"state"`
	PaymentState      string      `json:"paymentState"`
	OwnerStaffID      *uuid.UUID  `json:"ownerStaffId"`
	CreatedAt         time.Time   `json:"createdAt"`
	Lines             []QueueLine `json:"lines"`
}
