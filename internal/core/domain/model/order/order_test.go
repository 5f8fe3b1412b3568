package order_test

import (
	"testing"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, minor int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewPositiveMoney(minor)
	require.NoError(t, err)
	return m
}

func mustLine(t *testing.T, quantity int, unitPrice int64) *order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), quantity, mustMoney(t, unitPrice))
	require.NoError(t, err)
	return line
}

func TestNewLine(t *testing.T) {
	t.Run("should compute line total", func(t *testing.T) {
		line := mustLine(t, 12, 280)

		assert.Equal(t, 12, line.Quantity())
		assert.Equal(t, int64(280), line.UnitPrice().Minor())
		assert.Equal(t, int64(3360), line.Total().Minor())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -3} {
			line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), q, mustMoney(t, 100))

			require.Error(t, err)
			assert.Nil(t, line)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject quantity above the maximum", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), order.MaxLineQuantity+1, mustMoney(t, 100))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject zero unit price", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, kernel.Zero())

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewOrder(t *testing.T) {
	id, customerID, addressID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("should create pending unpaid unclaimed order with derived total", func(t *testing.T) {
		lines := []*order.Line{mustLine(t, 12, 280), mustLine(t, 1, 4500)}

		o, err := order.NewOrder(id, customerID, addressID, lines, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.True(t, o.DeliveryAddressID().IsEqual(addressID))
		assert.Equal(t, int64(7860), o.TotalPrice().Minor())
		assert.Equal(t, order.Pending, o.FulfillmentState())
		assert.Equal(t, order.Unpaid, o.PaymentState())
		assert.Nil(t, o.Owner())
		assert.Nil(t, o.PreparedBy())
		assert.Len(t, o.Lines(), 2)
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should fail without lines", func(t *testing.T) {
		o, err := order.NewOrder(id, customerID, addressID, nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with duplicate products", func(t *testing.T) {
		first := mustLine(t, 1, 100)
		second, err := order.NewLine(kernel.NewUUID(), first.ProductID(), 2, mustMoney(t, 100))
		require.NoError(t, err)

		_, err = order.NewOrder(id, customerID, addressID, []*order.Line{first, second}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("should join errors for missing customer and address", func(t *testing.T) {
		_, err := order.NewOrder(id, kernel.UUID{}, kernel.UUID{}, []*order.Line{mustLine(t, 1, 1)}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer id")
		assert.Contains(t, err.Error(), "delivery address id")
	})

	t.Run("should reject a line not built by its constructor", func(t *testing.T) {
		_, err := order.NewOrder(id, customerID, addressID, []*order.Line{{}}, now)

		assert.ErrorIs(t, err, order.ErrLineIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	lines := []*order.Line{mustLine(t, 2, 150)}
	owner := kernel.NewUUID()
	base := order.RestoreOrderParams{
		ID:                kernel.NewUUID(),
		CustomerID:        kernel.NewUUID(),
		DeliveryAddressID: kernel.NewUUID(),
		Lines:             lines,
		TotalPrice:        mustMoney(t, 300),
		FulfillmentState:  order.Preparing,
		PaymentState:      order.Paid,
		OwnerID:           &owner,
		PreparedByID:      &owner,
	}

	t.Run("should restore a consistent snapshot", func(t *testing.T) {
		o, err := order.RestoreOrder(base)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.FulfillmentState())
		assert.True(t, o.IsPaid())
		require.NotNil(t, o.Owner())
		assert.True(t, o.Owner().IsEqual(owner))
	})

	t.Run("should detect total mismatch", func(t *testing.T) {
		p := base
		p.TotalPrice = mustMoney(t, 301)

		_, err := order.RestoreOrder(p)

		assert.ErrorIs(t, err, order.ErrTotalMismatch)
	})

	t.Run("should reject owner on pending order", func(t *testing.T) {
		p := base
		p.FulfillmentState = order.Pending

		_, err := order.RestoreOrder(p)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing owner while preparing", func(t *testing.T) {
		p := base
		p.OwnerID = nil

		_, err := order.RestoreOrder(p)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should allow cancelled order with or without owner", func(t *testing.T) {
		p := base
		p.FulfillmentState = order.Cancelled
		_, err := order.RestoreOrder(p)
		require.NoError(t, err)

		p.OwnerID = nil
		_, err = order.RestoreOrder(p)
		require.NoError(t, err)
	})
}
