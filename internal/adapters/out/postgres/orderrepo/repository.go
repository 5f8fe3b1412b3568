package orderrepo

import (
	"context"
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the order row and its lines. GORM writes the Lines association in the
// same statement batch, so inside a unit of work they commit or roll back together.
// An order id that is already stored yields errs.ObjectAlreadyExistsError and
// leaves the stored order untouched.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("order", aggregate.ID())
		}
		return errs.NewStorageError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID together with its lines in placement order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStorageError("get order", err)
	}

	return toDomain(dto)
}

// ApplyStateChange issues exactly one conditional UPDATE:
//
//	UPDATE orders SET fulfillment_state = $to, [owner_staff_id = $caller,] updated_at = $at
//	WHERE id = $id AND fulfillment_state = ANY($from)
//	  [AND owner_staff_id IS NULL] [AND owner_staff_id = $caller]
//
// Postgres re-evaluates the WHERE clause of a blocked UPDATE once the competing
// transaction commits, so of two racing claims exactly one affects a row.
func (r *GormOrderRepository) ApplyStateChange(ctx context.Context, change order.StateChange, at time.Time) (bool, error) {
	if err := change.Validate(); err != nil {
		return false, err
	}

	updates := map[string]any{
		"fulfillment_state": change.To().String(),
		"updated_at":        at,
	}
	if owner, ok := change.NewOwner(); ok {
		updates["owner_staff_id"] = owner.Bytes()
		if change.SetsPreparedBy() {
			updates["prepared_by"] = owner.Bytes()
		}
	}

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", change.OrderID().Bytes()).
		Where("fulfillment_state = ANY(?)", pq.Array(stateNames(change.From())))
	if change.RequiresUnclaimed() {
		query = query.Where("owner_staff_id IS NULL")
	}
	if owner, ok := change.RequiredOwner(); ok {
		query = query.Where("owner_staff_id = ?", owner.Bytes())
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return false, errs.NewStorageError(change.Kind().String()+" order", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(change.OrderID(), change)
	return true, nil
}

// MarkPaid flips payment_state from unpaid to paid and leaves fulfillment_state alone.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND payment_state = ?", id.Bytes(), order.Unpaid.String()).
		Updates(map[string]any{
			"payment_state": order.Paid.String(),
			"updated_at":    at,
		})
	if result.Error != nil {
		return false, errs.NewStorageError("mark order paid", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormOrderRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, errs.NewStorageError("check order exists", err)
	}
	return count > 0, nil
}
