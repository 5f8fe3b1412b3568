// Package postgres provides the GORM implementation of the Unit of Work pattern
// and the database bootstrap (Open, Migrate).
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	products, err := uow.CatalogRepository().GetProducts(ctx, ids)
//	// ...
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction; concurrent operations
// must use separate instances.
package postgres

import (
	"context"

	"bakery/internal/adapters/out/postgres/catalogrepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/staffrepo"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate (or applied state change) written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type, for callers that need TrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records which aggregates
// were written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction without one.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StaffRepository() ports.StaffRepository {
	return staffrepo.NewGormStaffRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns what was written since Begin (or since the last rollback).
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	tracked := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(tracked, uow.trackedAggregates)
	return tracked
}

// conn returns the open transaction, or the pool when there is none.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
