package catalogrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
// It stores products in the products table and customer specific prices in
// price_overrides. Reads never fail on unknown ids: the price resolver decides
// what a missing product means.
//
// The repository works against whatever *gorm.DB it is given, so inside a unit
// of work it reads and writes through the open transaction.
//
// Example:
//
//	repo := catalogrepo.NewGormCatalogRepository(db, uow)
//	products, err := repo.GetProducts(ctx, []kernel.UUID{croissantID, baguetteID})
//	if err != nil {
//	    return err
//	}
type GormCatalogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates written through the repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCatalogRepository creates a catalog repository over db. tracker is
// notified after every successful write.
func NewGormCatalogRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository {
	return &GormCatalogRepository{db: db, tracker: tracker}
}

// AddProduct inserts a new product. A product whose id is already stored yields
// errs.ObjectAlreadyExistsError; any other driver failure is an errs.StorageError.
//
// Example:
//
//	price, _ := kernel.NewPositiveMoney(280)
//	baguette, _ := catalog.NewProduct(kernel.NewUUID(), "Baguette", "bread", price, "pcs")
//	if err := repo.AddProduct(ctx, baguette); err != nil {
//	    return err
//	}
func (r *GormCatalogRepository) AddProduct(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("product", product.ID())
		}
		return errs.NewStorageError("add product", err)
	}

	r.tracker.TrackAggregate(product.ID(), product)
	return nil
}

// GetProducts loads the known products among ids in a single query. Ids that
// are not in the catalog are skipped, so the result may be shorter than ids.
// An empty input returns an empty slice without touching the database.
func (r *GormCatalogRepository) GetProducts(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", rawIDs(ids)).Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("get products", err)
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := productToDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetOverrides returns the negotiated prices customerID has for productIDs.
// Products without an override are simply absent from the result.
//
// Example:
//
//	overrides, err := repo.GetOverrides(ctx, customerID, productIDs)
//	if err != nil {
//	    return err
//	}
//	resolved, err := resolver.Resolve(customerID, items, products, overrides)
func (r *GormCatalogRepository) GetOverrides(
	ctx context.Context, customerID kernel.UUID, productIDs []kernel.UUID,
) ([]*catalog.PriceOverride, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []*catalog.PriceOverride{}, nil
	}

	var dtos []PriceOverrideDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id IN ?", customerID.Bytes(), rawIDs(productIDs)).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageError("get price overrides", err)
	}

	overrides := make([]*catalog.PriceOverride, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := overrideToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// SetOverride upserts on the (customer_id, product_id) key: a second call for the
// same pair replaces the price instead of failing.
func (r *GormCatalogRepository) SetOverride(ctx context.Context, override *catalog.PriceOverride) error {
	if err := override.Validate(); err != nil {
		return err
	}

	dto := overrideFromDomain(override)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_minor"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewStorageError("set price override", err)
	}

	r.tracker.TrackAggregate(override.ProductID(), override)
	return nil
}
