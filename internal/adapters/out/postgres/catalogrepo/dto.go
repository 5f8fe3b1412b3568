// Package catalogrepo persists products and customer price overrides.
package catalogrepo

import (
	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ProductDTO is the products row. Prices are stored in minor units.
type ProductDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Category       string    `gorm:"type:varchar(128);not null;index"`
	BasePriceMinor int64     `gorm:"not null"`
	Unit           string    `gorm:"type:varchar(32);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// PriceOverrideDTO uses (customer_id, product_id) as its primary key, which makes
// the pair unique.
type PriceOverrideDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	PriceMinor int64     `gorm:"not null"`
}

func (PriceOverrideDTO) TableName() string {
	return "price_overrides"
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID().Bytes(),
		Name:           p.Name(),
		Category:       p.Category(),
		BasePriceMinor: p.BasePrice().Minor(),
		Unit:           p.Unit(),
	}
}

func productToDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewPositiveMoney(dto.BasePriceMinor)
	if err != nil {
		return nil, err
	}
	return catalog.NewProduct(id, dto.Name, dto.Category, price, dto.Unit)
}

func overrideFromDomain(o *catalog.PriceOverride) PriceOverrideDTO {
	return PriceOverrideDTO{
		CustomerID: o.CustomerID().Bytes(),
		ProductID:  o.ProductID().Bytes(),
		PriceMinor: o.Price().Minor(),
	}
}

func overrideToDomain(dto PriceOverrideDTO) (*catalog.PriceOverride, error) {
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewPositiveMoney(dto.PriceMinor)
	if err != nil {
		return nil, err
	}
	return catalog.NewPriceOverride(customerID, productID, price)
}

// rawIDs unwraps domain ids for IN clauses.
func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
