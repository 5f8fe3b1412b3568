package postgres

import (
	"fmt"

	"bakery/internal/adapters/out/postgres/catalogrepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/staffrepo"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a lib/pq connection string from its parts.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects gorm through lib/pq so that pq.Array parameters bind natively.
// Driver errors are translated, so a unique violation surfaces as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.ProductDTO{},
		&catalogrepo.PriceOverrideDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&staffrepo.StaffMemberDTO{},
	)
}
