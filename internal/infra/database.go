package infra

import (
	"fmt"

	"github.com/HIMS4RA/CocoPro/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Supplier{},
		&model.StockItem{},
		&model.StockMovement{},
		&model.ProductionRun{},
		&model.BatchProcess{},
		&model.BatchCounter{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// AutoMigrate cannot express a CHECK constraint; the non-negative balance
	// invariant gets a database-level backstop as well.
	return db.Exec(`
		DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stock_items_available_nonneg') THEN
		    ALTER TABLE stock_items
		      ADD CONSTRAINT chk_stock_items_available_nonneg CHECK (available_quantity >= 0);
		  END IF;
		END $$`).Error
}
