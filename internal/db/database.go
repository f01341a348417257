package db

import (
	"fmt"
	"log"
	"os"

	"fogon/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("Warning: Could not create uuid-ossp extension: %v", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Printf("Warning: Failed to create some custom indexes: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// One tenant setting per key
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_settings_key ON tenant_settings(tenant_id, setting_key)`,

		// At most one open cash register per branch
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cash_registers_open_branch ON cash_registers(tenant_id, branch_id) WHERE status = 'open' AND deleted_at IS NULL`,

		// At most one open shift per branch
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_open_branch ON shifts(tenant_id, branch_id) WHERE status = 'open' AND deleted_at IS NULL`,

		// Order numbers are unique within a branch
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_branch_number ON orders(tenant_id, branch_id, order_number)`,

		// Full text search over the menu
		`CREATE INDEX IF NOT EXISTS idx_menu_items_search ON menu_items USING gin(to_tsvector('spanish', coalesce(name, '') || ' ' || coalesce(description, '')))`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s - %v", idx, err)
		}
	}

	return nil
}
