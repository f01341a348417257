package repo

import (
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository handles stock data access
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetByID gets an inventory item by ID
func (r *InventoryRepository) GetByID(tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new inventory item
func (r *InventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// Update updates an inventory item
func (r *InventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete soft deletes an inventory item
func (r *InventoryRepository) Delete(tenantID, id uuid.UUID) error {
	return r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.InventoryItem{}).Error
}

// ListByBranch lists stock records for a branch
func (r *InventoryRepository) ListByBranch(tenantID, branchID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListLowStock lists items at or below their low-stock threshold
func (r *InventoryRepository) ListLowStock(tenantID, branchID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Where("tenant_id = ? AND branch_id = ? AND quantity <= low_stock_threshold", tenantID, branchID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListMovements lists movements of one inventory item
func (r *InventoryRepository) ListMovements(tenantID, itemID uuid.UUID, limit, offset int) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.db.Where("tenant_id = ? AND inventory_item_id = ?", tenantID, itemID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// DB exposes the underlying handle for transactional service operations
func (r *InventoryRepository) DB() *gorm.DB {
	return r.db
}
