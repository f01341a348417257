package repo

import (
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemRepository handles menu item data access
type MenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

// GetByID gets a menu item by ID
func (r *MenuItemRepository) GetByID(tenantID, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new menu item
func (r *MenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update updates a menu item
func (r *MenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete soft deletes a menu item
func (r *MenuItemRepository) Delete(tenantID, id uuid.UUID) error {
	return r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.MenuItem{}).Error
}

// List lists menu items for a tenant with pagination
func (r *MenuItemRepository) List(tenantID uuid.UUID, limit, offset int) (*models.PaginationResult[models.MenuItem], error) {
	var items []models.MenuItem
	var total int64

	if err := r.db.Model(&models.MenuItem{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	page := (offset / limit) + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.MenuItem]{
		Data:       items,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// ListByCategory gets items of one category
func (r *MenuItemRepository) ListByCategory(tenantID, categoryID uuid.UUID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("tenant_id = ? AND category_id = ?", tenantID, categoryID).
		Order("sort_order ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAvailable gets available items for the public storefront
func (r *MenuItemRepository) ListAvailable(tenantID uuid.UUID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("tenant_id = ? AND is_available = true", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DB exposes the underlying connection for cross-entity checks
func (r *MenuItemRepository) DB() *gorm.DB {
	return r.db
}

// GetManyByID loads several items by ID in one query
func (r *MenuItemRepository) GetManyByID(tenantID uuid.UUID, ids []uuid.UUID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.Where("tenant_id = ? AND id IN ?", tenantID, ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
