package repo

import (
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchRepository handles branch data access
type BranchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// GetByID gets a branch by ID
func (r *BranchRepository) GetByID(tenantID, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// Create creates a new branch
func (r *BranchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

// Update updates a branch
func (r *BranchRepository) Update(branch *models.Branch) error {
	return r.db.Save(branch).Error
}

// Delete soft deletes a branch
func (r *BranchRepository) Delete(tenantID, id uuid.UUID) error {
	return r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Branch{}).Error
}

// List gets all branches for a tenant
func (r *BranchRepository) List(tenantID uuid.UUID) ([]models.Branch, error) {
	var branches []models.Branch
	if err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// ListActive gets all active branches for a tenant
func (r *BranchRepository) ListActive(tenantID uuid.UUID) ([]models.Branch, error) {
	var branches []models.Branch
	if err := r.db.Where("tenant_id = ? AND is_active = true", tenantID).Order("name ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
