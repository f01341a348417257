package repo

import (
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftRepository handles staff shift data access
type ShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// GetByID gets a shift by ID
func (r *ShiftRepository) GetByID(tenantID, id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&shift).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

// GetOpenByBranch gets the open shift of a branch, if any
func (r *ShiftRepository) GetOpenByBranch(tenantID, branchID uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.Where("tenant_id = ? AND branch_id = ? AND status = 'open'", tenantID, branchID).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// Create creates a new shift
func (r *ShiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

// Update updates a shift
func (r *ShiftRepository) Update(shift *models.Shift) error {
	return r.db.Save(shift).Error
}

// ListByBranch lists shift history for a branch with pagination
func (r *ShiftRepository) ListByBranch(tenantID, branchID uuid.UUID, limit, offset int) (*models.PaginationResult[models.Shift], error) {
	var shifts []models.Shift
	var total int64

	query := r.db.Model(&models.Shift{}).Where("tenant_id = ? AND branch_id = ?", tenantID, branchID)
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Order("opened_at DESC").
		Limit(limit).Offset(offset).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	page := (offset / limit) + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Shift]{
		Data:       shifts,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// DB exposes the underlying handle for transactional service operations
func (r *ShiftRepository) DB() *gorm.DB {
	return r.db
}
