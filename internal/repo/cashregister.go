package repo

import (
	"context"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashRegisterRepository handles till session data access
type CashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository
func NewCashRegisterRepository(db *gorm.DB) *CashRegisterRepository {
	return &CashRegisterRepository{db: db}
}

// GetByID gets a register by ID
func (r *CashRegisterRepository) GetByID(tenantID, id uuid.UUID) (*models.CashRegister, error) {
	var register models.CashRegister
	if err := r.db.Preload("Movements").Where("id = ? AND tenant_id = ?", id, tenantID).First(&register).Error; err != nil {
		return nil, err
	}
	return &register, nil
}

// ListOpenByBranch lists open till sessions for a branch. The Evaluator polls
// this on its tick; at most one row is expected per branch.
func (r *CashRegisterRepository) ListOpenByBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]models.CashRegister, error) {
	var registers []models.CashRegister
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND status = ?", tenantID, branchID, models.CashRegisterOpen).
		Find(&registers).Error
	if err != nil {
		return nil, err
	}
	return registers, nil
}

// GetOpenByBranch gets the single open register of a branch, if any
func (r *CashRegisterRepository) GetOpenByBranch(tenantID, branchID uuid.UUID) (*models.CashRegister, error) {
	var register models.CashRegister
	err := r.db.Where("tenant_id = ? AND branch_id = ? AND status = ?", tenantID, branchID, models.CashRegisterOpen).
		First(&register).Error
	if err != nil {
		return nil, err
	}
	return &register, nil
}

// Create creates a new register session
func (r *CashRegisterRepository) Create(register *models.CashRegister) error {
	return r.db.Create(register).Error
}

// Update updates a register session
func (r *CashRegisterRepository) Update(register *models.CashRegister) error {
	return r.db.Save(register).Error
}

// ListByBranch lists register history for a branch with pagination
func (r *CashRegisterRepository) ListByBranch(tenantID, branchID uuid.UUID, limit, offset int) (*models.PaginationResult[models.CashRegister], error) {
	var registers []models.CashRegister
	var total int64

	query := r.db.Model(&models.CashRegister{}).Where("tenant_id = ? AND branch_id = ?", tenantID, branchID)
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Order("opened_at DESC").
		Limit(limit).Offset(offset).
		Find(&registers).Error
	if err != nil {
		return nil, err
	}

	page := (offset / limit) + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.CashRegister]{
		Data:       registers,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// CreateMovement records a cash movement against a register
func (r *CashRegisterRepository) CreateMovement(movement *models.CashMovement) error {
	return r.db.Create(movement).Error
}

// ListMovements lists the movements of a register
func (r *CashRegisterRepository) ListMovements(tenantID, registerID uuid.UUID) ([]models.CashMovement, error) {
	var movements []models.CashMovement
	err := r.db.Where("tenant_id = ? AND cash_register_id = ?", tenantID, registerID).
		Order("created_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// DB exposes the underlying handle for transactional service operations
func (r *CashRegisterRepository) DB() *gorm.DB {
	return r.db
}
