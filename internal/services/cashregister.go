package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRegisterAlreadyOpen is returned when a branch already has an open till
var ErrRegisterAlreadyOpen = errors.New("la sucursal ya tiene una caja abierta")

// ErrRegisterNotOpen is returned for operations that need an open till
var ErrRegisterNotOpen = errors.New("la caja no está abierta")

// StatusInvalidator is notified when a register opens or closes so the
// order-acceptance status can be recomputed without waiting for the poll
type StatusInvalidator interface {
	Invalidate(tenantID, branchID uuid.UUID)
}

// CashRegisterService manages till sessions and movements
type CashRegisterService struct {
	registerRepo *repo.CashRegisterRepository
	invalidator  StatusInvalidator
}

func NewCashRegisterService(registerRepo *repo.CashRegisterRepository) *CashRegisterService {
	return &CashRegisterService{registerRepo: registerRepo}
}

// SetStatusInvalidator wires the status evaluator for open/close notifications
func (s *CashRegisterService) SetStatusInvalidator(inv StatusInvalidator) {
	s.invalidator = inv
}

// Open starts a till session for a branch. At most one open register may
// exist per branch; the check and insert run in one transaction.
func (s *CashRegisterService) Open(tenantID, userID uuid.UUID, req *models.OpenCashRegisterRequest) (*models.CashRegister, error) {
	if _, err := strconv.ParseFloat(req.OpeningBalance, 64); err != nil {
		return nil, fmt.Errorf("saldo inicial inválido: %q", req.OpeningBalance)
	}

	register := &models.CashRegister{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		BranchID:        req.BranchID,
		Status:          models.CashRegisterOpen,
		OpeningBalance:  req.OpeningBalance,
		OpenedBy:        userID,
		OpenedAt:        time.Now(),
		Notes:           req.Notes,
	}

	err := s.registerRepo.DB().Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.CashRegister{}).
			Where("tenant_id = ? AND branch_id = ? AND status = ?", tenantID, req.BranchID, models.CashRegisterOpen).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrRegisterAlreadyOpen
		}
		return tx.Create(register).Error
	})
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(tenantID, req.BranchID)
	}

	return register, nil
}

// Close ends a till session, computing the expected amount from the opening
// balance and the recorded movements, and the difference against the count
func (s *CashRegisterService) Close(tenantID, registerID, userID uuid.UUID, req *models.CloseCashRegisterRequest) (*models.CashRegister, error) {
	register, err := s.registerRepo.GetByID(tenantID, registerID)
	if err != nil {
		return nil, err
	}
	if register.Status != models.CashRegisterOpen {
		return nil, ErrRegisterNotOpen
	}

	counted, err := strconv.ParseFloat(req.ClosingBalance, 64)
	if err != nil {
		return nil, fmt.Errorf("saldo de cierre inválido: %q", req.ClosingBalance)
	}

	movements, err := s.registerRepo.ListMovements(tenantID, registerID)
	if err != nil {
		return nil, err
	}

	expected, _ := strconv.ParseFloat(register.OpeningBalance, 64)
	for _, movement := range movements {
		amount, err := strconv.ParseFloat(movement.Amount, 64)
		if err != nil {
			continue
		}
		if movement.Direction == models.CashMovementIn {
			expected += amount
		} else {
			expected -= amount
		}
	}

	now := time.Now()
	expectedStr := fmt.Sprintf("%.2f", expected)
	differenceStr := fmt.Sprintf("%.2f", counted-expected)

	register.Status = models.CashRegisterClosed
	register.ClosingBalance = &req.ClosingBalance
	register.ExpectedAmount = &expectedStr
	register.Difference = &differenceStr
	register.ClosedBy = &userID
	register.ClosedAt = &now
	if req.Notes != "" {
		register.Notes = req.Notes
	}

	if err := s.registerRepo.Update(register); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(tenantID, register.BranchID)
	}

	return register, nil
}

// AddMovement records cash in/out against an open register
func (s *CashRegisterService) AddMovement(tenantID, registerID uuid.UUID, userID uuid.UUID, req *models.CreateCashMovementRequest) (*models.CashMovement, error) {
	register, err := s.registerRepo.GetByID(tenantID, registerID)
	if err != nil {
		return nil, err
	}
	if register.Status != models.CashRegisterOpen {
		return nil, ErrRegisterNotOpen
	}

	if _, err := strconv.ParseFloat(req.Amount, 64); err != nil {
		return nil, fmt.Errorf("monto inválido: %q", req.Amount)
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}

	movement := &models.CashMovement{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		CashRegisterID:  registerID,
		BranchID:        register.BranchID,
		Direction:       req.Direction,
		Method:          method,
		Amount:          req.Amount,
		Description:     req.Description,
		CreatedBy:       &userID,
	}

	if err := s.registerRepo.CreateMovement(movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// CurrentOpen returns the open register of a branch, if any
func (s *CashRegisterService) CurrentOpen(tenantID, branchID uuid.UUID) (*models.CashRegister, error) {
	return s.registerRepo.GetOpenByBranch(tenantID, branchID)
}

// History lists past register sessions of a branch
func (s *CashRegisterService) History(tenantID, branchID uuid.UUID, limit, offset int) (*models.PaginationResult[models.CashRegister], error) {
	return s.registerRepo.ListByBranch(tenantID, branchID, limit, offset)
}

// Movements lists the movements of a register
func (s *CashRegisterService) Movements(tenantID, registerID uuid.UUID) ([]models.CashMovement, error) {
	return s.registerRepo.ListMovements(tenantID, registerID)
}
