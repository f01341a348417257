package services

import (
	"errors"
	"time"

	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrShiftAlreadyOpen is returned when a branch already has an open shift
var ErrShiftAlreadyOpen = errors.New("la sucursal ya tiene un turno abierto")

// ErrShiftNotOpen is returned when closing a shift that is not open
var ErrShiftNotOpen = errors.New("el turno no está abierto")

// ShiftService manages staff shifts per branch
type ShiftService struct {
	shiftRepo *repo.ShiftRepository
}

func NewShiftService(shiftRepo *repo.ShiftRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo}
}

// Open starts a shift for a branch; at most one open shift per branch
func (s *ShiftService) Open(tenantID, userID uuid.UUID, req *models.OpenShiftRequest) (*models.Shift, error) {
	shift := &models.Shift{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		BranchID:        req.BranchID,
		Status:          "open",
		OpenedBy:        userID,
		OpenedAt:        time.Now(),
		Notes:           req.Notes,
	}

	err := s.shiftRepo.DB().Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Shift{}).
			Where("tenant_id = ? AND branch_id = ? AND status = 'open'", tenantID, req.BranchID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrShiftAlreadyOpen
		}
		return tx.Create(shift).Error
	})
	if err != nil {
		return nil, err
	}

	return shift, nil
}

// Close ends an open shift
func (s *ShiftService) Close(tenantID, shiftID, userID uuid.UUID, notes string) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(tenantID, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != "open" {
		return nil, ErrShiftNotOpen
	}

	now := time.Now()
	shift.Status = "closed"
	shift.ClosedBy = &userID
	shift.ClosedAt = &now
	if notes != "" {
		shift.Notes = notes
	}

	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// CurrentOpen returns the open shift of a branch, if any
func (s *ShiftService) CurrentOpen(tenantID, branchID uuid.UUID) (*models.Shift, error) {
	return s.shiftRepo.GetOpenByBranch(tenantID, branchID)
}

// History lists past shifts of a branch
func (s *ShiftService) History(tenantID, branchID uuid.UUID, limit, offset int) (*models.PaginationResult[models.Shift], error) {
	return s.shiftRepo.ListByBranch(tenantID, branchID, limit, offset)
}
