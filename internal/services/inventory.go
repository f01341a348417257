package services

import (
	"errors"

	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when an outgoing adjustment exceeds stock
var ErrInsufficientStock = errors.New("existencias insuficientes")

// InventoryService manages branch stock
type InventoryService struct {
	inventoryRepo *repo.InventoryRepository
	tenantRepo    *repo.TenantRepository
	emailService  *EmailService
}

func NewInventoryService(inventoryRepo *repo.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// SetLowStockAlerts enables email alerts when an adjustment leaves an item
// at or below its threshold
func (s *InventoryService) SetLowStockAlerts(tenantRepo *repo.TenantRepository, emailService *EmailService) {
	s.tenantRepo = tenantRepo
	s.emailService = emailService
}

// Adjust records a stock movement and updates the quantity in one transaction
func (s *InventoryService) Adjust(tenantID, itemID, userID uuid.UUID, req *models.AdjustStockRequest) (*models.InventoryItem, error) {
	var item *models.InventoryItem

	err := s.inventoryRepo.DB().Transaction(func(tx *gorm.DB) error {
		var current models.InventoryItem
		err := tx.Where("id = ? AND tenant_id = ?", itemID, tenantID).First(&current).Error
		if err != nil {
			return err
		}

		switch req.Direction {
		case models.CashMovementIn:
			current.Quantity += req.Quantity
		case models.CashMovementOut:
			if current.Quantity < req.Quantity {
				return ErrInsufficientStock
			}
			current.Quantity -= req.Quantity
		}

		if err := tx.Save(&current).Error; err != nil {
			return err
		}

		movement := &models.StockMovement{
			BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
			InventoryItemID: current.ID,
			BranchID:        current.BranchID,
			Direction:       req.Direction,
			Quantity:        req.Quantity,
			Reason:          req.Reason,
			CreatedBy:       &userID,
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		item = &current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Direction == models.CashMovementOut && item.Quantity <= item.LowStockThreshold {
		go s.notifyLowStock(tenantID, item)
	}

	return item, nil
}

func (s *InventoryService) notifyLowStock(tenantID uuid.UUID, item *models.InventoryItem) {
	if s.emailService == nil || s.tenantRepo == nil {
		return
	}

	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil || tenant.Email == "" {
		return
	}

	err = s.emailService.SendLowStockAlert(tenant.Name, tenant.Email, []map[string]interface{}{
		{
			"Name":      item.Name,
			"Quantity":  item.Quantity,
			"Unit":      item.Unit,
			"Threshold": item.LowStockThreshold,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID.String()).Msg("Failed to send low stock alert")
	}
}
