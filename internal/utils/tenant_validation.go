package utils

import (
	"fmt"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantValidationError represents a tenant validation error
type TenantValidationError struct {
	ResourceType string
	ResourceID   uuid.UUID
	TenantID     uuid.UUID
}

func (e *TenantValidationError) Error() string {
	return fmt.Sprintf("%s with ID %s not found or access denied for tenant %s",
		e.ResourceType, e.ResourceID, e.TenantID)
}

func validateBelongsToTenant(db *gorm.DB, model interface{}, resourceType string, tenantID, resourceID uuid.UUID) error {
	var count int64
	if err := db.Model(model).
		Where("id = ? AND tenant_id = ?", resourceID, tenantID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to validate %s: %w", resourceType, err)
	}

	if count == 0 {
		return &TenantValidationError{
			ResourceType: resourceType,
			ResourceID:   resourceID,
			TenantID:     tenantID,
		}
	}

	return nil
}

// ValidateBranchBelongsToTenant validates that a branch belongs to the specified tenant
func ValidateBranchBelongsToTenant(db *gorm.DB, tenantID, branchID uuid.UUID) error {
	return validateBelongsToTenant(db, &models.Branch{}, "branch", tenantID, branchID)
}

// ValidateCategoryBelongsToTenant validates that a category belongs to the specified tenant.
// A nil category is allowed, menu items may be uncategorized.
func ValidateCategoryBelongsToTenant(db *gorm.DB, tenantID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil || *categoryID == uuid.Nil {
		return nil
	}
	return validateBelongsToTenant(db, &models.Category{}, "category", tenantID, *categoryID)
}
