package services

import (
	"context"
	"encoding/json"
	"fmt"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantSettingsService stores tenant configuration as key/value rows.
// Business hours live under models.SettingKeyBusinessHours as JSON.
type TenantSettingsService struct {
	db *gorm.DB
}

func NewTenantSettingsService(db *gorm.DB) *TenantSettingsService {
	return &TenantSettingsService{db: db}
}

// GetSetting retrieves a specific setting for a tenant
func (s *TenantSettingsService) GetSetting(ctx context.Context, tenantID uuid.UUID, key string) (*models.TenantSetting, error) {
	var setting models.TenantSetting
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND setting_key = ? AND is_active = true", tenantID, key).
		First(&setting).Error

	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// GetAllSettings retrieves all settings for a tenant
func (s *TenantSettingsService) GetAllSettings(ctx context.Context, tenantID uuid.UUID) ([]models.TenantSetting, error) {
	var settings []models.TenantSetting
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = true", tenantID).
		Find(&settings).Error

	return settings, err
}

// SetSetting creates or updates a setting for a tenant
func (s *TenantSettingsService) SetSetting(ctx context.Context, tenantID uuid.UUID, key string, value *string, settingType string) error {
	setting := models.TenantSetting{
		TenantID:     tenantID,
		SettingKey:   key,
		SettingValue: value,
		SettingType:  settingType,
		IsActive:     true,
	}

	return s.db.WithContext(ctx).
		Where("tenant_id = ? AND setting_key = ?", tenantID, key).
		Assign(setting).
		FirstOrCreate(&setting).Error
}

// BusinessHours loads and decodes the tenant's weekly schedule. Returns
// gorm.ErrRecordNotFound when no schedule is configured; the caller is
// expected to fail safe to closed.
func (s *TenantSettingsService) BusinessHours(ctx context.Context, tenantID uuid.UUID) (*models.WeeklySchedule, error) {
	setting, err := s.GetSetting(ctx, tenantID, models.SettingKeyBusinessHours)
	if err != nil {
		return nil, err
	}
	if setting.SettingValue == nil {
		return nil, gorm.ErrRecordNotFound
	}

	var schedule models.WeeklySchedule
	if err := json.Unmarshal([]byte(*setting.SettingValue), &schedule); err != nil {
		return nil, fmt.Errorf("failed to decode business hours: %w", err)
	}

	return &schedule, nil
}

// SetBusinessHours validates and stores the tenant's weekly schedule
func (s *TenantSettingsService) SetBusinessHours(ctx context.Context, tenantID uuid.UUID, schedule *models.WeeklySchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	encoded, err := json.Marshal(schedule)
	if err != nil {
		return err
	}

	value := string(encoded)
	return s.SetSetting(ctx, tenantID, models.SettingKeyBusinessHours, &value, "json")
}
