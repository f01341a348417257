package handlers

import (
	"errors"
	"net/http"

	"fogon/internal/services"
	"fogon/internal/status"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SettingsHandler handles tenant settings, including business hours
type SettingsHandler struct {
	settingsService *services.TenantSettingsService
	evaluator       *status.Evaluator
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.TenantSettingsService, evaluator *status.Evaluator) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		evaluator:       evaluator,
	}
}

// List godoc
// @Summary List tenant settings
// @Tags settings
// @Produce json
// @Success 200 {array} models.TenantSetting
// @Failure 500 {object} map[string]string
// @Router /settings [get]
// @Security BearerAuth
func (h *SettingsHandler) List(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	settings, err := h.settingsService.GetAllSettings(c.Request().Context(), tenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch settings"})
	}

	return c.JSON(http.StatusOK, settings)
}

// Get godoc
// @Summary Get setting by key
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} models.TenantSetting
// @Failure 404 {object} map[string]string
// @Router /settings/{key} [get]
// @Security BearerAuth
func (h *SettingsHandler) Get(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	key := c.Param("key")

	setting, err := h.settingsService.GetSetting(c.Request().Context(), tenantID, key)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "setting not found"})
	}

	return c.JSON(http.StatusOK, setting)
}

// Update godoc
// @Summary Update setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body map[string]string true "Setting value"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /settings/{key} [put]
// @Security BearerAuth
func (h *SettingsHandler) Update(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	key := c.Param("key")

	// Business hours have a typed endpoint with validation
	if key == models.SettingKeyBusinessHours {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "use /settings/business-hours to update the schedule"})
	}

	var req struct {
		Value *string `json:"value"`
		Type  string  `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.Type == "" {
		req.Type = "string"
	}

	if err := h.settingsService.SetSetting(c.Request().Context(), tenantID, key, req.Value, req.Type); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "setting updated"})
}

// GetBusinessHours godoc
// @Summary Get business hours
// @Description Get the tenant's weekly opening schedule
// @Tags settings
// @Produce json
// @Success 200 {object} models.WeeklySchedule
// @Failure 404 {object} map[string]string
// @Router /settings/business-hours [get]
// @Security BearerAuth
func (h *SettingsHandler) GetBusinessHours(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	schedule, err := h.settingsService.BusinessHours(c.Request().Context(), tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "business hours not configured"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch business hours"})
	}

	return c.JSON(http.StatusOK, schedule)
}

// SetBusinessHours godoc
// @Summary Set business hours
// @Description Replace the tenant's weekly opening schedule. The schedule is
// @Description validated before saving and the storefront status is re-evaluated.
// @Tags settings
// @Accept json
// @Produce json
// @Param schedule body models.WeeklySchedule true "Weekly schedule"
// @Success 200 {object} models.WeeklySchedule
// @Failure 400 {object} map[string]string
// @Router /settings/business-hours [put]
// @Security BearerAuth
func (h *SettingsHandler) SetBusinessHours(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	var schedule models.WeeklySchedule
	if err := c.Bind(&schedule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.settingsService.SetBusinessHours(c.Request().Context(), tenantID, &schedule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// The cached storefront status may now be stale for every branch
	if h.evaluator != nil {
		h.evaluator.InvalidateTenant(tenantID)
	}

	return c.JSON(http.StatusOK, schedule)
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	settings := g.Group("/settings")

	settings.GET("", h.List)
	settings.GET("/business-hours", h.GetBusinessHours)
	settings.PUT("/business-hours", h.SetBusinessHours)
	settings.GET("/:key", h.Get)
	settings.PUT("/:key", h.Update)
}
