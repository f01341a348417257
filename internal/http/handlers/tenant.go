package handlers

import (
	"net/http"
	"strconv"

	"fogon/internal/auth"
	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TenantHandler handles tenant management endpoints
type TenantHandler struct {
	tenantRepo  *repo.TenantRepository
	authService *auth.Service
	db          *gorm.DB
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantRepo *repo.TenantRepository, authService *auth.Service, db *gorm.DB) *TenantHandler {
	return &TenantHandler{
		tenantRepo:  tenantRepo,
		authService: authService,
		db:          db,
	}
}

// CreateTenantRequest represents a tenant onboarding request
type CreateTenantRequest struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required,lowercase,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`

	// Initial tenant admin credentials
	AdminName     string `json:"admin_name" validate:"required"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=6"`
}

// List godoc
// @Summary List tenants
// @Description List all tenants (system admin only)
// @Tags tenants
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.PaginationResult[models.Tenant]
// @Failure 500 {object} map[string]string
// @Router /admin/tenants [get]
// @Security BearerAuth
func (h *TenantHandler) List(c echo.Context) error {
	limit, offset := paginationParams(c)

	result, err := h.tenantRepo.List(limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch tenants"})
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get tenant by ID
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/tenants/{id} [get]
// @Security BearerAuth
func (h *TenantHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tenant ID"})
	}

	tenant, err := h.tenantRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "tenant not found"})
	}

	return c.JSON(http.StatusOK, tenant)
}

// Create godoc
// @Summary Create tenant
// @Description Onboard a new restaurant with its initial admin user
// @Tags tenants
// @Accept json
// @Produce json
// @Param request body CreateTenantRequest true "Tenant data"
// @Success 201 {object} models.Tenant
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/tenants [post]
// @Security BearerAuth
func (h *TenantHandler) Create(c echo.Context) error {
	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	exists, err := h.tenantRepo.SlugExists(req.Slug)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to verify slug"})
	}
	if exists {
		return c.JSON(http.StatusConflict, map[string]string{"error": "slug already in use"})
	}

	hashedPassword, err := h.authService.HashPassword(req.AdminPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to process password"})
	}

	tenant := &models.Tenant{
		Name:  req.Name,
		Slug:  req.Slug,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.Timezone != "" {
		tenant.Timezone = req.Timezone
	}
	if req.Currency != "" {
		tenant.Currency = req.Currency
	}

	// Tenant and its first admin are created together
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		admin := &models.User{
			TenantID: &tenant.ID,
			Email:    req.AdminEmail,
			Password: hashedPassword,
			Name:     req.AdminName,
			Role:     "tenant_admin",
			IsActive: true,
		}
		return tx.Create(admin).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, tenant)
}

// Update godoc
// @Summary Update tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param tenant body models.Tenant true "Tenant data"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/tenants/{id} [put]
// @Security BearerAuth
func (h *TenantHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tenant ID"})
	}

	tenant, err := h.tenantRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "tenant not found"})
	}

	var req models.Tenant
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	tenant.Name = req.Name
	tenant.Status = req.Status
	tenant.About = req.About
	tenant.LogoURL = req.LogoURL
	tenant.Phone = req.Phone
	tenant.Email = req.Email
	tenant.Street = req.Street
	tenant.Neighborhood = req.Neighborhood
	tenant.City = req.City
	tenant.State = req.State
	tenant.ZipCode = req.ZipCode
	tenant.IsPublicStore = req.IsPublicStore
	if req.Timezone != "" {
		tenant.Timezone = req.Timezone
	}
	if req.Currency != "" {
		tenant.Currency = req.Currency
	}

	if err := h.tenantRepo.Update(tenant); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, tenant)
}

// Delete godoc
// @Summary Delete tenant
// @Tags tenants
// @Param id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /admin/tenants/{id} [delete]
// @Security BearerAuth
func (h *TenantHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tenant ID"})
	}

	if err := h.tenantRepo.Delete(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProfile godoc
// @Summary Get tenant profile
// @Description Get the authenticated tenant's own profile
// @Tags tenants
// @Produce json
// @Success 200 {object} models.Tenant
// @Failure 404 {object} map[string]string
// @Router /tenant/profile [get]
// @Security BearerAuth
func (h *TenantHandler) GetProfile(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	tenant, err := h.tenantRepo.GetByID(tenantID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "tenant not found"})
	}

	return c.JSON(http.StatusOK, tenant)
}

// UpdateProfile godoc
// @Summary Update tenant profile
// @Description Update the authenticated tenant's own profile
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body models.Tenant true "Tenant data"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} map[string]string
// @Router /tenant/profile [put]
// @Security BearerAuth
func (h *TenantHandler) UpdateProfile(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	tenant, err := h.tenantRepo.GetByID(tenantID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "tenant not found"})
	}

	var req models.Tenant
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	// Tenants manage their public presence, not their own status or slug
	tenant.Name = req.Name
	tenant.About = req.About
	tenant.LogoURL = req.LogoURL
	tenant.Phone = req.Phone
	tenant.Email = req.Email
	tenant.Street = req.Street
	tenant.Neighborhood = req.Neighborhood
	tenant.City = req.City
	tenant.State = req.State
	tenant.ZipCode = req.ZipCode
	tenant.IsPublicStore = req.IsPublicStore
	if req.Timezone != "" {
		tenant.Timezone = req.Timezone
	}

	if err := h.tenantRepo.Update(tenant); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, tenant)
}

// paginationParams extracts limit/offset query parameters with defaults
func paginationParams(c echo.Context) (int, int) {
	limit := 20
	offset := 0

	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
