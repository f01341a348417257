package handlers

import (
	"net/http"

	"fogon/internal/repo"
	"fogon/internal/services"
	"fogon/internal/utils"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MenuItemHandler handles menu item management endpoints
type MenuItemHandler struct {
	menuRepo       *repo.MenuItemRepository
	storageService *services.StorageService
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(menuRepo *repo.MenuItemRepository, storageService *services.StorageService) *MenuItemHandler {
	return &MenuItemHandler{
		menuRepo:       menuRepo,
		storageService: storageService,
	}
}

// List godoc
// @Summary List menu items
// @Tags menu
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.PaginationResult[models.MenuItem]
// @Failure 500 {object} map[string]string
// @Router /menu-items [get]
// @Security BearerAuth
func (h *MenuItemHandler) List(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	limit, offset := paginationParams(c)

	result, err := h.menuRepo.List(tenantID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch menu items"})
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get menu item by ID
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /menu-items/{id} [get]
// @Security BearerAuth
func (h *MenuItemHandler) GetByID(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
	}

	item, err := h.menuRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "menu item not found"})
	}

	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param item body models.CreateMenuItemRequest true "Menu item data"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Router /menu-items [post]
// @Security BearerAuth
func (h *MenuItemHandler) Create(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	var req models.CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := utils.ValidateCategoryBelongsToTenant(h.menuRepo.DB(), tenantID, req.CategoryID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "category not found"})
	}

	item := &models.MenuItem{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		IsAvailable:     true,
		SortOrder:       req.SortOrder,
	}

	if err := h.menuRepo.Create(item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param item body models.UpdateMenuItemRequest true "Menu item data"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /menu-items/{id} [put]
// @Security BearerAuth
func (h *MenuItemHandler) Update(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
	}

	item, err := h.menuRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "menu item not found"})
	}

	var req models.UpdateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != "" {
		item.Price = req.Price
	}
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := h.menuRepo.Update(item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete menu item
// @Tags menu
// @Param id path string true "Menu item ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /menu-items/{id} [delete]
// @Security BearerAuth
func (h *MenuItemHandler) Delete(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
	}

	item, err := h.menuRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "menu item not found"})
	}

	if err := h.menuRepo.Delete(tenantID, id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if item.S3Key != "" && h.storageService != nil {
		go func() {
			_ = h.storageService.DeleteFile(item.S3Key)
		}()
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload menu item image
// @Description Upload a photo for a menu item; replaces the previous one
// @Tags menu
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Menu item ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /menu-items/{id}/image [post]
// @Security BearerAuth
func (h *MenuItemHandler) UploadImage(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	if h.storageService == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "image storage not configured"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
	}

	item, err := h.menuRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "menu item not found"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}

	publicURL, s3Key, err := h.storageService.UploadMenuItemImage(fileHeader, tenantID.String())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	previousKey := item.S3Key
	item.Image = publicURL
	item.S3Key = s3Key

	if err := h.menuRepo.Update(item); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save menu item image"})
	}

	if previousKey != "" {
		go func() {
			_ = h.storageService.DeleteFile(previousKey)
		}()
	}

	return c.JSON(http.StatusOK, item)
}

// RegisterRoutes registers menu item routes
func (h *MenuItemHandler) RegisterRoutes(g *echo.Group) {
	items := g.Group("/menu-items")

	items.GET("", h.List)
	items.GET("/:id", h.GetByID)
	items.POST("", h.Create)
	items.PUT("/:id", h.Update)
	items.DELETE("/:id", h.Delete)
	items.POST("/:id/image", h.UploadImage)
}
