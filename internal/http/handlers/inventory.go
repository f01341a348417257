package handlers

import (
	"errors"
	"net/http"

	"fogon/internal/repo"
	"fogon/internal/services"
	"fogon/internal/utils"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandler handles branch inventory endpoints
type InventoryHandler struct {
	inventoryRepo    *repo.InventoryRepository
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryRepo *repo.InventoryRepository, inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryRepo:    inventoryRepo,
		inventoryService: inventoryService,
	}
}

// List godoc
// @Summary List branch inventory
// @Tags inventory
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 200 {array} models.InventoryItem
// @Failure 400 {object} map[string]string
// @Router /branches/{branch_id}/inventory [get]
// @Security BearerAuth
func (h *InventoryHandler) List(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	items, err := h.inventoryRepo.ListByBranch(tenantID, branchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch inventory"})
	}

	return c.JSON(http.StatusOK, items)
}

// ListLowStock godoc
// @Summary List low stock items
// @Description List inventory items at or below their low stock threshold
// @Tags inventory
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 200 {array} models.InventoryItem
// @Failure 400 {object} map[string]string
// @Router /branches/{branch_id}/inventory/low-stock [get]
// @Security BearerAuth
func (h *InventoryHandler) ListLowStock(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	items, err := h.inventoryRepo.ListLowStock(tenantID, branchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch low stock items"})
	}

	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param item body models.InventoryItem true "Inventory item"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {object} map[string]string
// @Router /branches/{branch_id}/inventory [post]
// @Security BearerAuth
func (h *InventoryHandler) Create(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	if err := utils.ValidateBranchBelongsToTenant(h.inventoryRepo.DB(), tenantID, branchID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "branch not found"})
	}

	var item models.InventoryItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item.TenantID = tenantID
	item.BranchID = branchID

	if err := h.inventoryRepo.Create(&item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, item)
}

// Adjust godoc
// @Summary Adjust stock
// @Description Record a stock movement for an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param adjustment body models.AdjustStockRequest true "Adjustment"
// @Success 200 {object} models.InventoryItem
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inventory/{id}/adjust [post]
// @Security BearerAuth
func (h *InventoryHandler) Adjust(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid inventory item ID"})
	}

	var req models.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.inventoryService.Adjust(tenantID, id, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, item)
}

// Movements godoc
// @Summary List stock movements
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {array} models.StockMovement
// @Failure 400 {object} map[string]string
// @Router /inventory/{id}/movements [get]
// @Security BearerAuth
func (h *InventoryHandler) Movements(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	limit, offset := paginationParams(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid inventory item ID"})
	}

	movements, err := h.inventoryRepo.ListMovements(tenantID, id, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch movements"})
	}

	return c.JSON(http.StatusOK, movements)
}
