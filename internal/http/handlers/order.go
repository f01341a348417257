package handlers

import (
	"net/http"

	"fogon/internal/repo"
	"fogon/internal/services"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler handles staff-facing order endpoints
type OrderHandler struct {
	orderRepo    *repo.OrderRepository
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderRepo *repo.OrderRepository, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderRepo:    orderRepo,
		orderService: orderService,
	}
}

// List godoc
// @Summary List orders
// @Description List orders, optionally filtered by branch and status
// @Tags orders
// @Produce json
// @Param branch_id query string false "Branch ID"
// @Param status query string false "Order status"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.PaginationResult[models.Order]
// @Failure 400 {object} map[string]string
// @Router /orders [get]
// @Security BearerAuth
func (h *OrderHandler) List(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	limit, offset := paginationParams(c)

	branchParam := c.QueryParam("branch_id")
	statusParam := c.QueryParam("status")

	var result *models.PaginationResult[models.Order]
	var err error

	switch {
	case branchParam != "" && statusParam != "":
		var branchID uuid.UUID
		if branchID, err = uuid.Parse(branchParam); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		}
		result, err = h.orderRepo.ListByStatus(tenantID, branchID, statusParam, limit, offset)
	case branchParam != "":
		var branchID uuid.UUID
		if branchID, err = uuid.Parse(branchParam); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		}
		result, err = h.orderRepo.ListByBranch(tenantID, branchID, limit, offset)
	default:
		result, err = h.orderRepo.List(tenantID, limit, offset)
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get order by ID
// @Description Get an order with its items and status history
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetByID(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
	}

	order, err := h.orderRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Apply a lifecycle transition to an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [put]
// @Security BearerAuth
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	order, err := h.orderService.UpdateStatus(tenantID, id, userID, &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, order)
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	orders := g.Group("/orders")

	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.PUT("/:id/status", h.UpdateStatus)
}
