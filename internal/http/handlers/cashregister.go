package handlers

import (
	"errors"
	"net/http"

	"fogon/internal/services"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CashRegisterHandler handles till session endpoints
type CashRegisterHandler struct {
	registerService *services.CashRegisterService
}

// NewCashRegisterHandler creates a new cash register handler
func NewCashRegisterHandler(registerService *services.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{registerService: registerService}
}

// Open godoc
// @Summary Open cash register
// @Description Open a till session for a branch; only one may be open per branch
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param request body models.OpenCashRegisterRequest true "Opening data"
// @Success 201 {object} models.CashRegister
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cash-registers/open [post]
// @Security BearerAuth
func (h *CashRegisterHandler) Open(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	var req models.OpenCashRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	register, err := h.registerService.Open(tenantID, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrRegisterAlreadyOpen) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, register)
}

// Close godoc
// @Summary Close cash register
// @Description Close a till session, computing expected balance and difference
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param request body models.CloseCashRegisterRequest true "Closing data"
// @Success 200 {object} models.CashRegister
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cash-registers/{id}/close [post]
// @Security BearerAuth
func (h *CashRegisterHandler) Close(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cash register ID"})
	}

	var req models.CloseCashRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	register, err := h.registerService.Close(tenantID, id, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrRegisterNotOpen) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, register)
}

// Current godoc
// @Summary Get open cash register
// @Description Get the currently open till session for a branch, if any
// @Tags cash-registers
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 200 {object} models.CashRegister
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{branch_id}/cash-register [get]
// @Security BearerAuth
func (h *CashRegisterHandler) Current(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	register, err := h.registerService.CurrentOpen(tenantID, branchID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open cash register for this branch"})
	}

	return c.JSON(http.StatusOK, register)
}

// History godoc
// @Summary List till sessions
// @Tags cash-registers
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.PaginationResult[models.CashRegister]
// @Failure 400 {object} map[string]string
// @Router /branches/{branch_id}/cash-registers [get]
// @Security BearerAuth
func (h *CashRegisterHandler) History(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	limit, offset := paginationParams(c)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	result, err := h.registerService.History(tenantID, branchID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch cash registers"})
	}

	return c.JSON(http.StatusOK, result)
}

// AddMovement godoc
// @Summary Record cash movement
// @Description Record a cash in/out movement on an open till session
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param movement body models.CreateCashMovementRequest true "Movement"
// @Success 201 {object} models.CashMovement
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cash-registers/{id}/movements [post]
// @Security BearerAuth
func (h *CashRegisterHandler) AddMovement(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cash register ID"})
	}

	var req models.CreateCashMovementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	movement, err := h.registerService.AddMovement(tenantID, id, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrRegisterNotOpen) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, movement)
}

// Movements godoc
// @Summary List cash movements
// @Tags cash-registers
// @Produce json
// @Param id path string true "Cash register ID"
// @Success 200 {array} models.CashMovement
// @Failure 400 {object} map[string]string
// @Router /cash-registers/{id}/movements [get]
// @Security BearerAuth
func (h *CashRegisterHandler) Movements(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cash register ID"})
	}

	movements, err := h.registerService.Movements(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch movements"})
	}

	return c.JSON(http.StatusOK, movements)
}
