package handlers

import (
	"errors"
	"net/http"

	"fogon/internal/services"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ShiftHandler handles staff shift endpoints
type ShiftHandler struct {
	shiftService *services.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open godoc
// @Summary Open shift
// @Description Open a work shift for the authenticated user at a branch
// @Tags shifts
// @Accept json
// @Produce json
// @Param request body models.OpenShiftRequest true "Shift data"
// @Success 201 {object} models.Shift
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shifts/open [post]
// @Security BearerAuth
func (h *ShiftHandler) Open(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	var req models.OpenShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	shift, err := h.shiftService.Open(tenantID, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrShiftAlreadyOpen) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, shift)
}

// Close godoc
// @Summary Close shift
// @Tags shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} models.Shift
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shifts/{id}/close [post]
// @Security BearerAuth
func (h *ShiftHandler) Close(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	userID := c.Get("user_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid shift ID"})
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	shift, err := h.shiftService.Close(tenantID, id, userID, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrShiftNotOpen) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, shift)
}

// Current godoc
// @Summary Get open shift
// @Description Get the currently open shift for a branch, if any
// @Tags shifts
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 200 {object} models.Shift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{branch_id}/shift [get]
// @Security BearerAuth
func (h *ShiftHandler) Current(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	shift, err := h.shiftService.CurrentOpen(tenantID, branchID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open shift for this branch"})
	}

	return c.JSON(http.StatusOK, shift)
}

// History godoc
// @Summary List shifts
// @Tags shifts
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.PaginationResult[models.Shift]
// @Failure 400 {object} map[string]string
// @Router /branches/{branch_id}/shifts [get]
// @Security BearerAuth
func (h *ShiftHandler) History(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)
	limit, offset := paginationParams(c)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	result, err := h.shiftService.History(tenantID, branchID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch shifts"})
	}

	return c.JSON(http.StatusOK, result)
}
