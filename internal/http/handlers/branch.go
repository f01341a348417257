package handlers

import (
	"net/http"

	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BranchHandler handles branch management endpoints
type BranchHandler struct {
	branchRepo *repo.BranchRepository
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchRepo *repo.BranchRepository) *BranchHandler {
	return &BranchHandler{branchRepo: branchRepo}
}

// List godoc
// @Summary List branches
// @Tags branches
// @Produce json
// @Success 200 {array} models.Branch
// @Failure 500 {object} map[string]string
// @Router /branches [get]
// @Security BearerAuth
func (h *BranchHandler) List(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	branches, err := h.branchRepo.List(tenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch branches"})
	}

	return c.JSON(http.StatusOK, branches)
}

// GetByID godoc
// @Summary Get branch by ID
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{id} [get]
// @Security BearerAuth
func (h *BranchHandler) GetByID(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	branch, err := h.branchRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "branch not found"})
	}

	return c.JSON(http.StatusOK, branch)
}

// Create godoc
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body models.Branch true "Branch data"
// @Success 201 {object} models.Branch
// @Failure 400 {object} map[string]string
// @Router /branches [post]
// @Security BearerAuth
func (h *BranchHandler) Create(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	var branch models.Branch
	if err := c.Bind(&branch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := c.Validate(&branch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	branch.TenantID = tenantID
	branch.IsActive = true

	if err := h.branchRepo.Create(&branch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, branch)
}

// Update godoc
// @Summary Update branch
// @Tags branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param branch body models.Branch true "Branch data"
// @Success 200 {object} models.Branch
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{id} [put]
// @Security BearerAuth
func (h *BranchHandler) Update(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	branch, err := h.branchRepo.GetByID(tenantID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "branch not found"})
	}

	var req models.Branch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	branch.Name = req.Name
	branch.Phone = req.Phone
	branch.Street = req.Street
	branch.Neighborhood = req.Neighborhood
	branch.City = req.City
	branch.State = req.State
	branch.ZipCode = req.ZipCode
	branch.IsActive = req.IsActive

	if err := h.branchRepo.Update(branch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, branch)
}

// Delete godoc
// @Summary Delete branch
// @Tags branches
// @Param id path string true "Branch ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /branches/{id} [delete]
// @Security BearerAuth
func (h *BranchHandler) Delete(c echo.Context) error {
	tenantID := c.Get("tenant_id").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
	}

	if err := h.branchRepo.Delete(tenantID, id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(g *echo.Group) {
	branches := g.Group("/branches")

	branches.GET("", h.List)
	branches.GET("/:id", h.GetByID)
	branches.POST("", h.Create)
	branches.PUT("/:id", h.Update)
	branches.DELETE("/:id", h.Delete)
}
