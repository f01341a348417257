package services

import (
	"errors"

	"fogon/internal/repo"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService struct {
	categoryRepo *repo.CategoryRepository
}

func NewCategoryService(categoryRepo *repo.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *models.CreateCategoryRequest) (*models.Category, error) {
	existing, err := s.categoryRepo.FindExistingCategory(req.TenantID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("ya existe una categoría con este nombre")
	}

	category := &models.Category{
		BaseTenantModel: models.BaseTenantModel{
			TenantID: req.TenantID,
		},
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(tenantID, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != category.Name {
		existing, err := s.categoryRepo.FindExistingCategory(tenantID, req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.New("ya existe una categoría con este nombre")
		}
		category.Name = req.Name
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if req.Image != nil {
		category.Image = *req.Image
	}

	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category unless it still has menu items
func (s *CategoryService) DeleteCategory(tenantID, id uuid.UUID) error {
	count, err := s.categoryRepo.CountMenuItems(tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("la categoría todavía tiene artículos")
	}

	return s.categoryRepo.Delete(tenantID, id)
}

// GetCategoryByID gets a category by ID
func (s *CategoryService) GetCategoryByID(tenantID, id uuid.UUID) (*models.Category, error) {
	return s.categoryRepo.GetByID(tenantID, id)
}

// ListCategories lists all categories for a tenant
func (s *CategoryService) ListCategories(tenantID uuid.UUID) ([]models.Category, error) {
	return s.categoryRepo.List(tenantID)
}
