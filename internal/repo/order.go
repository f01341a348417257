package repo

import (
	"fogon/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID gets an order by ID with items and status history
func (r *OrderRepository) GetByID(tenantID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Preload("StatusHistory").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create creates an order with its items in one transaction
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update updates an order
func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// List lists orders for a tenant with pagination, newest first
func (r *OrderRepository) List(tenantID uuid.UUID, limit, offset int) (*models.PaginationResult[models.Order], error) {
	return r.list("tenant_id = ?", []interface{}{tenantID}, limit, offset)
}

// ListByBranch lists orders of one branch with pagination
func (r *OrderRepository) ListByBranch(tenantID, branchID uuid.UUID, limit, offset int) (*models.PaginationResult[models.Order], error) {
	return r.list("tenant_id = ? AND branch_id = ?", []interface{}{tenantID, branchID}, limit, offset)
}

// ListByStatus lists orders of one branch filtered by status
func (r *OrderRepository) ListByStatus(tenantID, branchID uuid.UUID, status string, limit, offset int) (*models.PaginationResult[models.Order], error) {
	return r.list("tenant_id = ? AND branch_id = ? AND status = ?", []interface{}{tenantID, branchID, status}, limit, offset)
}

func (r *OrderRepository) list(cond string, args []interface{}, limit, offset int) (*models.PaginationResult[models.Order], error) {
	var orders []models.Order
	var total int64

	if err := r.db.Model(&models.Order{}).Where(cond, args...).Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Preload("Items").
		Where(cond, args...).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	page := (offset / limit) + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Order]{
		Data:       orders,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// CountToday counts orders created today for a branch, used for order numbers
func (r *OrderRepository) CountToday(tenantID, branchID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("tenant_id = ? AND branch_id = ? AND created_at >= CURRENT_DATE", tenantID, branchID).
		Count(&count).Error
	return count, err
}

// AddStatusHistory appends a status transition record
func (r *OrderRepository) AddStatusHistory(history *models.OrderStatusHistory) error {
	return r.db.Create(history).Error
}

// DB exposes the underlying handle for transactional service operations
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}
