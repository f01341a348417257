package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Cash register statuses
const (
	CashRegisterOpen   = "open"
	CashRegisterClosed = "closed"
)

// Cash movement directions
const (
	CashMovementIn  = "in"
	CashMovementOut = "out"
)

// Branch represents one physical location belonging to a tenant
type Branch struct {
	BaseTenantModel
	Name         string `gorm:"not null" json:"name" validate:"required"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

// Category represents a menu category
type Category struct {
	BaseTenantModel
	Name        string `gorm:"not null" json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
}

// MenuItem represents a dish or drink on the menu
type MenuItem struct {
	BaseTenantModel
	CategoryID  *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"category_id"`
	Name        string     `gorm:"not null" json:"name" validate:"required"`
	Description string     `json:"description"`
	Price       string     `gorm:"not null" json:"price" validate:"required"`
	Image       string     `json:"image"`
	S3Key       string     `json:"s3_key"`
	IsAvailable bool       `gorm:"default:true" json:"is_available"`
	SortOrder   int        `gorm:"default:0" json:"sort_order"`
}

// InventoryItem represents a stock record for a branch
type InventoryItem struct {
	BaseTenantModel
	BranchID          uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	Name              string    `gorm:"not null" json:"name" validate:"required"`
	Unit              string    `gorm:"default:'unit'" json:"unit"` // unit, kg, l
	Quantity          float64   `gorm:"default:0" json:"quantity"`
	LowStockThreshold float64   `gorm:"default:5" json:"low_stock_threshold"`
}

// StockMovement records an inventory adjustment
type StockMovement struct {
	BaseTenantModel
	InventoryItemID uuid.UUID  `gorm:"type:uuid;index;not null" json:"inventory_item_id"`
	BranchID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"branch_id"`
	Direction       string     `gorm:"size:10;not null" json:"direction" validate:"required,oneof=in out"`
	Quantity        float64    `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Reason          string     `gorm:"size:255" json:"reason"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid" json:"created_by"`
}

// Order represents a customer order placed at a branch
type Order struct {
	BaseTenantModel
	BranchID    uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	OrderNumber string    `gorm:"not null" json:"order_number"`
	Status      string    `gorm:"default:'pending'" json:"status"`
	Subtotal    string    `gorm:"default:'0'" json:"subtotal"`
	TotalAmount string    `gorm:"default:'0'" json:"total_amount"`
	Currency    string    `gorm:"default:'MXN'" json:"currency"`
	Notes       string    `json:"notes"`

	// Customer snapshot for order integrity; storefront customers are anonymous
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
}

// OrderItem represents a line in an order with a menu item snapshot
type OrderItem struct {
	BaseTenantModel
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"menu_item_id"`
	Name       string     `gorm:"not null" json:"name"`
	UnitPrice  string     `gorm:"not null" json:"unit_price"`
	Quantity   int        `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	LineTotal  string     `gorm:"not null" json:"line_total"`
	Notes      string     `json:"notes"`
}

// OrderStatusHistory records each status transition of an order
type OrderStatusHistory struct {
	BaseTenantModel
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    string     `gorm:"not null" json:"status"`
	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
}

// CashRegister represents one opened-till session for a branch.
// At most one record with status "open" may exist per branch.
type CashRegister struct {
	BaseTenantModel
	BranchID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"branch_id"`
	Status         string     `gorm:"default:'open';index" json:"status"`
	OpeningBalance string     `gorm:"default:'0'" json:"opening_balance"`
	OpenedBy       uuid.UUID  `gorm:"type:uuid;not null" json:"opened_by"`
	OpenedAt       time.Time  `gorm:"not null" json:"opened_at"`
	ClosingBalance *string    `json:"closing_balance"`
	ExpectedAmount *string    `json:"expected_amount"`
	Difference     *string    `json:"difference"`
	ClosedBy       *uuid.UUID `gorm:"type:uuid" json:"closed_by"`
	ClosedAt       *time.Time `json:"closed_at"`
	Notes          string     `json:"notes"`

	Movements []CashMovement `gorm:"foreignKey:CashRegisterID" json:"movements,omitempty"`
}

// CashMovement represents cash in/out against an open register
type CashMovement struct {
	BaseTenantModel
	CashRegisterID uuid.UUID  `gorm:"type:uuid;index;not null" json:"cash_register_id"`
	BranchID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"branch_id"`
	Direction      string     `gorm:"size:10;not null" json:"direction" validate:"required,oneof=in out"`
	Method         string     `gorm:"size:20;default:'cash'" json:"method"` // cash, card
	Amount         string     `gorm:"not null" json:"amount" validate:"required"`
	Description    string     `gorm:"size:255" json:"description"`
	OrderID        *uuid.UUID `gorm:"type:uuid" json:"order_id"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid" json:"created_by"`
}

// Shift represents an operational staff period at a branch, distinct
// from a cash register session
type Shift struct {
	BaseTenantModel
	BranchID uuid.UUID  `gorm:"type:uuid;index;not null" json:"branch_id"`
	Status   string     `gorm:"default:'open';index" json:"status"`
	OpenedBy uuid.UUID  `gorm:"type:uuid;not null" json:"opened_by"`
	OpenedAt time.Time  `gorm:"not null" json:"opened_at"`
	ClosedBy *uuid.UUID `gorm:"type:uuid" json:"closed_by"`
	ClosedAt *time.Time `json:"closed_at"`
	Notes    string     `json:"notes"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	TenantID    uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	SortOrder   int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	TenantID    uuid.UUID  `json:"-"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Price       string     `json:"price" validate:"required"`
	SortOrder   int        `json:"sort_order"`
}

// UpdateMenuItemRequest represents a request to update a menu item
type UpdateMenuItemRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       string     `json:"price"`
	IsAvailable *bool      `json:"is_available"`
	SortOrder   *int       `json:"sort_order"`
}

// OpenCashRegisterRequest represents a request to open a till session
type OpenCashRegisterRequest struct {
	BranchID       uuid.UUID `json:"branch_id" validate:"required"`
	OpeningBalance string    `json:"opening_balance" validate:"required"`
	Notes          string    `json:"notes"`
}

// CloseCashRegisterRequest represents a request to close a till session
type CloseCashRegisterRequest struct {
	ClosingBalance string `json:"closing_balance" validate:"required"`
	Notes          string `json:"notes"`
}

// CreateCashMovementRequest represents a request to record cash in/out
type CreateCashMovementRequest struct {
	Direction   string `json:"direction" validate:"required,oneof=in out"`
	Method      string `json:"method" validate:"omitempty,oneof=cash card"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description"`
}

// OpenShiftRequest represents a request to open a staff shift
type OpenShiftRequest struct {
	BranchID uuid.UUID `json:"branch_id" validate:"required"`
	Notes    string    `json:"notes"`
}

// AdjustStockRequest represents an inventory adjustment request
type AdjustStockRequest struct {
	Direction string  `json:"direction" validate:"required,oneof=in out"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Reason    string  `json:"reason"`
}

// PlaceOrderRequest represents a storefront order placement
type PlaceOrderRequest struct {
	BranchID      uuid.UUID               `json:"branch_id" validate:"required"`
	CustomerName  string                  `json:"customer_name" validate:"required"`
	CustomerPhone string                  `json:"customer_phone"`
	Notes         string                  `json:"notes"`
	Items         []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PlaceOrderItemRequest represents one line of a storefront order
type PlaceOrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	Notes      string    `json:"notes"`
}

// UpdateOrderStatusRequest represents an order status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready delivered cancelled"`
	Notes  string `json:"notes"`
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		&Tenant{},
		&User{},
		&TenantSetting{},
		&PasswordResetToken{},
		&Branch{},
		&Category{},
		&MenuItem{},
		&InventoryItem{},
		&StockMovement{},
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&CashRegister{},
		&CashMovement{},
		&Shift{},
	}
}
