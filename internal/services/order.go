package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fogon/internal/metrics"
	"fogon/internal/repo"
	"fogon/internal/status"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrStoreClosed is returned when an order is placed while the branch
// cannot accept orders; Message carries the storefront status string
type ErrStoreClosed struct {
	Message string
}

func (e *ErrStoreClosed) Error() string {
	return fmt.Sprintf("store is not accepting orders: %s", e.Message)
}

// ErrItemUnavailable is returned when an ordered menu item cannot be sold
var ErrItemUnavailable = errors.New("el artículo no está disponible")

// AcceptanceChecker decides whether a branch can take orders right now
type AcceptanceChecker interface {
	Evaluate(ctx context.Context, tenantID, branchID uuid.UUID) status.RestaurantStatus
}

// validTransitions lists the allowed order status transitions
var validTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

// OrderService manages order placement and lifecycle
type OrderService struct {
	orderRepo   *repo.OrderRepository
	menuRepo    *repo.MenuItemRepository
	acceptance  AcceptanceChecker
	broadcaster status.Broadcaster
}

func NewOrderService(orderRepo *repo.OrderRepository, menuRepo *repo.MenuItemRepository, acceptance AcceptanceChecker) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		menuRepo:   menuRepo,
		acceptance: acceptance,
	}
}

// SetBroadcaster wires the websocket hub for order events
func (s *OrderService) SetBroadcaster(b status.Broadcaster) {
	s.broadcaster = b
}

// PlaceOrder creates a storefront order. The branch's order-acceptance
// status is evaluated first; a branch that is closed by hours, has no open
// register, or whose status is still loading refuses the order.
func (s *OrderService) PlaceOrder(ctx context.Context, tenantID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {
	current := s.acceptance.Evaluate(ctx, tenantID, req.BranchID)
	if !current.CanAcceptOrders {
		metrics.OrderPlaced("rejected_closed")
		return nil, &ErrStoreClosed{Message: current.StatusMessage}
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetManyByID(tenantID, ids)
	if err != nil {
		metrics.OrderPlaced("error")
		return nil, err
	}
	byID := make(map[uuid.UUID]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItem, ok := byID[line.MenuItemID]
		if !ok || !menuItem.IsAvailable {
			metrics.OrderPlaced("rejected_item")
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.MenuItemID)
		}

		unitPrice, err := strconv.ParseFloat(menuItem.Price, 64)
		if err != nil {
			metrics.OrderPlaced("error")
			return nil, fmt.Errorf("invalid price on menu item %s: %q", menuItem.ID, menuItem.Price)
		}
		lineTotal := unitPrice * float64(line.Quantity)
		subtotal += lineTotal

		orderItems = append(orderItems, models.OrderItem{
			BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
			MenuItemID:      &menuItem.ID,
			Name:            menuItem.Name,
			UnitPrice:       menuItem.Price,
			Quantity:        line.Quantity,
			LineTotal:       fmt.Sprintf("%.2f", lineTotal),
			Notes:           line.Notes,
		})
	}

	number, err := s.nextOrderNumber(tenantID, req.BranchID)
	if err != nil {
		metrics.OrderPlaced("error")
		return nil, err
	}

	order := &models.Order{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		BranchID:        req.BranchID,
		OrderNumber:     number,
		Status:          models.OrderStatusPending,
		Subtotal:        fmt.Sprintf("%.2f", subtotal),
		TotalAmount:     fmt.Sprintf("%.2f", subtotal),
		Notes:           req.Notes,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Items:           orderItems,
	}

	if err := s.orderRepo.Create(order); err != nil {
		metrics.OrderPlaced("error")
		return nil, err
	}

	history := &models.OrderStatusHistory{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		OrderID:         order.ID,
		Status:          models.OrderStatusPending,
	}
	if err := s.orderRepo.AddStatusHistory(history); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("Failed to record initial order status")
	}

	metrics.OrderPlaced("accepted")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTenant(tenantID.String(), "order_created", order)
	}

	return order, nil
}

// UpdateStatus applies a lifecycle transition to an order
func (s *OrderService) UpdateStatus(tenantID, orderID, userID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, req.Status) {
		return nil, fmt.Errorf("transición inválida: %s → %s", order.Status, req.Status)
	}

	now := time.Now()
	order.Status = req.Status
	switch req.Status {
	case models.OrderStatusDelivered:
		order.DeliveredAt = &now
	case models.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	history := &models.OrderStatusHistory{
		BaseTenantModel: models.BaseTenantModel{TenantID: tenantID},
		OrderID:         order.ID,
		Status:          req.Status,
		Notes:           req.Notes,
		CreatedBy:       &userID,
	}
	if err := s.orderRepo.AddStatusHistory(history); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("Failed to record order status transition")
	}

	metrics.OrderStatusChanged(req.Status)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTenant(tenantID.String(), "order_status_changed", map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})
	}

	return order, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// nextOrderNumber builds a per-branch daily sequence like 20250602-012
func (s *OrderService) nextOrderNumber(tenantID, branchID uuid.UUID) (string, error) {
	count, err := s.orderRepo.CountToday(tenantID, branchID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", time.Now().Format("20060102"), count+1), nil
}
