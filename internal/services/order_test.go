package services

import (
	"context"
	"testing"

	"fogon/internal/status"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAcceptance struct {
	status status.RestaurantStatus
}

func (s stubAcceptance) Evaluate(ctx context.Context, tenantID, branchID uuid.UUID) status.RestaurantStatus {
	return s.status
}

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to preparing", models.OrderStatusPending, models.OrderStatusPreparing, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"pending to ready skips preparing", models.OrderStatusPending, models.OrderStatusReady, false},
		{"pending to delivered skips lifecycle", models.OrderStatusPending, models.OrderStatusDelivered, false},
		{"preparing to ready", models.OrderStatusPreparing, models.OrderStatusReady, true},
		{"preparing to cancelled", models.OrderStatusPreparing, models.OrderStatusCancelled, true},
		{"preparing back to pending", models.OrderStatusPreparing, models.OrderStatusPending, false},
		{"ready to delivered", models.OrderStatusReady, models.OrderStatusDelivered, true},
		{"ready to cancelled", models.OrderStatusReady, models.OrderStatusCancelled, true},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusPending, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusPreparing, false},
		{"unknown status", "lost", models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transitionAllowed(tt.from, tt.to))
		})
	}
}

func TestErrStoreClosedMessage(t *testing.T) {
	err := &ErrStoreClosed{Message: "Cerrado por horario"}
	assert.Contains(t, err.Error(), "Cerrado por horario")
}

func TestPlaceOrderRefusedWhenNotAccepting(t *testing.T) {
	tests := []struct {
		name    string
		input   status.Input
		message string
	}{
		{"closed by hours", status.Input{IsWithinHours: false, HasCashRegister: true}, status.MessageClosedHours},
		{"no open register", status.Input{IsWithinHours: true, HasCashRegister: false}, status.MessageClosedCash},
		{"status still loading", status.Input{IsLoading: true}, status.MessageLoading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Repos stay nil: a refused order must never reach them
			svc := NewOrderService(nil, nil, stubAcceptance{status: status.Compose(tt.input)})

			order, err := svc.PlaceOrder(context.Background(), uuid.New(), &models.PlaceOrderRequest{
				BranchID:     uuid.New(),
				CustomerName: "Ana",
				Items: []models.PlaceOrderItemRequest{
					{MenuItemID: uuid.New(), Quantity: 1},
				},
			})

			assert.Nil(t, order)
			var closed *ErrStoreClosed
			if assert.ErrorAs(t, err, &closed) {
				assert.Equal(t, tt.message, closed.Message)
			}
		})
	}
}
