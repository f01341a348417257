package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCartNotFound is returned when a cart token is unknown or expired
var ErrCartNotFound = errors.New("cart not found")

// Cart is a storefront customer's pending selection. Storefront customers
// are anonymous, so carts live in Redis under an opaque token and expire.
type Cart struct {
	Token     string     `json:"token"`
	TenantID  string     `json:"tenant_id"`
	BranchID  string     `json:"branch_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one selected menu item with a price snapshot
type CartItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

// CartService stores storefront carts in Redis with a TTL
type CartService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCartService(client *redis.Client, ttl time.Duration) *CartService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CartService{redis: client, ttl: ttl}
}

func cartKey(tenantID uuid.UUID, token string) string {
	return fmt.Sprintf("cart:%s:%s", tenantID, token)
}

// Create starts an empty cart for a branch and returns its token
func (s *CartService) Create(ctx context.Context, tenantID, branchID uuid.UUID) (*Cart, error) {
	cart := &Cart{
		Token:     uuid.New().String(),
		TenantID:  tenantID.String(),
		BranchID:  branchID.String(),
		Items:     []CartItem{},
		UpdatedAt: time.Now(),
	}

	if err := s.save(ctx, tenantID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get loads a cart by token
func (s *CartService) Get(ctx context.Context, tenantID uuid.UUID, token string) (*Cart, error) {
	data, err := s.redis.Get(ctx, cartKey(tenantID, token)).Result()
	if err == redis.Nil {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a menu item to the cart, merging quantities for repeats
func (s *CartService) AddItem(ctx context.Context, tenantID uuid.UUID, token string, item *models.MenuItem, quantity int, notes string) (*Cart, error) {
	cart, err := s.Get(ctx, tenantID, token)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == item.ID.String() {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, CartItem{
			MenuItemID: item.ID.String(),
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   quantity,
			Notes:      notes,
		})
	}

	cart.UpdatedAt = time.Now()
	if err := s.save(ctx, tenantID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity updates one line's quantity; zero removes the line
func (s *CartService) SetQuantity(ctx context.Context, tenantID uuid.UUID, token, menuItemID string, quantity int) (*Cart, error) {
	cart, err := s.Get(ctx, tenantID, token)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, line := range cart.Items {
		if line.MenuItemID == menuItemID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		items = append(items, line)
	}
	cart.Items = items

	cart.UpdatedAt = time.Now()
	if err := s.save(ctx, tenantID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear removes a cart after checkout or abandonment
func (s *CartService) Clear(ctx context.Context, tenantID uuid.UUID, token string) error {
	return s.redis.Del(ctx, cartKey(tenantID, token)).Err()
}

func (s *CartService) save(ctx context.Context, tenantID uuid.UUID, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cartKey(tenantID, cart.Token), data, s.ttl).Err()
}
