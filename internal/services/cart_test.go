package services

import (
	"context"
	"testing"
	"time"

	"fogon/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) (*CartService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCartService(client, time.Hour), mr
}

func testMenuItem(name, price string) *models.MenuItem {
	item := &models.MenuItem{Name: name, Price: price}
	item.ID = uuid.New()
	return item
}

func TestCartLifecycle(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	branchID := uuid.New()

	cart, err := svc.Create(ctx, tenantID, branchID)
	require.NoError(t, err)
	require.NotEmpty(t, cart.Token)
	assert.Empty(t, cart.Items)

	taco := testMenuItem("Tacos al pastor", "85.00")
	cart, err = svc.AddItem(ctx, tenantID, cart.Token, taco, 2, "sin cebolla")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "85.00", cart.Items[0].UnitPrice)
	assert.Equal(t, "sin cebolla", cart.Items[0].Notes)

	// repeat adds merge into the existing line
	cart, err = svc.AddItem(ctx, tenantID, cart.Token, taco, 1, "")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	agua := testMenuItem("Agua de horchata", "30.00")
	cart, err = svc.AddItem(ctx, tenantID, cart.Token, agua, 1, "")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	loaded, err := svc.Get(ctx, tenantID, cart.Token)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, loaded.Items)

	cart, err = svc.SetQuantity(ctx, tenantID, cart.Token, taco.ID.String(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.SetQuantity(ctx, tenantID, cart.Token, agua.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, taco.ID.String(), cart.Items[0].MenuItemID)

	require.NoError(t, svc.Clear(ctx, tenantID, cart.Token))
	_, err = svc.Get(ctx, tenantID, cart.Token)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartExpires(t *testing.T) {
	svc, mr := newTestCartService(t)
	ctx := context.Background()
	tenantID := uuid.New()

	cart, err := svc.Create(ctx, tenantID, uuid.New())
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.Get(ctx, tenantID, cart.Token)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartUnknownToken(t *testing.T) {
	svc, _ := newTestCartService(t)

	_, err := svc.Get(context.Background(), uuid.New(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartIsolatedByTenant(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	cart, err := svc.Create(ctx, tenantA, uuid.New())
	require.NoError(t, err)

	_, err = svc.Get(ctx, tenantB, cart.Token)
	assert.ErrorIs(t, err, ErrCartNotFound)
}
