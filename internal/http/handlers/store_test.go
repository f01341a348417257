package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fogon/internal/services"
	"fogon/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func TestCheckoutRejectsCorruptCartLine(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cartService := services.NewCartService(client, time.Hour)

	handler := NewStoreHandler(nil, nil, nil, cartService, nil, nil)

	tenantID := uuid.New()
	token := uuid.New().String()

	// Seed a cart whose line carries a menu item id that no longer parses
	cart := map[string]interface{}{
		"token":     token,
		"tenant_id": tenantID.String(),
		"branch_id": uuid.New().String(),
		"items": []map[string]interface{}{
			{"menu_item_id": "not-a-uuid", "name": "Tacos al pastor", "unit_price": "95.00", "quantity": 2},
		},
		"updated_at": time.Now(),
	}
	raw, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+tenantID.String()+":"+token, string(raw)))

	body := `{"cart_token":"` + token + `","customer_name":"Ana"}`

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/store/tacos/checkout", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("tenant_id", tenantID)
	c.Set("tenant", &models.Tenant{})
	c.Set("slug", "tacos")

	require.NoError(t, handler.Checkout(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Carrito inválido")

	// The cart must survive a rejected checkout
	assert.True(t, mr.Exists("cart:"+tenantID.String()+":"+token))
}
