package handlers

import (
	"errors"
	"net/http"
	"sync"

	"fogon/internal/http/middleware"
	"fogon/internal/repo"
	"fogon/internal/services"
	"fogon/internal/status"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// StoreHandler serves the public storefront: tenant profile, menu, the
// order-acceptance status, anonymous carts and checkout. Routes are mounted
// under /store/:slug and resolved by StoreSlugMiddleware, no JWT involved.
type StoreHandler struct {
	branchRepo   *repo.BranchRepository
	categoryRepo *repo.CategoryRepository
	menuRepo     *repo.MenuItemRepository
	cartService  *services.CartService
	orderService *services.OrderService
	evaluator    *status.Evaluator

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewStoreHandler creates a new public storefront handler
func NewStoreHandler(
	branchRepo *repo.BranchRepository,
	categoryRepo *repo.CategoryRepository,
	menuRepo *repo.MenuItemRepository,
	cartService *services.CartService,
	orderService *services.OrderService,
	evaluator *status.Evaluator,
) *StoreHandler {
	return &StoreHandler{
		branchRepo:   branchRepo,
		categoryRepo: categoryRepo,
		menuRepo:     menuRepo,
		cartService:  cartService,
		orderService: orderService,
		evaluator:    evaluator,
		limiters:     make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the per-store rate limiter for order placement
func (h *StoreHandler) limiterFor(slug string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	limiter, ok := h.limiters[slug]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(2), 10)
		h.limiters[slug] = limiter
	}
	return limiter
}

// MenuCategory is a category with its available items for the public menu
type MenuCategory struct {
	models.Category
	Items []models.MenuItem `json:"items"`
}

// GetInfo godoc
// @Summary Get public restaurant info
// @Tags store
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /store/{slug} [get]
func (h *StoreHandler) GetInfo(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)
	tenant := storeCtx.Tenant

	branches, err := h.branchRepo.ListActive(storeCtx.TenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar el restaurante"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":     tenant.Name,
		"slug":     tenant.Slug,
		"about":    tenant.About,
		"logo_url": tenant.LogoURL,
		"phone":    tenant.Phone,
		"currency": tenant.Currency,
		"timezone": tenant.Timezone,
		"branches": branches,
	})
}

// GetMenu godoc
// @Summary Get public menu
// @Description Active categories with their available items
// @Tags store
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {array} handlers.MenuCategory
// @Failure 500 {object} map[string]string
// @Router /store/{slug}/menu [get]
func (h *StoreHandler) GetMenu(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	categories, err := h.categoryRepo.ListActive(storeCtx.TenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar el menú"})
	}

	items, err := h.menuRepo.ListAvailable(storeCtx.TenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar el menú"})
	}

	byCategory := make(map[uuid.UUID][]models.MenuItem)
	var uncategorized []models.MenuItem
	for _, item := range items {
		if item.CategoryID == nil {
			uncategorized = append(uncategorized, item)
			continue
		}
		byCategory[*item.CategoryID] = append(byCategory[*item.CategoryID], item)
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, category := range categories {
		menu = append(menu, MenuCategory{
			Category: category,
			Items:    byCategory[category.ID],
		})
	}
	if len(uncategorized) > 0 {
		menu = append(menu, MenuCategory{
			Category: models.Category{Name: "Otros"},
			Items:    uncategorized,
		})
	}

	return c.JSON(http.StatusOK, menu)
}

// GetStatus godoc
// @Summary Get branch order-acceptance status
// @Description Whether the branch is open and can take orders right now
// @Tags store
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param branch_id path string true "Branch ID"
// @Param fresh query bool false "Force a fresh evaluation instead of the cached status"
// @Success 200 {object} status.RestaurantStatus
// @Failure 400 {object} map[string]string
// @Router /store/{slug}/branches/{branch_id}/status [get]
func (h *StoreHandler) GetStatus(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ID de sucursal inválido"})
	}

	var current status.RestaurantStatus
	if c.QueryParam("fresh") == "true" {
		current = h.evaluator.Evaluate(c.Request().Context(), storeCtx.TenantID, branchID)
	} else {
		current = h.evaluator.Status(c.Request().Context(), storeCtx.TenantID, branchID)
	}

	return c.JSON(http.StatusOK, current)
}

// CreateCart godoc
// @Summary Create a cart
// @Tags store
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param cart body object true "Branch reference"
// @Success 201 {object} services.Cart
// @Failure 400 {object} map[string]string
// @Router /store/{slug}/cart [post]
func (h *StoreHandler) CreateCart(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	var req struct {
		BranchID uuid.UUID `json:"branch_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Solicitud inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "La sucursal es obligatoria"})
	}

	cart, err := h.cartService.Create(c.Request().Context(), storeCtx.TenantID, req.BranchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear el carrito"})
	}

	return c.JSON(http.StatusCreated, cart)
}

// GetCart godoc
// @Summary Get a cart
// @Tags store
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param token path string true "Cart token"
// @Success 200 {object} services.Cart
// @Failure 404 {object} map[string]string
// @Router /store/{slug}/cart/{token} [get]
func (h *StoreHandler) GetCart(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	cart, err := h.cartService.Get(c.Request().Context(), storeCtx.TenantID, c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Carrito no encontrado o expirado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar el carrito"})
	}

	return c.JSON(http.StatusOK, cart)
}

// AddCartItem godoc
// @Summary Add an item to a cart
// @Tags store
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param token path string true "Cart token"
// @Param item body object true "Item to add"
// @Success 200 {object} services.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /store/{slug}/cart/{token}/items [post]
func (h *StoreHandler) AddCartItem(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	var req struct {
		MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
		Quantity   int       `json:"quantity" validate:"required,gt=0"`
		Notes      string    `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Solicitud inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "El artículo y la cantidad son obligatorios"})
	}

	menuItem, err := h.menuRepo.GetByID(storeCtx.TenantID, req.MenuItemID)
	if err != nil || !menuItem.IsAvailable {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Artículo no disponible"})
	}

	cart, err := h.cartService.AddItem(c.Request().Context(), storeCtx.TenantID, c.Param("token"), menuItem, req.Quantity, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Carrito no encontrado o expirado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al actualizar el carrito"})
	}

	return c.JSON(http.StatusOK, cart)
}

// UpdateCartItem godoc
// @Summary Update an item quantity in a cart
// @Description Setting quantity to zero removes the item
// @Tags store
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param token path string true "Cart token"
// @Param item_id path string true "Menu item ID"
// @Param quantity body object true "New quantity"
// @Success 200 {object} services.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /store/{slug}/cart/{token}/items/{item_id} [put]
func (h *StoreHandler) UpdateCartItem(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	var req struct {
		Quantity int `json:"quantity" validate:"gte=0"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Solicitud inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cantidad inválida"})
	}

	cart, err := h.cartService.SetQuantity(c.Request().Context(), storeCtx.TenantID, c.Param("token"), c.Param("item_id"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Carrito no encontrado o expirado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al actualizar el carrito"})
	}

	return c.JSON(http.StatusOK, cart)
}

// DeleteCart godoc
// @Summary Empty and delete a cart
// @Tags store
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param token path string true "Cart token"
// @Success 204 "No Content"
// @Router /store/{slug}/cart/{token} [delete]
func (h *StoreHandler) DeleteCart(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)

	if err := h.cartService.Clear(c.Request().Context(), storeCtx.TenantID, c.Param("token")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al vaciar el carrito"})
	}

	return c.NoContent(http.StatusNoContent)
}

// CheckoutRequest converts a cart into an order
type CheckoutRequest struct {
	CartToken     string `json:"cart_token" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
}

// Checkout godoc
// @Summary Place an order from a cart
// @Description Converts the cart into an order. Refused with 409 when the
// @Description branch is closed by schedule or has no open cash register.
// @Tags store
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param checkout body handlers.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 429 {object} map[string]string
// @Router /store/{slug}/checkout [post]
func (h *StoreHandler) Checkout(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)
	slug, _ := c.Get("slug").(string)

	if !h.limiterFor(slug).Allow() {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Demasiadas solicitudes, intenta de nuevo en unos segundos"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Solicitud inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "El carrito y el nombre son obligatorios"})
	}

	cart, err := h.cartService.Get(c.Request().Context(), storeCtx.TenantID, req.CartToken)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Carrito no encontrado o expirado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar el carrito"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "El carrito está vacío"})
	}

	branchID, err := uuid.Parse(cart.BranchID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Carrito inválido"})
	}

	orderReq := &models.PlaceOrderRequest{
		BranchID:      branchID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Items:         make([]models.PlaceOrderItemRequest, 0, len(cart.Items)),
	}
	for _, line := range cart.Items {
		itemID, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			// A corrupt line must not shrink the order behind the customer's back
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Carrito inválido"})
		}
		orderReq.Items = append(orderReq.Items, models.PlaceOrderItemRequest{
			MenuItemID: itemID,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}

	order, err := h.placeOrder(c, storeCtx.TenantID, orderReq)
	if err != nil || order == nil {
		return err
	}

	// Best effort, the cart has served its purpose
	_ = h.cartService.Clear(c.Request().Context(), storeCtx.TenantID, req.CartToken)

	return c.JSON(http.StatusCreated, order)
}

// PlaceOrder godoc
// @Summary Place an order directly
// @Description Direct order placement without a cart, same acceptance gate as checkout
// @Tags store
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param order body models.PlaceOrderRequest true "Order data"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 429 {object} map[string]string
// @Router /store/{slug}/orders [post]
func (h *StoreHandler) PlaceOrder(c echo.Context) error {
	storeCtx := middleware.GetStoreTenantContext(c)
	slug, _ := c.Get("slug").(string)

	if !h.limiterFor(slug).Allow() {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Demasiadas solicitudes, intenta de nuevo en unos segundos"})
	}

	var req models.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Solicitud inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Datos del pedido incompletos"})
	}

	order, err := h.placeOrder(c, storeCtx.TenantID, &req)
	if err != nil || order == nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// placeOrder runs the order service and writes the error response inline,
// so checkout and direct placement map failures the same way
func (h *StoreHandler) placeOrder(c echo.Context, tenantID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {
	order, err := h.orderService.PlaceOrder(c.Request().Context(), tenantID, req)
	if err != nil {
		var closed *services.ErrStoreClosed
		if errors.As(err, &closed) {
			current := h.evaluator.Status(c.Request().Context(), tenantID, req.BranchID)
			return nil, c.JSON(http.StatusConflict, map[string]interface{}{
				"error":  closed.Message,
				"status": current,
			})
		}
		if errors.Is(err, services.ErrItemUnavailable) {
			return nil, c.JSON(http.StatusConflict, map[string]string{"error": "Uno o más artículos ya no están disponibles"})
		}
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear el pedido"})
	}
	return order, nil
}

// RegisterRoutes registers public storefront routes on the /store/:slug group
func (h *StoreHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetInfo)
	g.GET("/menu", h.GetMenu)
	g.GET("/branches/:branch_id/status", h.GetStatus)

	g.POST("/cart", h.CreateCart)
	g.GET("/cart/:token", h.GetCart)
	g.DELETE("/cart/:token", h.DeleteCart)
	g.POST("/cart/:token/items", h.AddCartItem)
	g.PUT("/cart/:token/items/:item_id", h.UpdateCartItem)

	g.POST("/checkout", h.Checkout)
	g.POST("/orders", h.PlaceOrder)
}
