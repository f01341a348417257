package handlers

import (
	"net/http"

	"fogon/internal/app"
	"fogon/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes. The returned websocket handler is
// already wired as the broadcaster for order and status events.
func SetupRoutes(api *echo.Group, services *app.Services) *WebSocketHandler {
	// Initialize WebSocket handler and wire it as the event broadcaster
	wsHandler := NewWebSocketHandler(services.AuthService)
	services.StatusEvaluator.SetBroadcaster(wsHandler)
	services.OrderService.SetBroadcaster(wsHandler)

	// Health check
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes (no authentication required)
	authHandler := NewAuthHandler(services.AuthService, services.EmailService)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// WebSocket endpoint; the handler accepts a token query parameter so
	// browser clients can connect without an Authorization header
	api.GET("/ws", wsHandler.HandleWebSocket)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(services.AuthService))
	protected.Use(middleware.TenantResolver(services.DB))

	// User profile routes (authenticated users)
	profileAuth := protected.Group("/auth")
	profileAuth.PUT("/profile", authHandler.UpdateProfile)
	profileAuth.PUT("/change-password", authHandler.ChangePassword)

	// System admin routes (tenant management)
	admin := protected.Group("/admin")
	admin.Use(middleware.SystemAdminOnly())
	tenantHandler := NewTenantHandler(services.TenantRepo, services.AuthService, services.DB)
	admin.GET("/tenants", tenantHandler.List)
	admin.POST("/tenants", tenantHandler.Create)
	admin.GET("/tenants/:id", tenantHandler.GetByID)
	admin.PUT("/tenants/:id", tenantHandler.Update)
	admin.DELETE("/tenants/:id", tenantHandler.Delete)

	// Tenant administration (owner-level)
	tenantAdmin := protected.Group("")
	tenantAdmin.Use(middleware.RequireTenant())
	tenantAdmin.Use(middleware.TenantAdminOrAbove())

	tenantAdmin.GET("/tenant/profile", tenantHandler.GetProfile)
	tenantAdmin.PUT("/tenant/profile", tenantHandler.UpdateProfile)

	userHandler := NewUserHandler(services.UserRepo, services.AuthService)
	tenantAdmin.GET("/users", userHandler.List)
	tenantAdmin.POST("/users", userHandler.Create)
	tenantAdmin.GET("/users/:id", userHandler.GetByID)
	tenantAdmin.PUT("/users/:id", userHandler.Update)
	tenantAdmin.DELETE("/users/:id", userHandler.Delete)

	settingsHandler := NewSettingsHandler(services.SettingsService, services.StatusEvaluator)
	settingsHandler.RegisterRoutes(tenantAdmin)

	// Day-to-day operation (any tenant staff)
	tenantUser := protected.Group("")
	tenantUser.Use(middleware.RequireTenant())
	tenantUser.Use(middleware.TenantUserOrAbove())

	NewBranchHandler(services.BranchRepo).RegisterRoutes(tenantUser)
	NewCategoryHandler(services.CategoryService).RegisterRoutes(tenantUser)
	NewMenuItemHandler(services.MenuItemRepo, services.StorageService).RegisterRoutes(tenantUser)
	NewOrderHandler(services.OrderRepo, services.OrderService).RegisterRoutes(tenantUser)

	inventoryHandler := NewInventoryHandler(services.InventoryRepo, services.InventoryService)
	tenantUser.GET("/branches/:branch_id/inventory", inventoryHandler.List)
	tenantUser.POST("/branches/:branch_id/inventory", inventoryHandler.Create)
	tenantUser.GET("/branches/:branch_id/inventory/low-stock", inventoryHandler.ListLowStock)
	tenantUser.POST("/inventory/:id/adjust", inventoryHandler.Adjust)
	tenantUser.GET("/inventory/:id/movements", inventoryHandler.Movements)

	cashRegisterHandler := NewCashRegisterHandler(services.CashRegisterService)
	tenantUser.POST("/cash-registers/open", cashRegisterHandler.Open)
	tenantUser.POST("/cash-registers/:id/close", cashRegisterHandler.Close)
	tenantUser.POST("/cash-registers/:id/movements", cashRegisterHandler.AddMovement)
	tenantUser.GET("/cash-registers/:id/movements", cashRegisterHandler.Movements)
	tenantUser.GET("/branches/:branch_id/cash-register", cashRegisterHandler.Current)
	tenantUser.GET("/branches/:branch_id/cash-registers", cashRegisterHandler.History)

	shiftHandler := NewShiftHandler(services.ShiftService)
	tenantUser.POST("/shifts/open", shiftHandler.Open)
	tenantUser.POST("/shifts/:id/close", shiftHandler.Close)
	tenantUser.GET("/branches/:branch_id/shift", shiftHandler.Current)
	tenantUser.GET("/branches/:branch_id/shifts", shiftHandler.History)

	// Public storefront (tenant resolved from the slug, no JWT)
	storeHandler := NewStoreHandler(services.BranchRepo, services.CategoryRepo, services.MenuItemRepo, services.CartService, services.OrderService, services.StatusEvaluator)
	store := api.Group("/store/:slug", middleware.StoreSlugMiddleware(services.DB))
	storeHandler.RegisterRoutes(store)

	return wsHandler
}
