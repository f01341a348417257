package app

import (
	"fmt"
	"os"
	"time"

	"fogon/internal/auth"
	"fogon/internal/repo"
	"fogon/internal/services"
	"fogon/internal/status"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB *gorm.DB

	UserRepo         *repo.UserRepository
	TenantRepo       *repo.TenantRepository
	BranchRepo       *repo.BranchRepository
	CategoryRepo     *repo.CategoryRepository
	MenuItemRepo     *repo.MenuItemRepository
	InventoryRepo    *repo.InventoryRepository
	OrderRepo        *repo.OrderRepository
	CashRegisterRepo *repo.CashRegisterRepository
	ShiftRepo        *repo.ShiftRepository

	AuthService         *auth.Service
	EmailService        *services.EmailService
	StorageService      *services.StorageService
	CategoryService     *services.CategoryService
	InventoryService    *services.InventoryService
	OrderService        *services.OrderService
	CashRegisterService *services.CashRegisterService
	ShiftService        *services.ShiftService
	SettingsService     *services.TenantSettingsService
	CartService         *services.CartService

	StatusEvaluator *status.Evaluator
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	// Initialize repositories
	userRepo := repo.NewUserRepository(db)
	tenantRepo := repo.NewTenantRepository(db)
	branchRepo := repo.NewBranchRepository(db)
	categoryRepo := repo.NewCategoryRepository(db)
	menuItemRepo := repo.NewMenuItemRepository(db)
	inventoryRepo := repo.NewInventoryRepository(db)
	orderRepo := repo.NewOrderRepository(db)
	cashRegisterRepo := repo.NewCashRegisterRepository(db)
	shiftRepo := repo.NewShiftRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	settingsService := services.NewTenantSettingsService(db)

	// Initialize email service
	emailService, err := services.NewEmailService()
	if err != nil {
		// Log warning but continue - email service is optional
		fmt.Printf("Warning: Failed to initialize email service: %v\n", err)
	}

	// Initialize storage service
	storageService, err := services.NewStorageService()
	if err != nil {
		// Log warning but continue - storage service is optional for basic functionality
		fmt.Printf("Warning: Failed to initialize storage service: %v\n", err)
	}

	// The evaluator reads business hours from settings and open registers
	// from the cash register repo; services that change either input
	// invalidate it directly
	evaluator := status.NewEvaluator(settingsService, cashRegisterRepo)
	if os.Getenv("ENV") == "development" {
		evaluator.EnableDebug()
	}

	categoryService := services.NewCategoryService(categoryRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	inventoryService.SetLowStockAlerts(tenantRepo, emailService)
	orderService := services.NewOrderService(orderRepo, menuItemRepo, evaluator)
	cashRegisterService := services.NewCashRegisterService(cashRegisterRepo)
	cashRegisterService.SetStatusInvalidator(evaluator)
	shiftService := services.NewShiftService(shiftRepo)

	// Storefront carts live in Redis
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	cartTTL := 2 * time.Hour
	if raw := os.Getenv("CART_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cartTTL = parsed
		}
	}
	cartService := services.NewCartService(redisClient, cartTTL)

	return &Services{
		DB:               db,
		UserRepo:         userRepo,
		TenantRepo:       tenantRepo,
		BranchRepo:       branchRepo,
		CategoryRepo:     categoryRepo,
		MenuItemRepo:     menuItemRepo,
		InventoryRepo:    inventoryRepo,
		OrderRepo:        orderRepo,
		CashRegisterRepo: cashRegisterRepo,
		ShiftRepo:        shiftRepo,

		AuthService:         authService,
		EmailService:        emailService,
		StorageService:      storageService,
		CategoryService:     categoryService,
		InventoryService:    inventoryService,
		OrderService:        orderService,
		CashRegisterService: cashRegisterService,
		ShiftService:        shiftService,
		SettingsService:     settingsService,
		CartService:         cartService,

		StatusEvaluator: evaluator,
	}
}
