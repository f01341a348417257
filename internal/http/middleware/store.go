package middleware

import (
	"net/http"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StoreSlugMiddleware resolves the tenant from the :slug path parameter for
// public storefront routes. Only active tenants with a public storefront
// are reachable this way.
func StoreSlugMiddleware(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slug := c.Param("slug")

			if slug == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "El identificador del restaurante es obligatorio",
				})
			}

			var tenant models.Tenant
			if err := db.Where("slug = ? AND status = 'active' AND is_public_store = true", slug).First(&tenant).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return c.JSON(http.StatusNotFound, map[string]string{
						"error": "Restaurante no encontrado o no disponible públicamente",
					})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Error al verificar el restaurante",
				})
			}

			c.Set("tenant_id", tenant.ID)
			c.Set("tenant", &tenant)
			c.Set("slug", slug)

			return next(c)
		}
	}
}

// StoreTenantContext carries the resolved tenant for public storefront routes
type StoreTenantContext struct {
	TenantID uuid.UUID
	Tenant   *models.Tenant
}

// GetStoreTenantContext extracts the resolved tenant from the echo.Context
func GetStoreTenantContext(c echo.Context) *StoreTenantContext {
	tenantID, _ := c.Get("tenant_id").(uuid.UUID)
	tenant, _ := c.Get("tenant").(*models.Tenant)

	return &StoreTenantContext{
		TenantID: tenantID,
		Tenant:   tenant,
	}
}
