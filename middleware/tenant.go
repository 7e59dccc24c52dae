package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
)

const tenantContextKey = "tenant"

// ErrTenantNaoEncontrado is returned when a subdomain resolves to no tenant.
var ErrTenantNaoEncontrado = errors.New("estabelecimento não encontrado")

// ResolveTenant resolves the :subdominio route parameter to a tenant exactly
// once per request and stores it in the gin context. Downstream handlers read
// it with TenantFromContext and never re-query the directory.
func ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		subdominio := c.Param("subdominio")
		if subdominio == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"erro": "Subdomínio é obrigatório"})
			return
		}

		tenant, err := ResolveSubdominio(config.GetDB(), subdominio)
		if err != nil {
			if errors.Is(err, ErrTenantNaoEncontrado) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"erro": "Estabelecimento não encontrado"})
				return
			}
			logrus.WithError(err).Error("falha ao resolver tenant")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"erro": err.Error()})
			return
		}

		c.Set(tenantContextKey, tenant)
		c.Next()
	}
}

// ResolveSubdominio looks a tenant up by its subdomain slug.
func ResolveSubdominio(db *gorm.DB, subdominio string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := db.Where("subdominio = ?", subdominio).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNaoEncontrado
		}
		return nil, err
	}
	return &tenant, nil
}

// TenantFromContext returns the tenant resolved by ResolveTenant.
func TenantFromContext(c *gin.Context) (*models.Tenant, bool) {
	value, exists := c.Get(tenantContextKey)
	if !exists {
		return nil, false
	}
	tenant, ok := value.(*models.Tenant)
	return tenant, ok
}

// TenantIDFromContext is a convenience accessor for scoped queries.
func TenantIDFromContext(c *gin.Context) (uint, bool) {
	tenant, ok := TenantFromContext(c)
	if !ok {
		return 0, false
	}
	return tenant.ID, true
}
