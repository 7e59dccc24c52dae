package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
)

func setupTenantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestResolveTenant(t *testing.T) {
	db := setupTenantTestDB(t)
	config.SetDB(db)

	tenant := models.Tenant{Nome: "DL Crepes e Lanches", Subdominio: "dlcrepes"}
	db.Create(&tenant)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/lojas/:subdominio", ResolveTenant(), func(c *gin.Context) {
		resolved, ok := TenantFromContext(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"tenant_id": resolved.ID, "nome": resolved.Nome})
	})

	req, _ := http.NewRequest(http.MethodGet, "/lojas/dlcrepes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(tenant.ID), response["tenant_id"])
	assert.Equal(t, "DL Crepes e Lanches", response["nome"])
}

func TestResolveTenantUnknownSubdomain(t *testing.T) {
	db := setupTenantTestDB(t)
	config.SetDB(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	called := false
	router.GET("/lojas/:subdominio", ResolveTenant(), func(c *gin.Context) {
		called = true
	})

	req, _ := http.NewRequest(http.MethodGet, "/lojas/naoexiste", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, called, "handler must not run when the tenant is unknown")

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Estabelecimento não encontrado", response["erro"])
}

func TestResolveSubdominio(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&models.Tenant{Nome: "Loja Teste", Subdominio: "lojateste"})

	tenant, err := ResolveSubdominio(db, "lojateste")
	assert.NoError(t, err)
	assert.Equal(t, "Loja Teste", tenant.Nome)

	_, err = ResolveSubdominio(db, "fantasma")
	assert.ErrorIs(t, err, ErrTenantNaoEncontrado)
}

func TestTenantFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := TenantFromContext(c)
	assert.False(t, ok)

	_, ok = TenantIDFromContext(c)
	assert.False(t, ok)
}
