package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meupedido/meu-pedido-api/models"
)

func categoriaRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/categorias", ListarCategorias)
	router.POST("/api/categorias", CriarCategoria)
	router.PUT("/api/categorias/:id", AtualizarCategoria)
	router.DELETE("/api/categorias/:id", DeletarCategoria)
	return router
}

func TestCriarCategoria(t *testing.T) {
	setupTestDB(t)
	router := categoriaRouter()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "cria categoria com sucesso",
			body:           map[string]interface{}{"nome": "Crepes", "ordem": 1},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rejeita categoria sem nome",
			body:           map[string]interface{}{"ordem": 1},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Nome da categoria é obrigatório",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executarJSON(router, "POST", "/api/categorias", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, response["erro"])
			} else {
				assert.Equal(t, "Crepes", response["nome"])
				assert.Equal(t, float64(1), response["tenant_id"])
			}
		})
	}
}

func TestListarCategoriasOrdenadas(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := categoriaRouter()

	db.Create(&models.Categoria{TenantID: tenant.ID, Nome: "Bebidas", Ordem: 2})
	db.Create(&models.Categoria{TenantID: tenant.ID, Nome: "Crepes", Ordem: 1})
	// categoria de outro tenant não deve aparecer
	db.Create(&models.Categoria{TenantID: tenant.ID + 1, Nome: "Outra", Ordem: 0})

	w := executarJSON(router, "GET", "/api/categorias", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var categorias []models.Categoria
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categorias))
	require.Len(t, categorias, 2)
	assert.Equal(t, "Crepes", categorias[0].Nome)
	assert.Equal(t, "Bebidas", categorias[1].Nome)
}

func TestAtualizarCategoria(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := categoriaRouter()

	categoria := models.Categoria{TenantID: tenant.ID, Nome: "Crepes"}
	db.Create(&categoria)

	w := executarJSON(router, "PUT", fmt.Sprintf("/api/categorias/%d", categoria.ID),
		map[string]interface{}{"nome": "Crepes Salgados", "ordem": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	var atualizada models.Categoria
	db.First(&atualizada, categoria.ID)
	assert.Equal(t, "Crepes Salgados", atualizada.Nome)
	assert.Equal(t, 3, atualizada.Ordem)
}

func TestAtualizarCategoriaInexistente(t *testing.T) {
	setupTestDB(t)
	router := categoriaRouter()

	w := executarJSON(router, "PUT", "/api/categorias/999",
		map[string]interface{}{"nome": "Qualquer"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletarCategoria(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := categoriaRouter()

	categoria := models.Categoria{TenantID: tenant.ID, Nome: "Sem produtos"}
	db.Create(&categoria)

	w := executarJSON(router, "DELETE", fmt.Sprintf("/api/categorias/%d", categoria.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Categoria{}).Where("id = ?", categoria.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeletarCategoriaComProdutos(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := categoriaRouter()

	categoria := models.Categoria{TenantID: tenant.ID, Nome: "Crepes"}
	db.Create(&categoria)
	db.Create(&models.Produto{TenantID: tenant.ID, Nome: "Crepe de frango", Preco: 25, CategoriaID: &categoria.ID})

	w := executarJSON(router, "DELETE", fmt.Sprintf("/api/categorias/%d", categoria.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Categoria possui produtos vinculados", response["erro"])

	var count int64
	db.Model(&models.Categoria{}).Where("id = ?", categoria.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
