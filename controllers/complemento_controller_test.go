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

func complementoRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/complementos", ListarComplementos)
	router.POST("/api/complementos", CriarComplemento)
	router.PUT("/api/complementos/:id", AtualizarComplemento)
	router.DELETE("/api/complementos/:id", DeletarComplemento)
	router.GET("/api/complementos/produto/:produtoId", ListarComplementosProduto)
	return router
}

func TestCriarComplemento(t *testing.T) {
	setupTestDB(t)
	router := complementoRouter()

	w := executarJSON(router, "POST", "/api/complementos", map[string]interface{}{
		"nome":                  "Catupiry",
		"preco":                 3.5,
		"categoria_complemento": "queijos",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Catupiry", response["nome"])
	assert.Equal(t, true, response["disponivel"])

	// preço zero é válido para complementos
	w = executarJSON(router, "POST", "/api/complementos", map[string]interface{}{
		"nome": "Sem cebola", "preco": 0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// preço negativo não
	w = executarJSON(router, "POST", "/api/complementos", map[string]interface{}{
		"nome": "Inválido", "preco": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nome obrigatório
	w = executarJSON(router, "POST", "/api/complementos", map[string]interface{}{
		"preco": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListarComplementosPorCategoria(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := complementoRouter()

	db.Create(&models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", CategoriaComplemento: "queijos", Disponivel: true})
	db.Create(&models.Complemento{TenantID: tenant.ID, Nome: "Cheddar", CategoriaComplemento: "queijos", Disponivel: true})
	db.Create(&models.Complemento{TenantID: tenant.ID, Nome: "Bacon", CategoriaComplemento: "carnes", Disponivel: true})

	w := executarJSON(router, "GET", "/api/complementos?categoria_complemento=queijos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var complementos []models.Complemento
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &complementos))
	assert.Len(t, complementos, 2)
}

func TestDeletarComplementoVinculado(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := complementoRouter()

	complemento := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Disponivel: true}
	db.Create(&complemento)
	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3}
	db.Create(&grupo)
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: complemento.ID})

	w := executarJSON(router, "DELETE", fmt.Sprintf("/api/complementos/%d", complemento.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Complemento está vinculado a grupos", response["erro"])
}

func TestListarComplementosProduto(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := complementoRouter()

	produto := models.Produto{TenantID: tenant.ID, Nome: "Crepe", Preco: 20}
	db.Create(&produto)

	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3, Ordem: 1}
	db.Create(&grupo)

	catupiry := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Preco: 3.5, Disponivel: true}
	db.Create(&catupiry)
	bacon := models.Complemento{TenantID: tenant.ID, Nome: "Bacon", Preco: 5, Disponivel: true}
	db.Create(&bacon)
	indisponivel := models.Complemento{TenantID: tenant.ID, Nome: "Esgotado", Preco: 2}
	db.Create(&indisponivel)
	db.Model(&indisponivel).Update("disponivel", false)

	// bacon vem primeiro pela ordem do item no grupo
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: catupiry.ID, Ordem: 2})
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: bacon.ID, Ordem: 1})
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: indisponivel.ID, Ordem: 3})

	w := executarJSON(router, "GET", fmt.Sprintf("/api/complementos/produto/%d", produto.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var grupos []GrupoComComplementos
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grupos))
	require.Len(t, grupos, 1)
	require.Len(t, grupos[0].Complementos, 2)
	assert.Equal(t, "Bacon", grupos[0].Complementos[0].Nome)
	assert.Equal(t, "Catupiry", grupos[0].Complementos[1].Nome)

	// produto inexistente
	w = executarJSON(router, "GET", "/api/complementos/produto/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
