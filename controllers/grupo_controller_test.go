package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/meupedido/meu-pedido-api/models"
)

func grupoRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/grupos-complementos", ListarGrupos)
	router.POST("/api/grupos-complementos", CriarGrupo)
	router.PUT("/api/grupos-complementos/:id", AtualizarGrupo)
	router.DELETE("/api/grupos-complementos/:id", DeletarGrupo)
	router.GET("/api/grupos-complementos/:id/itens", ListarItensGrupo)
	router.POST("/api/grupos-complementos/:id/itens", AdicionarItemGrupo)
	router.PUT("/api/grupos-complementos/:id/itens/ordem", ReordenarItensGrupo)
	router.DELETE("/api/grupos-complementos/:id/itens/:complementoId", RemoverItemGrupo)
	return router
}

func TestCriarGrupo(t *testing.T) {
	setupTestDB(t)
	router := grupoRouter()

	w := executarJSON(router, "POST", "/api/grupos-complementos", map[string]interface{}{
		"nome":           "Adicionais",
		"limite_selecao": 3,
		"obrigatorio":    false,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Adicionais", response["nome"])
	assert.Equal(t, float64(3), response["limite_selecao"])

	// limite mínimo é 1
	w = executarJSON(router, "POST", "/api/grupos-complementos", map[string]interface{}{
		"nome": "Inválido", "limite_selecao": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdicionarItemGrupo(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := grupoRouter()

	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3}
	db.Create(&grupo)
	complemento := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Disponivel: true}
	db.Create(&complemento)

	itensPath := fmt.Sprintf("/api/grupos-complementos/%d/itens", grupo.ID)

	w := executarJSON(router, "POST", itensPath,
		map[string]interface{}{"complemento_id": complemento.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	// inserir o mesmo complemento de novo conflita
	w = executarJSON(router, "POST", itensPath,
		map[string]interface{}{"complemento_id": complemento.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Complemento já está no grupo", response["erro"])

	// complemento inexistente
	w = executarJSON(router, "POST", itensPath,
		map[string]interface{}{"complemento_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoverItemGrupo(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := grupoRouter()

	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3}
	db.Create(&grupo)
	complemento := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Disponivel: true}
	db.Create(&complemento)
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: complemento.ID})

	w := executarJSON(router, "DELETE",
		fmt.Sprintf("/api/grupos-complementos/%d/itens/%d", grupo.ID, complemento.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// remoção repetida não encontra vínculo
	w = executarJSON(router, "DELETE",
		fmt.Sprintf("/api/grupos-complementos/%d/itens/%d", grupo.ID, complemento.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReordenarItensGrupo(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := grupoRouter()

	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3}
	db.Create(&grupo)
	catupiry := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Disponivel: true}
	db.Create(&catupiry)
	bacon := models.Complemento{TenantID: tenant.ID, Nome: "Bacon", Disponivel: true}
	db.Create(&bacon)
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: catupiry.ID, Ordem: 1})
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: bacon.ID, Ordem: 2})

	w := executarJSON(router, "PUT",
		fmt.Sprintf("/api/grupos-complementos/%d/itens/ordem", grupo.ID),
		map[string]interface{}{
			"itens": []map[string]interface{}{
				{"complemento_id": catupiry.ID, "ordem": 2},
				{"complemento_id": bacon.ID, "ordem": 1},
			},
		})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.GrupoComplementoItem
	db.Where("grupo_id = ? AND complemento_id = ?", grupo.ID, bacon.ID).First(&item)
	assert.Equal(t, 1, item.Ordem)
}

func TestDeletarGrupoComItens(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := grupoRouter()

	grupo := models.GrupoComplemento{TenantID: tenant.ID, Nome: "Adicionais", LimiteSelecao: 3}
	db.Create(&grupo)
	complemento := models.Complemento{TenantID: tenant.ID, Nome: "Catupiry", Disponivel: true}
	db.Create(&complemento)
	db.Create(&models.GrupoComplementoItem{GrupoID: grupo.ID, ComplementoID: complemento.ID})

	w := executarJSON(router, "DELETE", fmt.Sprintf("/api/grupos-complementos/%d", grupo.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// depois de esvaziar o grupo, a exclusão passa
	db.Where("grupo_id = ?", grupo.ID).Delete(&models.GrupoComplementoItem{})
	w = executarJSON(router, "DELETE", fmt.Sprintf("/api/grupos-complementos/%d", grupo.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
