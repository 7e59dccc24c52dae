package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
)

func horarioRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/horarios/:subdominio", middleware.ResolveTenant(), ListarHorarios)
	router.PUT("/api/horarios/:subdominio", middleware.ResolveTenant(), AtualizarHorarios)
	router.GET("/api/horarios/disponibilidade/:subdominio", middleware.ResolveTenant(), DisponibilidadeDelivery)
	return router
}

func TestListarHorariosPadrao(t *testing.T) {
	setupTestDB(t)
	router := horarioRouter()

	w := executarJSON(router, "GET", "/api/horarios/dlcrepes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var horarios []HorarioDiaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &horarios))
	require.Len(t, horarios, 7)

	assert.Equal(t, 0, horarios[0].DiaSemana)
	assert.Equal(t, "Domingo", horarios[0].Nome)
	assert.Equal(t, models.AberturaPadrao, horarios[0].Abertura)
	assert.Equal(t, models.FechamentoPadrao, horarios[0].Fechamento)
	assert.True(t, horarios[0].Aberto)
}

func TestAtualizarHorarios(t *testing.T) {
	db, tenant := setupTestDB(t)
	router := horarioRouter()

	w := executarJSON(router, "PUT", "/api/horarios/dlcrepes", map[string]interface{}{
		"horarios": []map[string]interface{}{
			{"dia_semana": 1, "aberto": false},
			{"dia_semana": 5, "abertura": "19:30", "fechamento": "23:30"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var segunda models.HorarioDelivery
	require.NoError(t, db.Where("tenant_id = ? AND dia_semana = ?", tenant.ID, 1).First(&segunda).Error)
	assert.False(t, segunda.Aberto)

	var sexta models.HorarioDelivery
	require.NoError(t, db.Where("tenant_id = ? AND dia_semana = ?", tenant.ID, 5).First(&sexta).Error)
	assert.Equal(t, "19:30", sexta.Abertura)
	assert.Equal(t, "23:30", sexta.Fechamento)

	// dias não enviados seguem como padrão na listagem
	w = executarJSON(router, "GET", "/api/horarios/dlcrepes", nil)
	var horarios []HorarioDiaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &horarios))
	assert.True(t, horarios[0].Aberto)
	assert.False(t, horarios[1].Aberto)
	assert.Equal(t, "19:30", horarios[5].Abertura)

	// atualizar de novo o mesmo dia não duplica registro
	w = executarJSON(router, "PUT", "/api/horarios/dlcrepes", map[string]interface{}{
		"horarios": []map[string]interface{}{
			{"dia_semana": 1, "aberto": true},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.HorarioDelivery{}).Where("tenant_id = ? AND dia_semana = ?", tenant.ID, 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAtualizarHorariosInvalidos(t *testing.T) {
	setupTestDB(t)
	router := horarioRouter()

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "dia fora do intervalo",
			body: map[string]interface{}{"horarios": []map[string]interface{}{{"dia_semana": 7}}},
		},
		{
			name: "dia ausente",
			body: map[string]interface{}{"horarios": []map[string]interface{}{{"abertura": "19:00"}}},
		},
		{
			name: "hora malformada",
			body: map[string]interface{}{"horarios": []map[string]interface{}{{"dia_semana": 2, "abertura": "25:00"}}},
		},
		{
			name: "lista vazia",
			body: map[string]interface{}{"horarios": []map[string]interface{}{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executarJSON(router, "PUT", "/api/horarios/dlcrepes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDisponibilidadeDelivery(t *testing.T) {
	setupTestDB(t)
	router := horarioRouter()

	w := executarJSON(router, "GET", "/api/horarios/disponibilidade/dlcrepes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var disponibilidade models.Disponibilidade
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &disponibilidade))
	assert.NotEmpty(t, disponibilidade.Mensagem)
	assert.NotEmpty(t, disponibilidade.Timestamp)
}
