package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
)

// GrupoRequest represents the request body for creating or updating a complement group
type GrupoRequest struct {
	Nome          string `json:"nome"`
	Descricao     string `json:"descricao"`
	LimiteSelecao *int   `json:"limite_selecao"`
	Obrigatorio   *bool  `json:"obrigatorio"`
	Ordem         *int   `json:"ordem"`
}

// GrupoItemRequest adds a complement to a group
type GrupoItemRequest struct {
	ComplementoID uint `json:"complemento_id"`
	Ordem         *int `json:"ordem"`
}

// OrdemItensRequest reorders the items of a group
type OrdemItensRequest struct {
	Itens []struct {
		ComplementoID uint `json:"complemento_id"`
		Ordem         int  `json:"ordem"`
	} `json:"itens"`
}

// ListarGrupos handles GET /api/grupos-complementos
func ListarGrupos(c *gin.Context) {
	db := config.GetDB()

	var grupos []models.GrupoComplemento
	if err := db.Where("tenant_id = ?", tenantIDFromQuery(c)).
		Order("ordem ASC, nome ASC").
		Find(&grupos).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar grupos de complementos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar grupos"})
		return
	}

	c.JSON(http.StatusOK, grupos)
}

// CriarGrupo handles POST /api/grupos-complementos
func CriarGrupo(c *gin.Context) {
	var req GrupoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do grupo é obrigatório"})
		return
	}
	if req.LimiteSelecao != nil && *req.LimiteSelecao < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Limite de seleção deve ser no mínimo 1"})
		return
	}

	grupo := models.GrupoComplemento{
		TenantID:      tenantIDFromQuery(c),
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		LimiteSelecao: 1,
	}
	if req.LimiteSelecao != nil {
		grupo.LimiteSelecao = *req.LimiteSelecao
	}
	if req.Obrigatorio != nil {
		grupo.Obrigatorio = *req.Obrigatorio
	}
	if req.Ordem != nil {
		grupo.Ordem = *req.Ordem
	}

	db := config.GetDB()
	if err := db.Create(&grupo).Error; err != nil {
		logrus.WithError(err).Error("erro ao criar grupo de complementos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar grupo"})
		return
	}

	c.JSON(http.StatusCreated, grupo)
}

// AtualizarGrupo handles PUT /api/grupos-complementos/:id
func AtualizarGrupo(c *gin.Context) {
	db := config.GetDB()

	var grupo models.GrupoComplemento
	if err := db.First(&grupo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Grupo não encontrado"})
		return
	}

	var req GrupoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do grupo é obrigatório"})
		return
	}
	if req.LimiteSelecao != nil && *req.LimiteSelecao < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Limite de seleção deve ser no mínimo 1"})
		return
	}

	grupo.Nome = req.Nome
	grupo.Descricao = req.Descricao
	if req.LimiteSelecao != nil {
		grupo.LimiteSelecao = *req.LimiteSelecao
	}
	if req.Obrigatorio != nil {
		grupo.Obrigatorio = *req.Obrigatorio
	}
	if req.Ordem != nil {
		grupo.Ordem = *req.Ordem
	}

	if err := db.Save(&grupo).Error; err != nil {
		logrus.WithError(err).Error("erro ao atualizar grupo de complementos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar grupo"})
		return
	}

	c.JSON(http.StatusOK, grupo)
}

// DeletarGrupo handles DELETE /api/grupos-complementos/:id
// Groups that still hold items cannot be removed.
func DeletarGrupo(c *gin.Context) {
	db := config.GetDB()

	var grupo models.GrupoComplemento
	if err := db.First(&grupo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Grupo não encontrado"})
		return
	}

	var itens int64
	if err := db.Model(&models.GrupoComplementoItem{}).
		Where("grupo_id = ?", grupo.ID).
		Count(&itens).Error; err != nil {
		logrus.WithError(err).Error("erro ao verificar itens do grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir grupo"})
		return
	}
	if itens > 0 {
		c.JSON(http.StatusConflict, gin.H{"erro": "Grupo possui complementos vinculados"})
		return
	}

	if err := db.Delete(&grupo).Error; err != nil {
		logrus.WithError(err).Error("erro ao excluir grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir grupo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Grupo excluído com sucesso"})
}

// ListarItensGrupo handles GET /api/grupos-complementos/:id/itens
func ListarItensGrupo(c *gin.Context) {
	db := config.GetDB()

	var grupo models.GrupoComplemento
	if err := db.First(&grupo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Grupo não encontrado"})
		return
	}

	var complementos []models.Complemento
	err := db.Table("complementos").
		Select("complementos.*").
		Joins("JOIN grupo_complemento_itens ON grupo_complemento_itens.complemento_id = complementos.id").
		Where("grupo_complemento_itens.grupo_id = ?", grupo.ID).
		Order("grupo_complemento_itens.ordem ASC").
		Scan(&complementos).Error
	if err != nil {
		logrus.WithError(err).Error("erro ao listar itens do grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar itens do grupo"})
		return
	}

	c.JSON(http.StatusOK, GrupoComComplementos{
		GrupoComplemento: grupo,
		Complementos:     complementos,
	})
}

// AdicionarItemGrupo handles POST /api/grupos-complementos/:id/itens
func AdicionarItemGrupo(c *gin.Context) {
	db := config.GetDB()

	var grupo models.GrupoComplemento
	if err := db.First(&grupo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Grupo não encontrado"})
		return
	}

	var req GrupoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ComplementoID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Campo complemento_id é obrigatório"})
		return
	}

	var complemento models.Complemento
	if err := db.First(&complemento, req.ComplementoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Complemento não encontrado"})
		return
	}

	var existente int64
	db.Model(&models.GrupoComplementoItem{}).
		Where("grupo_id = ? AND complemento_id = ?", grupo.ID, complemento.ID).
		Count(&existente)
	if existente > 0 {
		c.JSON(http.StatusConflict, gin.H{"erro": "Complemento já está no grupo"})
		return
	}

	item := models.GrupoComplementoItem{
		GrupoID:       grupo.ID,
		ComplementoID: complemento.ID,
	}
	if req.Ordem != nil {
		item.Ordem = *req.Ordem
	}

	if err := db.Create(&item).Error; err != nil {
		logrus.WithError(err).Error("erro ao adicionar complemento ao grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao adicionar complemento"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoverItemGrupo handles DELETE /api/grupos-complementos/:id/itens/:complementoId
func RemoverItemGrupo(c *gin.Context) {
	db := config.GetDB()

	result := db.Where("grupo_id = ? AND complemento_id = ?", c.Param("id"), c.Param("complementoId")).
		Delete(&models.GrupoComplementoItem{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("erro ao remover complemento do grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao remover complemento"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Complemento não está no grupo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Complemento removido do grupo"})
}

// ReordenarItensGrupo handles PUT /api/grupos-complementos/:id/itens/ordem
// updating the position of every listed item in one transaction.
func ReordenarItensGrupo(c *gin.Context) {
	db := config.GetDB()

	var grupo models.GrupoComplemento
	if err := db.First(&grupo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Grupo não encontrado"})
		return
	}

	var req OrdemItensRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Itens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Informe a ordem dos itens"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Itens {
			if err := tx.Model(&models.GrupoComplementoItem{}).
				Where("grupo_id = ? AND complemento_id = ?", grupo.ID, item.ComplementoID).
				Update("ordem", item.Ordem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao reordenar itens do grupo")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao reordenar itens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Ordem atualizada com sucesso"})
}
