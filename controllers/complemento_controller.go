package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
)

// ComplementoRequest represents the request body for creating or updating a complement
type ComplementoRequest struct {
	Nome                 string  `json:"nome"`
	Descricao            string  `json:"descricao"`
	Preco                float64 `json:"preco"`
	CategoriaComplemento string  `json:"categoria_complemento"`
	Disponivel           *bool   `json:"disponivel"`
	Ordem                *int    `json:"ordem"`
}

// GrupoComComplementos is a complement group with its ordered items expanded
type GrupoComComplementos struct {
	models.GrupoComplemento
	Complementos []models.Complemento `json:"complementos"`
}

// ListarComplementos handles GET /api/complementos with optional filters
// categoria_complemento and disponivel.
func ListarComplementos(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Complemento{}).Where("tenant_id = ?", tenantIDFromQuery(c))
	if categoria := c.Query("categoria_complemento"); categoria != "" {
		query = query.Where("categoria_complemento = ?", categoria)
	}
	if disponivel := c.Query("disponivel"); disponivel != "" {
		query = query.Where("disponivel = ?", disponivel == "true")
	}

	var complementos []models.Complemento
	if err := query.Order("ordem ASC, nome ASC").Find(&complementos).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar complementos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar complementos"})
		return
	}

	c.JSON(http.StatusOK, complementos)
}

// CriarComplemento handles POST /api/complementos
func CriarComplemento(c *gin.Context) {
	var req ComplementoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do complemento é obrigatório"})
		return
	}
	if req.Preco < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Preço não pode ser negativo"})
		return
	}

	complemento := models.Complemento{
		TenantID:             tenantIDFromQuery(c),
		Nome:                 req.Nome,
		Descricao:            req.Descricao,
		Preco:                req.Preco,
		CategoriaComplemento: req.CategoriaComplemento,
		Disponivel:           true,
	}
	if req.Disponivel != nil {
		complemento.Disponivel = *req.Disponivel
	}
	if req.Ordem != nil {
		complemento.Ordem = *req.Ordem
	}

	db := config.GetDB()
	if err := db.Create(&complemento).Error; err != nil {
		logrus.WithError(err).Error("erro ao criar complemento")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar complemento"})
		return
	}

	c.JSON(http.StatusCreated, complemento)
}

// AtualizarComplemento handles PUT /api/complementos/:id
func AtualizarComplemento(c *gin.Context) {
	db := config.GetDB()

	var complemento models.Complemento
	if err := db.First(&complemento, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Complemento não encontrado"})
		return
	}

	var req ComplementoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do complemento é obrigatório"})
		return
	}
	if req.Preco < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Preço não pode ser negativo"})
		return
	}

	complemento.Nome = req.Nome
	complemento.Descricao = req.Descricao
	complemento.Preco = req.Preco
	complemento.CategoriaComplemento = req.CategoriaComplemento
	if req.Disponivel != nil {
		complemento.Disponivel = *req.Disponivel
	}
	if req.Ordem != nil {
		complemento.Ordem = *req.Ordem
	}

	if err := db.Save(&complemento).Error; err != nil {
		logrus.WithError(err).Error("erro ao atualizar complemento")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar complemento"})
		return
	}

	c.JSON(http.StatusOK, complemento)
}

// DeletarComplemento handles DELETE /api/complementos/:id
// Complements that belong to a group cannot be removed.
func DeletarComplemento(c *gin.Context) {
	db := config.GetDB()

	var complemento models.Complemento
	if err := db.First(&complemento, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Complemento não encontrado"})
		return
	}

	var vinculados int64
	if err := db.Model(&models.GrupoComplementoItem{}).
		Where("complemento_id = ?", complemento.ID).
		Count(&vinculados).Error; err != nil {
		logrus.WithError(err).Error("erro ao verificar grupos do complemento")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir complemento"})
		return
	}
	if vinculados > 0 {
		c.JSON(http.StatusConflict, gin.H{"erro": "Complemento está vinculado a grupos"})
		return
	}

	if err := db.Delete(&complemento).Error; err != nil {
		logrus.WithError(err).Error("erro ao excluir complemento")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir complemento"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Complemento excluído com sucesso"})
}

// ListarComplementosProduto handles GET /api/complementos/produto/:produtoId
// returning every complement group of the product's store with its available
// items in group order.
func ListarComplementosProduto(c *gin.Context) {
	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("produtoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	var grupos []models.GrupoComplemento
	if err := db.Where("tenant_id = ?", produto.TenantID).
		Order("ordem ASC, nome ASC").
		Find(&grupos).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar grupos de complementos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar complementos"})
		return
	}

	resultado := make([]GrupoComComplementos, 0, len(grupos))
	for _, grupo := range grupos {
		var complementos []models.Complemento
		err := db.Table("complementos").
			Select("complementos.*").
			Joins("JOIN grupo_complemento_itens ON grupo_complemento_itens.complemento_id = complementos.id").
			Where("grupo_complemento_itens.grupo_id = ? AND complementos.disponivel = ?", grupo.ID, true).
			Order("grupo_complemento_itens.ordem ASC").
			Scan(&complementos).Error
		if err != nil {
			logrus.WithError(err).Error("erro ao listar itens do grupo")
			c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar complementos"})
			return
		}
		resultado = append(resultado, GrupoComComplementos{
			GrupoComplemento: grupo,
			Complementos:     complementos,
		})
	}

	c.JSON(http.StatusOK, resultado)
}
