package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
)

// CategoriaRequest represents the request body for creating or updating a category
type CategoriaRequest struct {
	Nome  string `json:"nome"`
	Ordem *int   `json:"ordem"`
}

// tenantIDFromQuery resolves the tenant scope for admin routes that are not
// under a :subdominio prefix. Defaults to the primary tenant.
func tenantIDFromQuery(c *gin.Context) uint {
	cfg := config.GetConfig()
	if raw := c.Query("tenant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			return uint(id)
		}
	}
	return cfg.DefaultTenantID
}

// ListarCategorias handles GET /api/categorias
func ListarCategorias(c *gin.Context) {
	db := config.GetDB()
	tenantID := tenantIDFromQuery(c)

	var categorias []models.Categoria
	if err := db.Where("tenant_id = ?", tenantID).
		Order("ordem ASC, nome ASC").
		Find(&categorias).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar categorias")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar categorias"})
		return
	}

	c.JSON(http.StatusOK, categorias)
}

// CriarCategoria handles POST /api/categorias
func CriarCategoria(c *gin.Context) {
	var req CategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome da categoria é obrigatório"})
		return
	}

	categoria := models.Categoria{
		TenantID: tenantIDFromQuery(c),
		Nome:     req.Nome,
	}
	if req.Ordem != nil {
		categoria.Ordem = *req.Ordem
	}

	db := config.GetDB()
	if err := db.Create(&categoria).Error; err != nil {
		logrus.WithError(err).Error("erro ao criar categoria")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar categoria"})
		return
	}

	c.JSON(http.StatusCreated, categoria)
}

// AtualizarCategoria handles PUT /api/categorias/:id
func AtualizarCategoria(c *gin.Context) {
	db := config.GetDB()

	var categoria models.Categoria
	if err := db.First(&categoria, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Categoria não encontrada"})
		return
	}

	var req CategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome da categoria é obrigatório"})
		return
	}

	categoria.Nome = req.Nome
	if req.Ordem != nil {
		categoria.Ordem = *req.Ordem
	}

	if err := db.Save(&categoria).Error; err != nil {
		logrus.WithError(err).Error("erro ao atualizar categoria")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar categoria"})
		return
	}

	c.JSON(http.StatusOK, categoria)
}

// DeletarCategoria handles DELETE /api/categorias/:id
// A category still referenced by products cannot be removed.
func DeletarCategoria(c *gin.Context) {
	db := config.GetDB()

	var categoria models.Categoria
	if err := db.First(&categoria, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Categoria não encontrada"})
		return
	}

	var vinculados int64
	if err := db.Model(&models.Produto{}).
		Where("categoria_id = ?", categoria.ID).
		Count(&vinculados).Error; err != nil {
		logrus.WithError(err).Error("erro ao verificar produtos da categoria")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir categoria"})
		return
	}
	if vinculados > 0 {
		c.JSON(http.StatusConflict, gin.H{"erro": "Categoria possui produtos vinculados"})
		return
	}

	if err := db.Delete(&categoria).Error; err != nil {
		logrus.WithError(err).Error("erro ao excluir categoria")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir categoria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Categoria excluída com sucesso"})
}
