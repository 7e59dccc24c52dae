package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
	"github.com/meupedido/meu-pedido-api/services"
)

// ProdutoRequest represents the request body for creating or updating a product
type ProdutoRequest struct {
	Nome        string  `json:"nome"`
	Descricao   string  `json:"descricao"`
	Preco       float64 `json:"preco"`
	CategoriaID *uint   `json:"categoria_id"`
	Destaque    *bool   `json:"destaque"`
	Disponivel  *bool   `json:"disponivel"`
}

// ProdutosLoteRequest represents the request body for bulk product creation
type ProdutosLoteRequest struct {
	Produtos []ProdutoRequest `json:"produtos"`
}

// PrecoLoteRequest represents the request body for the bulk price adjustment
type PrecoLoteRequest struct {
	Percentual  *float64 `json:"percentual"`
	CategoriaID *uint    `json:"categoria_id"`
}

// DisponibilidadeProdutoRequest toggles product availability
type DisponibilidadeProdutoRequest struct {
	Disponivel *bool `json:"disponivel"`
}

// preencherImagemURL resolves a presigned URL for the product image, when any.
func preencherImagemURL(produto *models.Produto) {
	if produto.ImagemS3Key == nil || *produto.ImagemS3Key == "" {
		return
	}
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	url, err := svc.GetImageURL(*produto.ImagemS3Key)
	if err != nil {
		logrus.WithError(err).WithField("produto_id", produto.ID).Warn("erro ao gerar URL da imagem")
		return
	}
	produto.ImagemURL = url
}

func validarProduto(req *ProdutoRequest) string {
	if req.Nome == "" {
		return "Nome do produto é obrigatório"
	}
	if req.Preco <= 0 {
		return "Preço deve ser maior que zero"
	}
	return ""
}

// ListarProdutos handles GET /api/produtos with optional filters:
// categoria_id, disponivel, destaque, preco_min, preco_max and busca.
func ListarProdutos(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Produto{}).Where("tenant_id = ?", tenantIDFromQuery(c))

	if categoriaID := c.Query("categoria_id"); categoriaID != "" {
		query = query.Where("categoria_id = ?", categoriaID)
	}
	if disponivel := c.Query("disponivel"); disponivel != "" {
		query = query.Where("disponivel = ?", disponivel == "true")
	}
	if destaque := c.Query("destaque"); destaque != "" {
		query = query.Where("destaque = ?", destaque == "true")
	}
	if precoMin := c.Query("preco_min"); precoMin != "" {
		query = query.Where("preco >= ?", precoMin)
	}
	if precoMax := c.Query("preco_max"); precoMax != "" {
		query = query.Where("preco <= ?", precoMax)
	}
	if busca := c.Query("busca"); busca != "" {
		like := "%" + busca + "%"
		query = query.Where("LOWER(nome) LIKE LOWER(?) OR LOWER(descricao) LIKE LOWER(?)", like, like)
	}

	var produtos []models.Produto
	if err := query.Order("nome ASC").Find(&produtos).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar produtos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar produtos"})
		return
	}

	for i := range produtos {
		preencherImagemURL(&produtos[i])
	}

	c.JSON(http.StatusOK, produtos)
}

// BuscarProduto handles GET /api/produtos/:id
func BuscarProduto(c *gin.Context) {
	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	preencherImagemURL(&produto)
	c.JSON(http.StatusOK, produto)
}

// CriarProduto handles POST /api/produtos
func CriarProduto(c *gin.Context) {
	var req ProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if msg := validarProduto(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": msg})
		return
	}

	produto := models.Produto{
		TenantID:    tenantIDFromQuery(c),
		Nome:        req.Nome,
		Descricao:   req.Descricao,
		Preco:       req.Preco,
		CategoriaID: req.CategoriaID,
		Disponivel:  true,
	}
	if req.Destaque != nil {
		produto.Destaque = *req.Destaque
	}
	if req.Disponivel != nil {
		produto.Disponivel = *req.Disponivel
	}

	db := config.GetDB()
	if err := db.Create(&produto).Error; err != nil {
		logrus.WithError(err).Error("erro ao criar produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar produto"})
		return
	}

	c.JSON(http.StatusCreated, produto)
}

// AtualizarProduto handles PUT /api/produtos/:id
func AtualizarProduto(c *gin.Context) {
	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	var req ProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if msg := validarProduto(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": msg})
		return
	}

	produto.Nome = req.Nome
	produto.Descricao = req.Descricao
	produto.Preco = req.Preco
	produto.CategoriaID = req.CategoriaID
	if req.Destaque != nil {
		produto.Destaque = *req.Destaque
	}
	if req.Disponivel != nil {
		produto.Disponivel = *req.Disponivel
	}

	if err := db.Save(&produto).Error; err != nil {
		logrus.WithError(err).Error("erro ao atualizar produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar produto"})
		return
	}

	preencherImagemURL(&produto)
	c.JSON(http.StatusOK, produto)
}

// AtualizarDisponibilidadeProduto handles PATCH /api/produtos/:id/disponivel
func AtualizarDisponibilidadeProduto(c *gin.Context) {
	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	var req DisponibilidadeProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Disponivel == nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Campo disponivel é obrigatório"})
		return
	}

	if err := db.Model(&produto).Update("disponivel", *req.Disponivel).Error; err != nil {
		logrus.WithError(err).Error("erro ao atualizar disponibilidade do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar produto"})
		return
	}

	produto.Disponivel = *req.Disponivel
	c.JSON(http.StatusOK, produto)
}

// DeletarProduto handles DELETE /api/produtos/:id
// Products referenced by order items are kept for history and cannot be removed.
func DeletarProduto(c *gin.Context) {
	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	var vinculados int64
	if err := db.Model(&models.ItemPedido{}).
		Where("produto_id = ?", produto.ID).
		Count(&vinculados).Error; err != nil {
		logrus.WithError(err).Error("erro ao verificar pedidos do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir produto"})
		return
	}
	if vinculados > 0 {
		c.JSON(http.StatusConflict, gin.H{"erro": "Produto possui pedidos vinculados"})
		return
	}

	if err := db.Delete(&produto).Error; err != nil {
		logrus.WithError(err).Error("erro ao excluir produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir produto"})
		return
	}

	if produto.ImagemS3Key != nil && *produto.ImagemS3Key != "" {
		if svc := services.GetImageService(); svc != nil {
			if err := svc.DeleteImage(*produto.ImagemS3Key); err != nil {
				logrus.WithError(err).Warn("erro ao remover imagem do produto")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Produto excluído com sucesso"})
}

// CriarProdutosLote handles POST /api/produtos/lote creating several products
// in a single transaction. Either all products are created or none.
func CriarProdutosLote(c *gin.Context) {
	var req ProdutosLoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if len(req.Produtos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Informe ao menos um produto"})
		return
	}

	tenantID := tenantIDFromQuery(c)
	produtos := make([]models.Produto, 0, len(req.Produtos))
	for i := range req.Produtos {
		item := &req.Produtos[i]
		if msg := validarProduto(item); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"erro": msg})
			return
		}
		produto := models.Produto{
			TenantID:    tenantID,
			Nome:        item.Nome,
			Descricao:   item.Descricao,
			Preco:       item.Preco,
			CategoriaID: item.CategoriaID,
			Disponivel:  true,
		}
		if item.Destaque != nil {
			produto.Destaque = *item.Destaque
		}
		if item.Disponivel != nil {
			produto.Disponivel = *item.Disponivel
		}
		produtos = append(produtos, produto)
	}

	db := config.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&produtos).Error
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao criar produtos em lote")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar produtos"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensagem": "Produtos criados com sucesso",
		"produtos": produtos,
	})
}

// AtualizarPrecosLote handles PUT /api/produtos/lote/preco applying a
// percentage adjustment to product prices, optionally scoped to a category.
func AtualizarPrecosLote(c *gin.Context) {
	var req PrecoLoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Percentual == nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Campo percentual é obrigatório"})
		return
	}
	if *req.Percentual <= -100 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Percentual inválido"})
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Produto{}).Where("tenant_id = ?", tenantIDFromQuery(c))
	if req.CategoriaID != nil {
		query = query.Where("categoria_id = ?", *req.CategoriaID)
	}

	result := query.Update("preco", gorm.Expr("ROUND(preco * (1 + ? / 100.0), 2)", *req.Percentual))
	if result.Error != nil {
		logrus.WithError(result.Error).Error("erro ao reajustar preços")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar preços"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensagem":             "Preços atualizados com sucesso",
		"produtos_atualizados": result.RowsAffected,
	})
}

// ListarCardapio handles GET /api/cardapio/:subdominio returning the
// available products of the store joined with their category metadata.
func ListarCardapio(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()
	var itens []models.ItemCardapio
	err := db.Table("produtos").
		Select("produtos.*, categorias.nome AS categoria_nome, categorias.ordem AS categoria_ordem").
		Joins("LEFT JOIN categorias ON categorias.id = produtos.categoria_id").
		Where("produtos.tenant_id = ? AND produtos.disponivel = ?", tenant.ID, true).
		Order("categorias.ordem ASC, produtos.nome ASC").
		Scan(&itens).Error
	if err != nil {
		logrus.WithError(err).Error("erro ao montar cardápio")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar cardápio"})
		return
	}

	for i := range itens {
		preencherImagemURL(&itens[i].Produto)
	}

	c.JSON(http.StatusOK, itens)
}

// EstatisticasProdutos handles GET /api/produtos/estatisticas/:subdominio
func EstatisticasProdutos(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var total, disponiveis, destaques int64
	if err := db.Model(&models.Produto{}).
		Where("tenant_id = ?", tenant.ID).
		Count(&total).Error; err != nil {
		logrus.WithError(err).Error("erro ao calcular estatísticas de produtos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar estatísticas"})
		return
	}
	db.Model(&models.Produto{}).
		Where("tenant_id = ? AND disponivel = ?", tenant.ID, true).
		Count(&disponiveis)
	db.Model(&models.Produto{}).
		Where("tenant_id = ? AND destaque = ?", tenant.ID, true).
		Count(&destaques)

	var precoMedio sql.NullFloat64
	db.Model(&models.Produto{}).
		Where("tenant_id = ?", tenant.ID).
		Select("AVG(preco)").
		Scan(&precoMedio)

	c.JSON(http.StatusOK, gin.H{
		"total":         total,
		"disponiveis":   disponiveis,
		"indisponiveis": total - disponiveis,
		"destaques":     destaques,
		"preco_medio":   precoMedio.Float64,
	})
}
