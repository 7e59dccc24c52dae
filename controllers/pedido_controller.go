package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
)

// ItemPedidoRequest is one line item of an incoming order
type ItemPedidoRequest struct {
	ProdutoID     *uint   `json:"produto_id"`
	ProdutoNome   string  `json:"produto_nome"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Subtotal      float64 `json:"subtotal"`
}

// PedidoRequest is the order document sent by the storefront
type PedidoRequest struct {
	ClienteNome     string              `json:"cliente_nome"`
	ClienteTelefone string              `json:"cliente_telefone"`
	Endereco        string              `json:"endereco"`
	Bairro          string              `json:"bairro"`
	TipoEntrega     string              `json:"tipo_entrega"`
	TaxaEntrega     float64             `json:"taxa_entrega"`
	Subtotal        float64             `json:"subtotal"`
	Total           float64             `json:"total"`
	Observacoes     string              `json:"observacoes"`
	Itens           []ItemPedidoRequest `json:"itens"`
}

// CriarPedidoRequest wraps the order with the target store
type CriarPedidoRequest struct {
	Subdominio string        `json:"subdominio"`
	Pedido     PedidoRequest `json:"pedido"`
}

// StatusPedidoRequest updates an order's status
type StatusPedidoRequest struct {
	Status string `json:"status"`
}

// CriarPedido handles POST /api/pedidos. The store is resolved from the body
// since this route has no subdomain prefix. Order and items are created in a
// single transaction.
func CriarPedido(c *gin.Context) {
	var req CriarPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.Subdominio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Subdomínio é obrigatório"})
		return
	}

	db := config.GetDB()
	tenant, err := middleware.ResolveSubdominio(db, req.Subdominio)
	if err != nil {
		if errors.Is(err, middleware.ErrTenantNaoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"erro": "Estabelecimento não encontrado"})
			return
		}
		logrus.WithError(err).Error("erro ao resolver estabelecimento")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar pedido"})
		return
	}

	if req.Pedido.ClienteNome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do cliente é obrigatório"})
		return
	}
	if req.Pedido.ClienteTelefone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Telefone do cliente é obrigatório"})
		return
	}
	if len(req.Pedido.Itens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Pedido deve ter ao menos um item"})
		return
	}
	for _, item := range req.Pedido.Itens {
		if item.Quantidade < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Quantidade deve ser no mínimo 1"})
			return
		}
		if item.ProdutoNome == "" {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Nome do item é obrigatório"})
			return
		}
	}

	tipoEntrega := req.Pedido.TipoEntrega
	if tipoEntrega == "" {
		tipoEntrega = "entrega"
	}

	pedido := models.Pedido{
		TenantID:        tenant.ID,
		Codigo:          uuid.NewString(),
		ClienteNome:     req.Pedido.ClienteNome,
		ClienteTelefone: req.Pedido.ClienteTelefone,
		Endereco:        req.Pedido.Endereco,
		Bairro:          req.Pedido.Bairro,
		TipoEntrega:     tipoEntrega,
		TaxaEntrega:     req.Pedido.TaxaEntrega,
		Subtotal:        req.Pedido.Subtotal,
		Total:           req.Pedido.Total,
		Observacoes:     req.Pedido.Observacoes,
		Status:          models.StatusNovo,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pedido).Error; err != nil {
			return err
		}
		for _, item := range req.Pedido.Itens {
			subtotal := item.Subtotal
			if subtotal == 0 {
				subtotal = item.PrecoUnitario * float64(item.Quantidade)
			}
			itemPedido := models.ItemPedido{
				PedidoID:      pedido.ID,
				ProdutoID:     item.ProdutoID,
				ProdutoNome:   item.ProdutoNome,
				Quantidade:    item.Quantidade,
				PrecoUnitario: item.PrecoUnitario,
				Subtotal:      subtotal,
			}
			if err := tx.Create(&itemPedido).Error; err != nil {
				return err
			}
			pedido.Itens = append(pedido.Itens, itemPedido)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao criar pedido")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar pedido"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenant.ID,
		"pedido_id": pedido.ID,
		"itens":     len(pedido.Itens),
	}).Info("pedido criado")

	c.JSON(http.StatusCreated, gin.H{
		"mensagem":  "Pedido criado com sucesso",
		"pedido_id": pedido.ID,
		"codigo":    pedido.Codigo,
		"pedido":    pedido,
	})
}

// ListarPedidos handles GET /api/pedidos/:subdominio listing the store's
// orders newest first, with an optional status filter. Each order carries its
// item count without loading the items.
func ListarPedidos(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Pedido{}).
		Select("pedidos.*, (SELECT COUNT(*) FROM itens_pedido WHERE itens_pedido.pedido_id = pedidos.id) AS total_itens").
		Where("tenant_id = ?", tenant.ID)

	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseStatusPedido(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Status inválido"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var pedidos []models.Pedido
	if err := query.Order("data_pedido DESC").Find(&pedidos).Error; err != nil {
		logrus.WithError(err).Error("erro ao listar pedidos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar pedidos"})
		return
	}

	c.JSON(http.StatusOK, pedidos)
}

// BuscarPedido handles GET /api/pedidos/:subdominio/:id returning the order
// with its items.
func BuscarPedido(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var pedido models.Pedido
	err := db.Preload("Itens").
		Where("tenant_id = ?", tenant.ID).
		First(&pedido, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Pedido não encontrado"})
		return
	}

	c.JSON(http.StatusOK, pedido)
}

// AtualizarStatusPedido handles PUT /api/pedidos/:subdominio/:id/status
func AtualizarStatusPedido(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	var req StatusPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	status, err := models.ParseStatusPedido(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Status inválido"})
		return
	}

	db := config.GetDB()
	result := db.Model(&models.Pedido{}).
		Where("tenant_id = ? AND id = ?", tenant.ID, c.Param("id")).
		Update("status", status)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("erro ao atualizar status do pedido")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao atualizar pedido"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Pedido não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensagem": "Status atualizado com sucesso",
		"status":   status,
	})
}

// DeletarPedido handles DELETE /api/pedidos/:subdominio/:id removing the
// order and its items in one transaction.
func DeletarPedido(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var pedido models.Pedido
	if err := db.Where("tenant_id = ?", tenant.ID).First(&pedido, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Pedido não encontrado"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", pedido.ID).Delete(&models.ItemPedido{}).Error; err != nil {
			return err
		}
		return tx.Delete(&pedido).Error
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao excluir pedido")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao excluir pedido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Pedido excluído com sucesso"})
}

// ResumoPedido is one entry of the dashboard's recent orders list
type ResumoPedido struct {
	ID          uint                `json:"id"`
	ClienteNome string              `json:"cliente_nome"`
	Total       float64             `json:"total"`
	Status      models.StatusPedido `json:"status"`
	DataPedido  time.Time           `json:"data_pedido"`
}

// ContagemStatus is the per-status order count of the dashboard
type ContagemStatus struct {
	Status models.StatusPedido `json:"status"`
	Total  int64               `json:"total"`
}

// Dashboard handles GET /api/dashboard/:subdominio summarizing the store's
// orders: today's volume and revenue, the latest orders and counts by status.
// Cancelled orders do not count towards revenue.
func Dashboard(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	agora := time.Now()
	inicioHoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	inicioAmanha := inicioHoje.AddDate(0, 0, 1)

	var pedidosHoje int64
	if err := db.Model(&models.Pedido{}).
		Where("tenant_id = ? AND data_pedido >= ? AND data_pedido < ?", tenant.ID, inicioHoje, inicioAmanha).
		Count(&pedidosHoje).Error; err != nil {
		logrus.WithError(err).Error("erro ao montar dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar dashboard"})
		return
	}

	var faturamento sql.NullFloat64
	db.Model(&models.Pedido{}).
		Where("tenant_id = ? AND data_pedido >= ? AND data_pedido < ? AND status <> ?",
			tenant.ID, inicioHoje, inicioAmanha, models.StatusCancelado).
		Select("SUM(total)").
		Scan(&faturamento)

	var ultimos []ResumoPedido
	db.Model(&models.Pedido{}).
		Select("id, cliente_nome, total, status, data_pedido").
		Where("tenant_id = ?", tenant.ID).
		Order("data_pedido DESC").
		Limit(10).
		Scan(&ultimos)

	var porStatus []ContagemStatus
	db.Model(&models.Pedido{}).
		Select("status, COUNT(*) AS total").
		Where("tenant_id = ?", tenant.ID).
		Group("status").
		Scan(&porStatus)

	c.JSON(http.StatusOK, gin.H{
		"hoje": gin.H{
			"pedidos":     pedidosHoje,
			"faturamento": faturamento.Float64,
		},
		"ultimos_pedidos": ultimos,
		"status":          porStatus,
	})
}
