package models

import (
	"fmt"
	"time"
)

// StatusPedido is the closed set of order states. Only these five values can
// cross the API boundary; anything else is rejected before touching the row.
type StatusPedido string

const (
	StatusNovo       StatusPedido = "novo"
	StatusPreparando StatusPedido = "preparando"
	StatusPronto     StatusPedido = "pronto"
	StatusEntregue   StatusPedido = "entregue"
	StatusCancelado  StatusPedido = "cancelado"
)

// ParseStatusPedido validates a raw status string against the five known values.
func ParseStatusPedido(s string) (StatusPedido, error) {
	switch StatusPedido(s) {
	case StatusNovo, StatusPreparando, StatusPronto, StatusEntregue, StatusCancelado:
		return StatusPedido(s), nil
	}
	return "", fmt.Errorf("status inválido: %q", s)
}

// Terminal reports whether the status admits no further progression.
func (s StatusPedido) Terminal() bool {
	return s == StatusEntregue || s == StatusCancelado
}

// Pedido is a customer order. Totals are stored as submitted by the client;
// the engine does not recompute them.
type Pedido struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	TenantID        uint         `gorm:"not null;index" json:"tenant_id"`
	Codigo          string       `gorm:"size:36;index" json:"codigo"`
	ClienteNome     string       `gorm:"size:100;not null" json:"cliente_nome"`
	ClienteTelefone string       `gorm:"size:20;not null" json:"cliente_telefone"`
	Endereco        string       `json:"endereco"`
	Bairro          string       `gorm:"size:100" json:"bairro"`
	TipoEntrega     string       `gorm:"size:20;default:'entrega'" json:"tipo_entrega"`
	TaxaEntrega     float64      `gorm:"type:decimal(10,2)" json:"taxa_entrega"`
	Subtotal        float64      `gorm:"type:decimal(10,2)" json:"subtotal"`
	Total           float64      `gorm:"type:decimal(10,2)" json:"total"`
	Observacoes     string       `json:"observacoes"`
	Status          StatusPedido `gorm:"size:20;default:'novo'" json:"status"`
	DataPedido      time.Time    `gorm:"autoCreateTime" json:"data_pedido"`
	Itens           []ItemPedido `gorm:"foreignKey:PedidoID" json:"itens,omitempty"`
	TotalItens      int64        `gorm:"->;-:migration" json:"total_itens,omitempty"`
}

// TableName specifies the table name for the Pedido model
func (Pedido) TableName() string {
	return "pedidos"
}

// ItemPedido is one line of an order. Name and unit price are frozen at
// creation time so later product edits or deletion never rewrite history.
type ItemPedido struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	PedidoID      uint    `gorm:"not null;index" json:"pedido_id"`
	ProdutoID     *uint   `json:"produto_id"`
	ProdutoNome   string  `gorm:"size:100;not null" json:"produto_nome"`
	Quantidade    int     `gorm:"not null" json:"quantidade"`
	PrecoUnitario float64 `gorm:"type:decimal(10,2)" json:"preco_unitario"`
	Subtotal      float64 `gorm:"type:decimal(10,2)" json:"subtotal"`
}

// TableName specifies the table name for the ItemPedido model
func (ItemPedido) TableName() string {
	return "itens_pedido"
}
