package models

import "time"

// Produto is a menu item owned by a tenant. The category link is optional;
// deleting a product is blocked while historical order items reference it.
type Produto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	CategoriaID *uint     `gorm:"index" json:"categoria_id"`
	Nome        string    `gorm:"size:100;not null" json:"nome"`
	Descricao   string    `json:"descricao"`
	Preco       float64   `gorm:"type:decimal(10,2);not null" json:"preco"`
	Destaque    bool      `gorm:"default:false" json:"destaque"`
	Disponivel  bool      `json:"disponivel"`
	ImagemS3Key *string   `json:"imagem_s3_key,omitempty"`
	ImagemURL   string    `gorm:"-" json:"imagem_url,omitempty"` // presigned, filled on read
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Produto model
func (Produto) TableName() string {
	return "produtos"
}

// ItemCardapio is a Produto joined with its category for the public menu.
type ItemCardapio struct {
	Produto
	CategoriaNome  *string `json:"categoria_nome"`
	CategoriaOrdem *int    `json:"categoria_ordem"`
}
