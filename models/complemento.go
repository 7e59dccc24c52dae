package models

// Complemento is an optional add-on item (topping, extra, sauce) that can be
// linked into one or more selection groups.
type Complemento struct {
	ID                    uint    `gorm:"primaryKey" json:"id"`
	TenantID              uint    `gorm:"not null;index" json:"tenant_id"`
	Nome                  string  `gorm:"size:100;not null" json:"nome"`
	Descricao             string  `json:"descricao"`
	Preco                 float64 `gorm:"type:decimal(10,2);default:0" json:"preco"`
	CategoriaComplemento  string  `gorm:"size:50" json:"categoria_complemento"`
	Disponivel            bool    `json:"disponivel"`
	Ordem                 int     `gorm:"default:0" json:"ordem"`
}

// TableName specifies the table name for the Complemento model
func (Complemento) TableName() string {
	return "complementos"
}

// GrupoComplemento is a selectable group of complements ("choose up to N").
type GrupoComplemento struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TenantID       uint   `gorm:"not null;index" json:"tenant_id"`
	Nome           string `gorm:"size:100;not null" json:"nome"`
	Descricao      string `json:"descricao"`
	LimiteSelecao  int    `gorm:"default:1" json:"limite_selecao"`
	Obrigatorio    bool   `gorm:"default:false" json:"obrigatorio"`
	Ordem          int    `gorm:"default:0" json:"ordem"`
}

// TableName specifies the table name for the GrupoComplemento model
func (GrupoComplemento) TableName() string {
	return "grupos_complementos"
}

// GrupoComplementoItem links a complement into a group. The (grupo, complemento)
// pair is unique; Ordem controls display order inside the group.
type GrupoComplementoItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	GrupoID       uint `gorm:"not null;uniqueIndex:idx_grupo_complemento" json:"grupo_id"`
	ComplementoID uint `gorm:"not null;uniqueIndex:idx_grupo_complemento" json:"complemento_id"`
	Ordem         int  `gorm:"default:0" json:"ordem"`
}

// TableName specifies the table name for the GrupoComplementoItem model
func (GrupoComplementoItem) TableName() string {
	return "grupo_complemento_itens"
}
