package models

// Categoria groups products on the menu, ordered by Ordem.
type Categoria struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	Nome     string `gorm:"size:50;not null" json:"nome"`
	Ordem    int    `gorm:"default:0" json:"ordem"`
}

// TableName specifies the table name for the Categoria model
func (Categoria) TableName() string {
	return "categorias"
}
