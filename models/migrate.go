package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Tenant{},
		&Categoria{},
		&Produto{},
		&Complemento{},
		&GrupoComplemento{},
		&GrupoComplementoItem{},
		&ConfiguracaoLoja{},
		&BairroRestrito{},
		&HorarioDelivery{},
		&Pedido{},
		&ItemPedido{},
	)
}

// SeedTenantPadrao inserts the default tenant on first boot so a fresh
// deployment serves a working store right away.
func SeedTenantPadrao(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Tenant{}).Where("subdominio = ?", "dlcrepes").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&Tenant{Nome: "DL Crepes e Lanches", Subdominio: "dlcrepes"}).Error
}
