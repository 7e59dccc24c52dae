package models

import "time"

// Tenant represents one store of the platform, identified by its subdomain slug.
// Tenants are created by a provisioning step and never mutated through the API.
type Tenant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nome         string    `gorm:"size:100;not null" json:"nome"`
	Subdominio   string    `gorm:"size:50;uniqueIndex;not null" json:"subdominio"`
	CorPrincipal string    `gorm:"size:20;default:'#C83232'" json:"cor_principal"`
	DataCriacao  time.Time `gorm:"autoCreateTime" json:"data_criacao"`
}

// TableName specifies the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
