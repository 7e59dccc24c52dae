package models

import "time"

// ConfiguracaoLoja holds the per-tenant storefront settings. There is at most
// one row per tenant; it is materialized on the first explicit write.
type ConfiguracaoLoja struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	TenantID             uint      `gorm:"not null;uniqueIndex" json:"tenant_id"`
	NomeLoja             string    `gorm:"size:100" json:"nome_loja"`
	Slogan               string    `json:"slogan"`
	HorarioFuncionamento string    `json:"horario_funcionamento"`
	Endereco             string    `json:"endereco"`
	Telefone             string    `gorm:"size:20" json:"telefone"`
	CEP                  string    `gorm:"size:10" json:"cep"`
	DistanciaMaximaKM    float64   `json:"distancia_maxima_km"`
	MensagemDistancia    string    `json:"mensagem_distancia"`
	CorPrincipal         string    `gorm:"size:20" json:"cor_principal"`
	TaxaPorKM            float64   `gorm:"type:decimal(10,2)" json:"taxa_por_km"`
	TaxaMinima           float64   `gorm:"type:decimal(10,2)" json:"taxa_minima"`
	FreteGratisAcima     float64   `gorm:"type:decimal(10,2)" json:"frete_gratis_acima"`
	BannerMensagem       string    `json:"banner_mensagem"`
	BannerAtivo          bool      `gorm:"default:false" json:"banner_ativo"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ConfiguracaoLoja model
func (ConfiguracaoLoja) TableName() string {
	return "configuracoes_loja"
}

// BairroRestrito marks a neighborhood the store does not deliver to. The list
// is replaced wholesale on each configuration update.
type BairroRestrito struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	Bairro   string `gorm:"size:100;not null" json:"bairro"`
	Motivo   string `json:"motivo"`
	Ativo    bool   `json:"ativo"`
}

// TableName specifies the table name for the BairroRestrito model
func (BairroRestrito) TableName() string {
	return "bairros_restritos"
}
