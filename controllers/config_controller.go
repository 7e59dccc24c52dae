package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
)

// BairroInput is a restricted neighborhood entry in the config payload
type BairroInput struct {
	Bairro string `json:"bairro"`
	Motivo string `json:"motivo"`
	Ativo  *bool  `json:"ativo"`
}

// ConfigLojaRequest is the full store configuration document. The neighborhood
// list is a pointer so an absent field can be told apart from an empty list.
type ConfigLojaRequest struct {
	NomeLoja             string         `json:"nome_loja"`
	Slogan               string         `json:"slogan"`
	HorarioFuncionamento string         `json:"horario_funcionamento"`
	Endereco             string         `json:"endereco"`
	Telefone             string         `json:"telefone"`
	CEP                  string         `json:"cep"`
	DistanciaMaximaKM    float64        `json:"distancia_maxima_km"`
	MensagemDistancia    string         `json:"mensagem_distancia"`
	CorPrincipal         string         `json:"cor_principal"`
	TaxaPorKM            float64        `json:"taxa_por_km"`
	TaxaMinima           float64        `json:"taxa_minima"`
	FreteGratisAcima     float64        `json:"frete_gratis_acima"`
	BannerMensagem       string         `json:"banner_mensagem"`
	BannerAtivo          bool           `json:"banner_ativo"`
	BairrosRestritos     *[]BairroInput `json:"bairros_restritos"`
}

// BuscarConfigLoja handles GET /api/config/:subdominio returning the store
// configuration. When the store was never configured, defaults derived from
// the tenant record are returned without being persisted.
func BuscarConfigLoja(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var cfg models.ConfiguracaoLoja
	err := db.Where("tenant_id = ?", tenant.ID).First(&cfg).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("erro ao buscar configuração da loja")
			c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar configuração"})
			return
		}
		cfg = models.ConfiguracaoLoja{
			TenantID:     tenant.ID,
			NomeLoja:     tenant.Nome,
			CorPrincipal: tenant.CorPrincipal,
		}
	}

	var bairros []models.BairroRestrito
	if err := db.Where("tenant_id = ?", tenant.ID).
		Order("bairro ASC").
		Find(&bairros).Error; err != nil {
		logrus.WithError(err).Error("erro ao buscar bairros restritos")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar configuração"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"configuracao":      cfg,
		"bairros_restritos": bairros,
	})
}

// AtualizarConfigLoja handles PUT /api/config/:subdominio. The payload is a
// full document: every field is written as sent, and when bairros_restritos
// is present the stored list is replaced wholesale. Upsert and replacement
// run in a single transaction.
func AtualizarConfigLoja(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	var req ConfigLojaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados inválidos"})
		return
	}

	if req.DistanciaMaximaKM < 0 || req.TaxaPorKM < 0 || req.TaxaMinima < 0 || req.FreteGratisAcima < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Valores de entrega não podem ser negativos"})
		return
	}

	db := config.GetDB()

	var cfg models.ConfiguracaoLoja
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("tenant_id = ?", tenant.ID).First(&cfg).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cfg.TenantID = tenant.ID
		cfg.NomeLoja = req.NomeLoja
		cfg.Slogan = req.Slogan
		cfg.HorarioFuncionamento = req.HorarioFuncionamento
		cfg.Endereco = req.Endereco
		cfg.Telefone = req.Telefone
		cfg.CEP = req.CEP
		cfg.DistanciaMaximaKM = req.DistanciaMaximaKM
		cfg.MensagemDistancia = req.MensagemDistancia
		cfg.CorPrincipal = req.CorPrincipal
		cfg.TaxaPorKM = req.TaxaPorKM
		cfg.TaxaMinima = req.TaxaMinima
		cfg.FreteGratisAcima = req.FreteGratisAcima
		cfg.BannerMensagem = req.BannerMensagem
		cfg.BannerAtivo = req.BannerAtivo

		if err := tx.Save(&cfg).Error; err != nil {
			return err
		}

		if req.BairrosRestritos != nil {
			if err := tx.Where("tenant_id = ?", tenant.ID).
				Delete(&models.BairroRestrito{}).Error; err != nil {
				return err
			}
			for _, entrada := range *req.BairrosRestritos {
				if entrada.Bairro == "" {
					continue
				}
				bairro := models.BairroRestrito{
					TenantID: tenant.ID,
					Bairro:   entrada.Bairro,
					Motivo:   entrada.Motivo,
					Ativo:    true,
				}
				if entrada.Ativo != nil {
					bairro.Ativo = *entrada.Ativo
				}
				if err := tx.Create(&bairro).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao salvar configuração da loja")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao salvar configuração"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensagem":     "Configuração salva com sucesso",
		"configuracao": cfg,
	})
}
