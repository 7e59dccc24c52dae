package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
)

// HorarioDiaRequest is one weekday entry in the schedule payload
type HorarioDiaRequest struct {
	DiaSemana  *int   `json:"dia_semana"`
	Aberto     *bool  `json:"aberto"`
	Abertura   string `json:"abertura"`
	Fechamento string `json:"fechamento"`
}

// HorariosRequest is the weekly schedule payload
type HorariosRequest struct {
	Horarios []HorarioDiaRequest `json:"horarios"`
}

// HorarioDiaResponse is one weekday in the schedule response
type HorarioDiaResponse struct {
	DiaSemana  int    `json:"dia_semana"`
	Nome       string `json:"nome"`
	Aberto     bool   `json:"aberto"`
	Abertura   string `json:"abertura"`
	Fechamento string `json:"fechamento"`
}

var horaValida = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ListarHorarios handles GET /api/horarios/:subdominio returning all seven
// weekdays. Days never configured come back with the default schedule.
func ListarHorarios(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var configurados []models.HorarioDelivery
	if err := db.Where("tenant_id = ?", tenant.ID).Find(&configurados).Error; err != nil {
		logrus.WithError(err).Error("erro ao buscar horários de delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar horários"})
		return
	}

	porDia := make(map[int]models.HorarioDelivery, len(configurados))
	for _, h := range configurados {
		porDia[h.DiaSemana] = h
	}

	resposta := make([]HorarioDiaResponse, 0, 7)
	for dia := 0; dia < 7; dia++ {
		horario, existe := porDia[dia]
		if !existe {
			horario = models.HorarioPadrao(dia)
		}
		resposta = append(resposta, HorarioDiaResponse{
			DiaSemana:  dia,
			Nome:       models.NomeDiaSemana(dia),
			Aberto:     horario.Aberto,
			Abertura:   horario.Abertura,
			Fechamento: horario.Fechamento,
		})
	}

	c.JSON(http.StatusOK, resposta)
}

// AtualizarHorarios handles PUT /api/horarios/:subdominio upserting the sent
// weekdays in a single transaction. Days not present are left untouched.
func AtualizarHorarios(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	var req HorariosRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Horarios) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Informe ao menos um dia"})
		return
	}

	for _, dia := range req.Horarios {
		if dia.DiaSemana == nil || *dia.DiaSemana < 0 || *dia.DiaSemana > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Dia da semana inválido"})
			return
		}
		if dia.Abertura != "" && !horaValida.MatchString(dia.Abertura) {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Horário de abertura inválido"})
			return
		}
		if dia.Fechamento != "" && !horaValida.MatchString(dia.Fechamento) {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Horário de fechamento inválido"})
			return
		}
	}

	db := config.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, dia := range req.Horarios {
			var horario models.HorarioDelivery
			err := tx.Where("tenant_id = ? AND dia_semana = ?", tenant.ID, *dia.DiaSemana).
				First(&horario).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				horario = models.HorarioPadrao(*dia.DiaSemana)
				horario.TenantID = tenant.ID
			}

			if dia.Aberto != nil {
				horario.Aberto = *dia.Aberto
			}
			if dia.Abertura != "" {
				horario.Abertura = dia.Abertura
			}
			if dia.Fechamento != "" {
				horario.Fechamento = dia.Fechamento
			}

			if err := tx.Save(&horario).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("erro ao salvar horários de delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao salvar horários"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Horários atualizados com sucesso"})
}

// DisponibilidadeDelivery handles GET /api/horarios/disponibilidade/:subdominio
// evaluating the store's current delivery window.
func DisponibilidadeDelivery(c *gin.Context) {
	tenant, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Estabelecimento não resolvido"})
		return
	}

	db := config.GetDB()

	var configurados []models.HorarioDelivery
	if err := db.Where("tenant_id = ?", tenant.ID).Find(&configurados).Error; err != nil {
		logrus.WithError(err).Error("erro ao buscar horários de delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao verificar disponibilidade"})
		return
	}

	porDia := make(map[int]models.HorarioDelivery, len(configurados))
	for _, h := range configurados {
		porDia[h.DiaSemana] = h
	}

	c.JSON(http.StatusOK, models.CalcularDisponibilidade(porDia, time.Now()))
}
