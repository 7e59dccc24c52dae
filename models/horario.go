package models

import (
	"fmt"
	"time"
)

// Default schedule used whenever a tenant has no configured row for a weekday.
const (
	AberturaPadrao   = "18:00"
	FechamentoPadrao = "23:00"
)

var nomesDias = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

var nomesDiasMinusculo = [7]string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"}

// HorarioDelivery is the delivery window for one weekday (0=Sunday .. 6=Saturday).
// Opening and closing times are zero-padded "HH:MM" strings, so plain string
// comparison orders them correctly.
type HorarioDelivery struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;uniqueIndex:idx_horario_tenant_dia" json:"tenant_id"`
	DiaSemana  int       `gorm:"not null;uniqueIndex:idx_horario_tenant_dia" json:"dia_semana"`
	Aberto     bool      `json:"aberto"`
	Abertura   string    `gorm:"size:5" json:"abertura"`
	Fechamento string    `gorm:"size:5" json:"fechamento"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName specifies the table name for the HorarioDelivery model
func (HorarioDelivery) TableName() string {
	return "horarios_delivery"
}

// NomeDiaSemana returns the Portuguese weekday name for 0..6.
func NomeDiaSemana(dia int) string {
	if dia < 0 || dia > 6 {
		return ""
	}
	return nomesDias[dia]
}

// HorarioPadrao builds the fallback row for a weekday: open every day with
// the default window.
func HorarioPadrao(dia int) HorarioDelivery {
	return HorarioDelivery{
		DiaSemana:  dia,
		Aberto:     true,
		Abertura:   AberturaPadrao,
		Fechamento: FechamentoPadrao,
	}
}

// Disponibilidade is the live "can I order right now" answer.
type Disponibilidade struct {
	Disponivel     bool   `json:"disponivel"`
	Mensagem       string `json:"mensagem"`
	PodeAgendar    bool   `json:"pode_agendar"`
	ProximoHorario string `json:"proximo_horario,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// CalcularDisponibilidade evaluates the weekly schedule at the given instant.
// Missing weekdays fall back to the default window; when closed, the next
// open slot within the following seven days is described.
func CalcularDisponibilidade(horarios map[int]HorarioDelivery, agora time.Time) Disponibilidade {
	dia := int(agora.Weekday())
	hora := agora.Format("15:04")

	resultado := Disponibilidade{
		PodeAgendar: true,
		Timestamp:   agora.Format(time.RFC3339),
	}

	hoje, configurado := horarios[dia]
	if !configurado {
		hoje = HorarioPadrao(dia)
	}

	if hoje.Aberto {
		abertura := horaOuPadrao(hoje.Abertura, AberturaPadrao)
		fechamento := horaOuPadrao(hoje.Fechamento, FechamentoPadrao)

		if hora >= abertura && hora <= fechamento {
			resultado.Disponivel = true
			resultado.Mensagem = fmt.Sprintf("Delivery disponível agora (%s às %s)", abertura, fechamento)
			return resultado
		}

		resultado.Mensagem = fmt.Sprintf("Delivery indisponível agora. Horário de hoje: %s às %s", abertura, fechamento)
		if hora < abertura {
			resultado.ProximoHorario = abertura
			return resultado
		}
		resultado.ProximoHorario = proximoHorario(horarios, dia)
		return resultado
	}

	resultado.Mensagem = "Delivery fechado hoje"
	resultado.ProximoHorario = proximoHorario(horarios, dia)
	return resultado
}

// proximoHorario scans forward up to seven days for the next open slot.
func proximoHorario(horarios map[int]HorarioDelivery, diaAtual int) string {
	for i := 1; i <= 7; i++ {
		dia := (diaAtual + i) % 7
		h, ok := horarios[dia]
		if !ok {
			// unconfigured days are open by default
			return fmt.Sprintf("%s de %s", AberturaPadrao, nomesDiasMinusculo[dia])
		}
		if h.Aberto {
			return fmt.Sprintf("%s de %s", horaOuPadrao(h.Abertura, AberturaPadrao), nomesDiasMinusculo[dia])
		}
	}
	return AberturaPadrao + " (horário padrão)"
}

func horaOuPadrao(hora, padrao string) string {
	if hora == "" {
		return padrao
	}
	return hora
}
