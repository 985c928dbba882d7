package service

import (
	"sort"
	"time"

	"github.com/santabrisa/crm-server/models"
)

// CarteraConfig parametros de clasificacion y puntuacion de cuentas.
// Los valores por defecto reproducen las reglas historicas del equipo
// comercial.
type CarteraConfig struct {
	// Dias sin venta a partir de los cuales una cuenta con pedidos pasa a
	// Inactivo. Se aplica con comparacion estricta: a los 90 dias exactos
	// la cuenta sigue activa.
	InactivityDays int

	// Ventana de la bonificacion por facturacion reciente.
	RevenueWindowDays int

	// Ajustes por recencia de la ultima interaccion.
	RecencyBonusDays   int
	RecencyPenaltyDays int

	BaseScores           map[models.AccountStatus]int
	PotentialBonus       map[models.Potential]int
	RecencyBonus         int
	RecencyPenalty       int
	NoInteractionPenalty int

	// Un punto por cada EurosPerPoint de facturacion en la ventana,
	// limitado a RevenueBonusCap.
	EurosPerPoint   float64
	RevenueBonusCap int
}

// DefaultCarteraConfig devuelve la configuracion por defecto.
func DefaultCarteraConfig() CarteraConfig {
	return CarteraConfig{
		InactivityDays:     90,
		RevenueWindowDays:  30,
		RecencyBonusDays:   7,
		RecencyPenaltyDays: 60,
		BaseScores: map[models.AccountStatus]int{
			models.AccountStatusREPETICION:  90,
			models.AccountStatusACTIVO:      80,
			models.AccountStatusPROGRAMADA:  70,
			models.AccountStatusSEGUIMIENTO: 50,
			models.AccountStatusFALLIDO:     20,
		},
		PotentialBonus: map[models.Potential]int{
			models.PotentialHIGH:   15,
			models.PotentialMEDIUM: 10,
			models.PotentialLOW:    5,
		},
		RecencyBonus:         5,
		RecencyPenalty:       -10,
		NoInteractionPenalty: -5,
		EurosPerPoint:        100,
		RevenueBonusCap:      10,
	}
}

// interactionDate fecha de referencia de una interaccion: la fecha de
// visita si existe, si no la de creacion. Cero cuando ninguna es valida.
func interactionDate(it models.Interaction) time.Time {
	if !it.VisitDate.IsZero() {
		return it.VisitDate
	}
	return it.CreatedAt
}

// taskDate fecha relevante de una tarea abierta: visitDate para
// Programada, nextActionDate para Seguimiento.
func taskDate(it models.Interaction) time.Time {
	if it.Status == models.InteractionStatusPROGRAMADA {
		return it.VisitDate
	}
	return it.NextActionDate
}

// taskBefore ordena tareas abiertas: fecha valida mas temprana primero,
// las fechas no validas pierden siempre contra una valida, y en empate
// gana Programada.
func taskBefore(a, b models.Interaction) bool {
	da, db := taskDate(a), taskDate(b)
	switch {
	case !da.IsZero() && !db.IsZero():
		if !da.Equal(db) {
			return da.Before(db)
		}
	case !da.IsZero():
		return true
	case !db.IsZero():
		return false
	}
	if a.Status != b.Status {
		return a.Status == models.InteractionStatusPROGRAMADA
	}
	return false
}

// earliestOpenTask devuelve la tarea abierta prioritaria, o nil si no hay
// ninguna.
func earliestOpenTask(interactions []models.Interaction) *models.Interaction {
	var best *models.Interaction
	for i := range interactions {
		it := interactions[i]
		if !it.Status.IsOpenTask() {
			continue
		}
		if best == nil || taskBefore(it, *best) {
			tmp := it
			best = &tmp
		}
	}
	return best
}

// sortByDateDesc ordena interacciones de mas reciente a mas antigua; las
// fechas no validas quedan al final.
func sortByDateDesc(interactions []models.Interaction) {
	sort.SliceStable(interactions, func(i, j int) bool {
		di, dj := interactionDate(interactions[i]), interactionDate(interactions[j])
		switch {
		case !di.IsZero() && !dj.IsZero():
			return di.After(dj)
		case !di.IsZero():
			return true
		default:
			return false
		}
	})
}

// ClassifyAccount deriva el estado de una cuenta a partir de su historial
// de interacciones. Funcion pura: las reglas se aplican por prioridad y
// gana la primera que encaja.
func ClassifyAccount(interactions []models.Interaction, now time.Time, cfg CarteraConfig) models.AccountStatus {
	if len(interactions) == 0 {
		return models.AccountStatusPENDIENTE
	}

	// Regla 1: ventas. Dos o mas pedidos validos es una cuenta de
	// repeticion, uno es una cuenta activa, salvo que la ultima venta sea
	// mas antigua que la ventana de inactividad.
	saleCount := 0
	var lastSale time.Time
	for _, it := range interactions {
		if !it.Status.IsValidSale() {
			continue
		}
		saleCount++
		if d := interactionDate(it); !d.IsZero() && d.After(lastSale) {
			lastSale = d
		}
	}
	if saleCount > 0 {
		if !lastSale.IsZero() && now.Sub(lastSale) > time.Duration(cfg.InactivityDays)*24*time.Hour {
			return models.AccountStatusINACTIVO
		}
		if saleCount >= 2 {
			return models.AccountStatusREPETICION
		}
		return models.AccountStatusACTIVO
	}

	// Regla 2: tarea abierta mas temprana.
	if task := earliestOpenTask(interactions); task != nil {
		if task.Status == models.InteractionStatusPROGRAMADA {
			return models.AccountStatusPROGRAMADA
		}
		return models.AccountStatusSEGUIMIENTO
	}

	// Regla 3: si el cierre mas reciente fue un fallo, la cuenta esta
	// fallida.
	closed := make([]models.Interaction, 0, len(interactions))
	for _, it := range interactions {
		if !it.Status.IsValidSale() && !it.Status.IsOpenTask() {
			closed = append(closed, it)
		}
	}
	sortByDateDesc(closed)
	if len(closed) > 0 && closed[0].Status == models.InteractionStatusFALLIDO {
		return models.AccountStatusFALLIDO
	}

	// Hay historial pero nada concluyente.
	return models.AccountStatusSEGUIMIENTO
}

// LeadScore calcula la puntuacion 0-100 de una cuenta. lastInteraction en
// cero significa que no hay ninguna interaccion con fecha valida.
func LeadScore(status models.AccountStatus, potential models.Potential, lastInteraction time.Time, recentRevenue float64, now time.Time, cfg CarteraConfig) int {
	score := cfg.BaseScores[status]
	score += cfg.PotentialBonus[potential]

	if lastInteraction.IsZero() {
		score += cfg.NoInteractionPenalty
	} else {
		age := now.Sub(lastInteraction)
		if age <= time.Duration(cfg.RecencyBonusDays)*24*time.Hour {
			score += cfg.RecencyBonus
		} else if age > time.Duration(cfg.RecencyPenaltyDays)*24*time.Hour {
			score += cfg.RecencyPenalty
		}
	}

	if recentRevenue > 0 && cfg.EurosPerPoint > 0 {
		bonus := int(recentRevenue / cfg.EurosPerPoint)
		if bonus > cfg.RevenueBonusCap {
			bonus = cfg.RevenueBonusCap
		}
		score += bonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// recentSaleRevenue facturacion de ventas validas dentro de la ventana.
func recentSaleRevenue(interactions []models.Interaction, now time.Time, windowDays int) float64 {
	cutoff := now.AddDate(0, 0, -windowDays)
	var total float64
	for _, it := range interactions {
		if !it.Status.IsValidSale() {
			continue
		}
		if d := interactionDate(it); !d.IsZero() && d.After(cutoff) {
			total += it.Value
		}
	}
	return total
}

// EnrichAccounts construye el modelo de cartera para el dashboard: agrupa
// las interacciones por cuenta (por id, o por nombre normalizado para
// datos antiguos sin accountId), clasifica y puntua cada cuenta y agrega
// los totales de venta. Las interacciones que no casan con ninguna cuenta
// se descartan. Funcion pura y determinista: el resultado conserva el
// orden de entrada de las cuentas.
func EnrichAccounts(accounts []models.Account, interactions []models.Interaction, team []models.TeamMember, now time.Time, cfg CarteraConfig) []models.EnrichedAccount {
	teamByID := make(map[string]models.TeamMember, len(team))
	for _, m := range team {
		teamByID[m.ID.Hex()] = m
	}

	idSet := make(map[string]bool, len(accounts))
	idByName := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		id := acc.ID.Hex()
		idSet[id] = true
		if key := NormalizeName(acc.Name); key != "" {
			if _, dup := idByName[key]; !dup {
				idByName[key] = id
			}
		}
	}

	grouped := make(map[string][]models.Interaction)
	for _, it := range interactions {
		id := it.AccountID
		if id == "" || !idSet[id] {
			id = ""
			if key := NormalizeName(it.ClientName); key != "" {
				id = idByName[key]
			}
		}
		if id == "" {
			// Sin cuenta resoluble: se descarta (hueco conocido de calidad
			// de datos, no un error).
			continue
		}
		grouped[id] = append(grouped[id], it)
	}

	enriched := make([]models.EnrichedAccount, 0, len(accounts))
	for _, acc := range accounts {
		its := grouped[acc.ID.Hex()]
		sortByDateDesc(its)

		status := ClassifyAccount(its, now, cfg)

		var lastInteraction *models.Interaction
		var lastDate time.Time
		if len(its) > 0 {
			tmp := its[0]
			lastInteraction = &tmp
			lastDate = interactionDate(tmp)
		}

		totalOrders := 0
		var totalValue float64
		for _, it := range its {
			if it.Status.IsValidSale() {
				totalOrders++
				totalValue += it.Value
			}
		}

		revenue := recentSaleRevenue(its, now, cfg.RevenueWindowDays)
		score := LeadScore(status, acc.Potential, lastDate, revenue, now, cfg)

		ownerName := acc.OwnerName
		ownerAvatar := ""
		if owner, ok := teamByID[acc.OwnerID]; ok {
			ownerName = owner.Name
			ownerAvatar = owner.AvatarUrl
		}

		enriched = append(enriched, models.EnrichedAccount{
			Account:         acc,
			Status:          status,
			LeadScore:       score,
			LastInteraction: lastInteraction,
			NextPendingTask: earliestOpenTask(its),
			TotalOrders:     totalOrders,
			TotalValue:      totalValue,
			OwnerName:       ownerName,
			OwnerAvatar:     ownerAvatar,
			Interactions:    its,
		})
	}

	return enriched
}

// SummarizeCartera recuento de cuentas por estado calculado.
func SummarizeCartera(enriched []models.EnrichedAccount) models.CarteraSummary {
	summary := models.CarteraSummary{
		Total:    len(enriched),
		ByStatus: make(map[models.AccountStatus]int),
	}
	for _, e := range enriched {
		summary.ByStatus[e.Status]++
	}
	return summary
}
