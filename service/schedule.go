package service

import (
	"time"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// ScheduleDailyTaskAt ejecuta una tarea cada dia a la hora local indicada.
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(next.Sub(now))
			task()
		}
	}()
}

// SweepCartera recalcula la cartera completa y deja constancia en el log
// de las cuentas inactivas. El estado no se persiste: se deriva siempre
// en lectura, la revision nocturna solo avisa al equipo.
func SweepCartera() {
	accounts, interactions, team, err := repository.LoadCarteraInputs(repository.GetContext())
	if err != nil {
		utils.LogError(err, nil, "revision de cartera: error cargando datos")
		return
	}

	enriched := EnrichAccounts(accounts, interactions, team, time.Now(), DefaultCarteraConfig())

	inactive := 0
	for _, e := range enriched {
		if e.Status != models.AccountStatusINACTIVO {
			continue
		}
		inactive++
		utils.Logger.Warn().
			Str("account", e.Account.Name).
			Str("owner", e.OwnerName).
			Int("leadScore", e.LeadScore).
			Msg("cuenta inactiva: sin ventas en la ventana de inactividad")
	}

	utils.LogInfo(map[string]interface{}{
		"accounts": len(enriched),
		"inactive": inactive,
	}, "revision diaria de cartera completada")
}
