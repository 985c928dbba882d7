package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

// GetCartera devuelve la cartera enriquecida para el dashboard. Admite
// filtro por comercial y por estado calculado.
func GetCartera(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	accounts, interactions, team, err := repository.LoadCarteraInputs(ctx)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	enriched := service.EnrichAccounts(accounts, interactions, team, time.Now(), service.DefaultCarteraConfig())

	ownerFilter := c.Query("ownerId")
	statusFilter := c.Query("status")
	if ownerFilter != "" || statusFilter != "" {
		filtered := make([]models.EnrichedAccount, 0, len(enriched))
		for _, e := range enriched {
			if ownerFilter != "" && e.Account.OwnerID != ownerFilter {
				continue
			}
			if statusFilter != "" && string(e.Status) != statusFilter {
				continue
			}
			filtered = append(filtered, e)
		}
		enriched = filtered
	}

	utils.SuccessResponse(c, enriched, "")
}

// GetCarteraSummary recuento de cuentas por estado calculado.
func GetCarteraSummary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	accounts, interactions, team, err := repository.LoadCarteraInputs(ctx)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	enriched := service.EnrichAccounts(accounts, interactions, team, time.Now(), service.DefaultCarteraConfig())

	utils.SuccessResponse(c, service.SummarizeCartera(enriched), "")
}
