package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/santabrisa/crm-server/models"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func sale(status models.InteractionStatus, value float64, visit time.Time) models.Interaction {
	return models.Interaction{Status: status, Value: value, VisitDate: visit}
}

func TestClassifyAccount(t *testing.T) {
	cfg := DefaultCarteraConfig()

	tests := []struct {
		name         string
		interactions []models.Interaction
		want         models.AccountStatus
	}{
		{
			name:         "sin historial",
			interactions: nil,
			want:         models.AccountStatusPENDIENTE,
		},
		{
			name: "una venta reciente",
			interactions: []models.Interaction{
				sale(models.InteractionStatusCONFIRMADO, 200, daysAgo(10)),
			},
			want: models.AccountStatusACTIVO,
		},
		{
			name: "dos ventas recientes",
			interactions: []models.Interaction{
				sale(models.InteractionStatusENTREGADO, 100, daysAgo(20)),
				sale(models.InteractionStatusFACTURADO, 120, daysAgo(50)),
			},
			want: models.AccountStatusREPETICION,
		},
		{
			name: "ultima venta hace 91 dias",
			interactions: []models.Interaction{
				sale(models.InteractionStatusPAGADO, 300, daysAgo(91)),
				sale(models.InteractionStatusPAGADO, 300, daysAgo(200)),
			},
			want: models.AccountStatusINACTIVO,
		},
		{
			name: "ultima venta hace 89 dias",
			interactions: []models.Interaction{
				sale(models.InteractionStatusPAGADO, 300, daysAgo(89)),
			},
			want: models.AccountStatusACTIVO,
		},
		{
			// El limite es estricto: 90 dias exactos sigue siendo activa.
			name: "ultima venta hace exactamente 90 dias",
			interactions: []models.Interaction{
				sale(models.InteractionStatusPAGADO, 300, daysAgo(90)),
			},
			want: models.AccountStatusACTIVO,
		},
		{
			name: "cancelado no cuenta como venta",
			interactions: []models.Interaction{
				sale(models.InteractionStatusCANCELADO, 500, daysAgo(5)),
			},
			want: models.AccountStatusSEGUIMIENTO,
		},
		{
			name: "visita programada",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusPROGRAMADA, VisitDate: daysAgo(-3)},
			},
			want: models.AccountStatusPROGRAMADA,
		},
		{
			name: "seguimiento mas temprano que la visita",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusPROGRAMADA, VisitDate: daysAgo(-10)},
				{Status: models.InteractionStatusSEGUIMIENTO, NextActionDate: daysAgo(-2)},
			},
			want: models.AccountStatusSEGUIMIENTO,
		},
		{
			name: "tarea con fecha valida gana a la que no la tiene",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusPROGRAMADA},
				{Status: models.InteractionStatusSEGUIMIENTO, NextActionDate: daysAgo(-30)},
			},
			want: models.AccountStatusSEGUIMIENTO,
		},
		{
			name: "cierre mas reciente fallido",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusCOMPLETADO, VisitDate: daysAgo(40)},
				{Status: models.InteractionStatusFALLIDO, VisitDate: daysAgo(10)},
			},
			want: models.AccountStatusFALLIDO,
		},
		{
			name: "cierre mas reciente completado",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusFALLIDO, VisitDate: daysAgo(40)},
				{Status: models.InteractionStatusCOMPLETADO, VisitDate: daysAgo(10)},
			},
			want: models.AccountStatusSEGUIMIENTO,
		},
		{
			name: "la venta gana a cualquier tarea abierta",
			interactions: []models.Interaction{
				{Status: models.InteractionStatusPROGRAMADA, VisitDate: daysAgo(-1)},
				sale(models.InteractionStatusENVIADO, 80, daysAgo(15)),
			},
			want: models.AccountStatusACTIVO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAccount(tt.interactions, testNow, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

// El empate entre tareas abiertas con la misma fecha lo gana Programada,
// sea cual sea el orden de entrada.
func TestClassifyAccountOpenTaskTie(t *testing.T) {
	cfg := DefaultCarteraConfig()
	date := daysAgo(-5)

	a := models.Interaction{Status: models.InteractionStatusPROGRAMADA, VisitDate: date}
	b := models.Interaction{Status: models.InteractionStatusSEGUIMIENTO, NextActionDate: date}

	assert.Equal(t, models.AccountStatusPROGRAMADA,
		ClassifyAccount([]models.Interaction{a, b}, testNow, cfg))
	assert.Equal(t, models.AccountStatusPROGRAMADA,
		ClassifyAccount([]models.Interaction{b, a}, testNow, cfg))
}

func TestClassifyAccountInvalidDates(t *testing.T) {
	cfg := DefaultCarteraConfig()

	// Una venta sin fecha valida cuenta para el recuento pero no dispara
	// la inactividad.
	its := []models.Interaction{
		{Status: models.InteractionStatusPAGADO, Value: 100},
		{Status: models.InteractionStatusPAGADO, Value: 100},
	}
	assert.Equal(t, models.AccountStatusREPETICION, ClassifyAccount(its, testNow, cfg))
}

func TestLeadScore(t *testing.T) {
	cfg := DefaultCarteraConfig()

	tests := []struct {
		name            string
		status          models.AccountStatus
		potential       models.Potential
		lastInteraction time.Time
		recentRevenue   float64
		want            int
	}{
		{
			name:      "maximo recortado a 100",
			status:    models.AccountStatusREPETICION,
			potential: models.PotentialHIGH,
			// 90 + 15 + 5 + 10 = 120 -> 100
			lastInteraction: daysAgo(1),
			recentRevenue:   1500,
			want:            100,
		},
		{
			name:   "minimo recortado a 0",
			status: models.AccountStatusPENDIENTE,
			// 0 + 0 - 5 = -5 -> 0
			want: 0,
		},
		{
			name:            "fallido con potencial bajo",
			status:          models.AccountStatusFALLIDO,
			potential:       models.PotentialLOW,
			lastInteraction: daysAgo(30),
			// 20 + 5 + 0
			want: 25,
		},
		{
			name:            "penalizacion por inactividad",
			status:          models.AccountStatusACTIVO,
			potential:       models.PotentialMEDIUM,
			lastInteraction: daysAgo(70),
			// 80 + 10 - 10
			want: 80,
		},
		{
			name:            "bonificacion por facturacion con tope",
			status:          models.AccountStatusSEGUIMIENTO,
			potential:       models.PotentialMEDIUM,
			lastInteraction: daysAgo(3),
			recentRevenue:   250,
			// 50 + 10 + 5 + 2
			want: 67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeadScore(tt.status, tt.potential, tt.lastInteraction, tt.recentRevenue, testNow, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnrichAccountsEndToEnd(t *testing.T) {
	cfg := DefaultCarteraConfig()

	acc := models.Account{
		ID:        primitive.NewObjectID(),
		Name:      "Bar Mafalda",
		Potential: models.PotentialMEDIUM,
	}
	its := []models.Interaction{
		{AccountID: acc.ID.Hex(), Status: models.InteractionStatusENTREGADO, Value: 100, VisitDate: daysAgo(20)},
		{AccountID: acc.ID.Hex(), Status: models.InteractionStatusFACTURADO, Value: 120, VisitDate: daysAgo(50)},
	}

	enriched := EnrichAccounts([]models.Account{acc}, its, nil, testNow, cfg)
	require.Len(t, enriched, 1)

	e := enriched[0]
	assert.Equal(t, models.AccountStatusREPETICION, e.Status)
	// 90 + 10 + 0 (20 dias) + 1 (100 EUR en ventana) = 101 -> 100
	assert.Equal(t, 100, e.LeadScore)
	assert.Equal(t, 2, e.TotalOrders)
	assert.Equal(t, 220.0, e.TotalValue)
	require.NotNil(t, e.LastInteraction)
	assert.Equal(t, models.InteractionStatusENTREGADO, e.LastInteraction.Status)
	assert.Nil(t, e.NextPendingTask)
}

func TestEnrichAccountsLegacyNameMatch(t *testing.T) {
	cfg := DefaultCarteraConfig()

	acc := models.Account{ID: primitive.NewObjectID(), Name: "Bar Mafalda", Potential: models.PotentialLOW}
	its := []models.Interaction{
		// Sin accountId: casa por nombre normalizado a pesar de tildes y
		// espacios.
		{ClientName: "  Bar  Máfalda ", Status: models.InteractionStatusPAGADO, Value: 90, VisitDate: daysAgo(10)},
		// No casa con ninguna cuenta: se descarta en silencio.
		{ClientName: "Taberna Inexistente", Status: models.InteractionStatusPAGADO, Value: 500, VisitDate: daysAgo(5)},
	}

	enriched := EnrichAccounts([]models.Account{acc}, its, nil, testNow, cfg)
	require.Len(t, enriched, 1)
	assert.Equal(t, models.AccountStatusACTIVO, enriched[0].Status)
	assert.Equal(t, 1, enriched[0].TotalOrders)
	assert.Equal(t, 90.0, enriched[0].TotalValue)
}

func TestEnrichAccountsDeterministic(t *testing.T) {
	cfg := DefaultCarteraConfig()

	accounts := []models.Account{
		{ID: primitive.NewObjectID(), Name: "Cuenta B", Potential: models.PotentialHIGH},
		{ID: primitive.NewObjectID(), Name: "Cuenta A", Potential: models.PotentialLOW},
	}
	its := []models.Interaction{
		{AccountID: accounts[0].ID.Hex(), Status: models.InteractionStatusPAGADO, Value: 40, VisitDate: daysAgo(3)},
		{AccountID: accounts[1].ID.Hex(), Status: models.InteractionStatusFALLIDO, VisitDate: daysAgo(8)},
	}

	first := EnrichAccounts(accounts, its, nil, testNow, cfg)
	second := EnrichAccounts(accounts, its, nil, testNow, cfg)

	assert.Equal(t, first, second)
	// El resultado conserva el orden de entrada de las cuentas.
	require.Len(t, first, 2)
	assert.Equal(t, "Cuenta B", first[0].Account.Name)
	assert.Equal(t, "Cuenta A", first[1].Account.Name)
}

func TestEnrichAccountsOwnerResolution(t *testing.T) {
	cfg := DefaultCarteraConfig()

	owner := models.TeamMember{ID: primitive.NewObjectID(), Name: "Lucia Perez", AvatarUrl: "https://img/lucia.png"}
	acc := models.Account{ID: primitive.NewObjectID(), Name: "Vinoteca Sur", OwnerID: owner.ID.Hex(), OwnerName: "nombre antiguo"}

	enriched := EnrichAccounts([]models.Account{acc}, nil, []models.TeamMember{owner}, testNow, cfg)
	require.Len(t, enriched, 1)
	assert.Equal(t, "Lucia Perez", enriched[0].OwnerName)
	assert.Equal(t, "https://img/lucia.png", enriched[0].OwnerAvatar)
	assert.Equal(t, models.AccountStatusPENDIENTE, enriched[0].Status)
}

func TestSummarizeCartera(t *testing.T) {
	enriched := []models.EnrichedAccount{
		{Status: models.AccountStatusACTIVO},
		{Status: models.AccountStatusACTIVO},
		{Status: models.AccountStatusPENDIENTE},
	}

	summary := SummarizeCartera(enriched)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByStatus[models.AccountStatusACTIVO])
	assert.Equal(t, 1, summary.ByStatus[models.AccountStatusPENDIENTE])
}
