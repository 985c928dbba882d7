package controllers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

// GetDashboardStats estadisticas generales del panel: recuentos,
// distribuciones de cuentas y facturacion mensual. Los comerciales solo
// ven sus propias cuentas.
func GetDashboardStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), 401)
		return
	}

	accountQuery := bson.M{}
	if user.Role == string(models.UserRoleSALES_REP) {
		accountQuery["ownerId"] = user.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accountsCollection := repository.Collection(repository.AccountsCollection)
	interactionsCollection := repository.Collection(repository.InteractionsCollection)
	teamCollection := repository.Collection(repository.TeamMembersCollection)

	accountCount, err := accountsCollection.CountDocuments(ctx, accountQuery)
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error contando cuentas: %w", err))
		return
	}

	interactionCount, err := interactionsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error contando interacciones: %w", err))
		return
	}

	teamCount, err := teamCollection.CountDocuments(ctx, bson.M{"status": models.UserStatusAPPROVED})
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error contando equipo: %w", err))
		return
	}

	accountsByType, err := getChartDataAggregation(ctx, accountsCollection, accountQuery, "$type")
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error en distribucion por tipo: %w", err))
		return
	}

	accountsByTier, err := getChartDataAggregation(ctx, accountsCollection, accountQuery, "$potential")
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error en distribucion por potencial: %w", err))
		return
	}

	// La distribucion por estado es derivada: se calcula con la cartera.
	accounts, interactions, team, err := repository.LoadCarteraInputs(ctx)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if ownerID, filtered := accountQuery["ownerId"]; filtered {
		owned := make([]models.Account, 0, len(accounts))
		for _, acc := range accounts {
			if acc.OwnerID == ownerID {
				owned = append(owned, acc)
			}
		}
		accounts = owned
	}
	enriched := service.EnrichAccounts(accounts, interactions, team, time.Now(), service.DefaultCarteraConfig())

	summary := service.SummarizeCartera(enriched)
	accountsByStatus := make([]models.ChartDataItem, 0, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		accountsByStatus = append(accountsByStatus, models.ChartDataItem{
			Name:  string(status),
			Value: count,
		})
	}
	sort.Slice(accountsByStatus, func(i, j int) bool {
		return accountsByStatus[i].Name < accountsByStatus[j].Name
	})

	ordersByMonth, err := getOrdersByMonth(ctx, interactionsCollection)
	if err != nil {
		utils.HandleError(c, fmt.Errorf("error en facturacion mensual: %w", err))
		return
	}

	utils.SuccessResponse(c, models.DashboardDataResponse{
		AccountCount:     int(accountCount),
		InteractionCount: int(interactionCount),
		TeamMemberCount:  int(teamCount),
		AccountsByType:   accountsByType,
		AccountsByTier:   accountsByTier,
		AccountsByStatus: accountsByStatus,
		OrdersByMonth:    ordersByMonth,
	}, "")
}

// getChartDataAggregation agrupa y cuenta por un campo.
func getChartDataAggregation(ctx context.Context, collection *mongo.Collection, query bson.M, groupField string) ([]models.ChartDataItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$group", Value: bson.M{"_id": groupField, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string `bson:"_id,omitempty"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	var chartData []models.ChartDataItem
	for _, result := range results {
		chartData = append(chartData, models.ChartDataItem{
			Name:  result.ID,
			Value: result.Count,
		})
	}

	return chartData, nil
}

// getOrdersByMonth facturacion mensual de los ultimos 12 meses sobre
// estados de venta valida.
func getOrdersByMonth(ctx context.Context, collection *mongo.Collection) ([]models.MonthlyValueItem, error) {
	oneYearAgo := time.Now().AddDate(-1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": bson.M{"$in": []models.InteractionStatus{
				models.InteractionStatusCONFIRMADO,
				models.InteractionStatusPROCESANDO,
				models.InteractionStatusENVIADO,
				models.InteractionStatusENTREGADO,
				models.InteractionStatusFACTURADO,
				models.InteractionStatusPAGADO,
			}},
			"createdAt": bson.M{"$gte": oneYearAgo},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
			"value": bson.M{"$sum": "$value"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string  `bson:"_id"`
		Value float64 `bson:"value"`
		Count int     `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	items := make([]models.MonthlyValueItem, 0, len(results))
	for _, r := range results {
		items = append(items, models.MonthlyValueItem{
			Month: r.ID,
			Value: r.Value,
			Count: r.Count,
		})
	}

	return items, nil
}
