package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/google/uuid"
	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// GetMaterials lista materiales.
func GetMaterials(c *gin.Context) {
	ctx := context.Background()

	query := bson.M{}
	if category := c.Query("category"); category != "" {
		query["category"] = category
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := repository.Collection(repository.MaterialsCollection).Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var materials []models.Material
	if err := cursor.All(ctx, &materials); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, materials, "")
}

// CreateMaterial alta de material.
func CreateMaterial(c *gin.Context) {
	var input models.CreateMaterialRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de material no validos", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.MaterialsCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"sku": input.SKU})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "ya existe un material con ese SKU", http.StatusConflict)
		return
	}

	now := time.Now()
	material := models.Material{
		Name:      input.Name,
		SKU:       input.SKU,
		Category:  input.Category,
		Unit:      input.Unit,
		MinStock:  input.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, material)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	material.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, material, "material creado", http.StatusCreated)
}

// GetBatches lista lotes de inventario.
func GetBatches(c *gin.Context) {
	ctx := context.Background()

	query := bson.M{}
	if materialID := c.Query("materialId"); materialID != "" {
		query["materialId"] = materialID
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"receivedAt": 1})
	cursor, err := repository.Collection(repository.InventoryBatchesCollection).Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var batches []models.InventoryBatch
	if err := cursor.All(ctx, &batches); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, batches, "")
}

// CreateBatch entrada manual de un lote de inventario.
func CreateBatch(c *gin.Context) {
	var input models.CreateBatchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de lote no validos", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := context.Background()

	matID, err := primitive.ObjectIDFromHex(input.MaterialID)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("materialId no valido"))
		return
	}

	var material models.Material
	err = repository.Collection(repository.MaterialsCollection).
		FindOne(ctx, bson.M{"_id": matID}).Decode(&material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("material"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	batch, err := insertBatch(ctx, input, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, batch, "lote registrado", http.StatusCreated)
}

// insertBatch crea el lote y su movimiento de entrada.
func insertBatch(ctx context.Context, input models.CreateBatchRequest, user *utils.LoginUser) (*models.InventoryBatch, error) {
	now := time.Now()

	lotCode := input.LotCode
	if lotCode == "" {
		lotCode = uuid.NewString()
	}

	receivedAt := input.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}

	batch := models.InventoryBatch{
		MaterialID: input.MaterialID,
		LotCode:    lotCode,
		QtyInitial: input.Qty,
		QtyRemain:  input.Qty,
		UnitCost:   input.UnitCost,
		Status:     models.BatchStatusAVAILABLE,
		ReceivedAt: receivedAt,
		ExpiryDate: input.ExpiryDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := repository.Collection(repository.InventoryBatchesCollection).InsertOne(ctx, batch)
	if err != nil {
		return nil, err
	}
	batch.ID = result.InsertedID.(primitive.ObjectID)

	record := models.InventoryRecord{
		MaterialID:    batch.MaterialID,
		BatchID:       batch.ID.Hex(),
		LotCode:       batch.LotCode,
		OperationType: models.InventoryOpRECEIPT,
		Qty:           batch.QtyInitial,
		OperatorID:    user.ID,
		OperatorName:  user.Name,
		OperationTime: now,
	}
	if _, err := repository.Collection(repository.InventoryRecordsCollection).InsertOne(ctx, record); err != nil {
		// El movimiento es auditoria: no revierte el lote ya creado
		utils.LogError(err, map[string]interface{}{
			"batchId": batch.ID.Hex(),
		}, "error guardando movimiento de entrada")
	}

	return &batch, nil
}

// GetInventoryRecords lista movimientos de inventario con filtros y
// paginacion.
func GetInventoryRecords(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}

	query := bson.M{}
	if materialID := c.Query("materialId"); materialID != "" {
		query["materialId"] = materialID
	}
	if opType := c.Query("operationType"); opType != "" && opType != "all" {
		query["operationType"] = opType
	}

	startDateStr := c.Query("startDate")
	endDateStr := c.Query("endDate")
	if startDateStr != "" && endDateStr != "" {
		startDate, err := time.Parse(time.RFC3339, startDateStr+"T00:00:00Z")
		if err != nil {
			utils.HandleError(c, utils.CreateBadRequestError("startDate no valida"))
			return
		}
		endDate, err := time.Parse(time.RFC3339, endDateStr+"T23:59:59Z")
		if err != nil {
			utils.HandleError(c, utils.CreateBadRequestError("endDate no valida"))
			return
		}
		query["operationTime"] = bson.M{"$gte": startDate, "$lte": endDate}
	} else {
		days := 30
		if daysStr := c.Query("days"); daysStr != "" {
			if d, err := strconv.Atoi(daysStr); err == nil {
				days = d
			}
		}
		query["operationTime"] = bson.M{"$gte": time.Now().AddDate(0, 0, -days)}
	}

	ctx := context.Background()
	collection := repository.Collection(repository.InventoryRecordsCollection)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	opts := options.Find().
		SetSort(bson.M{"operationTime": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var records []models.InventoryRecord
	if err := cursor.All(ctx, &records); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, records, total, page, limit)
}

// GetInventoryStats estadisticas de stock por material.
func GetInventoryStats(c *gin.Context) {
	ctx := context.Background()

	materialsCollection := repository.Collection(repository.MaterialsCollection)
	batchesCollection := repository.Collection(repository.InventoryBatchesCollection)

	totalMaterials, err := materialsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// Stock total por material sobre lotes disponibles
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.BatchStatusAVAILABLE}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$materialId",
			"stock": bson.M{"$sum": "$qtyRemain"},
		}}},
	}

	cursor, err := batchesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var stocks []struct {
		MaterialID string  `bson:"_id"`
		Stock      float64 `bson:"stock"`
	}
	if err := cursor.All(ctx, &stocks); err != nil {
		utils.HandleError(c, err)
		return
	}

	stockByMaterial := make(map[string]float64, len(stocks))
	for _, s := range stocks {
		stockByMaterial[s.MaterialID] = s.Stock
	}

	// Materiales por debajo de su stock minimo
	matCursor, err := materialsCollection.Find(ctx, bson.M{"minStock": bson.M{"$gt": 0}})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer matCursor.Close(ctx)

	var watched []models.Material
	if err := matCursor.All(ctx, &watched); err != nil {
		utils.HandleError(c, err)
		return
	}

	lowStock := []gin.H{}
	for _, m := range watched {
		stock := stockByMaterial[m.ID.Hex()]
		if stock < m.MinStock {
			lowStock = append(lowStock, gin.H{
				"materialId": m.ID.Hex(),
				"name":       m.Name,
				"sku":        m.SKU,
				"stock":      stock,
				"minStock":   m.MinStock,
			})
		}
	}

	utils.SuccessResponse(c, gin.H{
		"totalMaterials":  totalMaterials,
		"stockByMaterial": stockByMaterial,
		"lowStock":        lowStock,
	}, "")
}
