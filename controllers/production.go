package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/google/uuid"
	"github.com/santabrisa/crm-server/middleware"
	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

// CreateProductionRun crea una orden de produccion: planifica el consumo
// FIFO de todos los materiales, y solo si el plan completo es viable
// descuenta los lotes y genera el lote de producto terminado. Si falta
// stock de cualquier material no se consume nada.
func CreateProductionRun(c *gin.Context) {
	var input models.CreateProductionRunRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de orden no validos", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := context.Background()

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("productId no valido"))
		return
	}

	var product models.Material
	err = repository.Collection(repository.MaterialsCollection).
		FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("producto"))
			return
		}
		utils.HandleError(c, err)
		return
	}
	if product.Category != models.MaterialCategoryFINISHED {
		utils.HandleError(c, utils.CreateBadRequestError("el producto debe ser de categoria producto_terminado"))
		return
	}

	batchesCollection := repository.Collection(repository.InventoryBatchesCollection)

	// Primera pasada: plan completo sin tocar nada.
	var lines []models.ConsumptionLine
	for _, req := range input.Requirements {
		cursor, err := batchesCollection.Find(ctx, bson.M{
			"materialId": req.MaterialID,
			"status":     models.BatchStatusAVAILABLE,
		})
		if err != nil {
			utils.HandleError(c, err)
			return
		}

		var batches []models.InventoryBatch
		if err := cursor.All(ctx, &batches); err != nil {
			utils.HandleError(c, err)
			return
		}

		plan, err := service.PlanConsumption(batches, req.Qty)
		if err != nil {
			if errors.Is(err, service.ErrInsufficientStock) {
				utils.HandleError(c, utils.CreateConflictError(
					fmt.Sprintf("material %s: %v", req.MaterialID, err)))
				return
			}
			utils.HandleError(c, err)
			return
		}

		for _, d := range plan {
			lines = append(lines, models.ConsumptionLine{
				MaterialID: req.MaterialID,
				BatchID:    d.BatchID,
				LotCode:    d.LotCode,
				Qty:        d.Qty,
			})
		}
	}

	now := time.Now()
	runID := primitive.NewObjectID()

	// Segunda pasada: aplicar los descuentos y registrar los movimientos.
	// Si un lote cambia entre el plan y la aplicacion se revierten los
	// descuentos ya hechos: o se consume todo o no se consume nada.
	recordsCollection := repository.Collection(repository.InventoryRecordsCollection)

	applyLine := func(line models.ConsumptionLine) error {
		batchObjID, err := primitive.ObjectIDFromHex(line.BatchID)
		if err != nil {
			return err
		}

		result := batchesCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": batchObjID, "qtyRemain": bson.M{"$gte": line.Qty}},
			bson.M{
				"$inc": bson.M{"qtyRemain": -line.Qty},
				"$set": bson.M{"updatedAt": now},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var updated models.InventoryBatch
		if err := result.Decode(&updated); err != nil {
			// El lote cambio entre el plan y la aplicacion
			return utils.CreateConflictError(
				"el stock cambio durante la operacion, reintente la orden")
		}

		if updated.QtyRemain <= 0 {
			_, _ = batchesCollection.UpdateOne(
				ctx,
				bson.M{"_id": batchObjID},
				bson.M{"$set": bson.M{"status": models.BatchStatusDEPLETED}},
			)
		}

		record := models.InventoryRecord{
			MaterialID:    line.MaterialID,
			BatchID:       line.BatchID,
			LotCode:       line.LotCode,
			OperationType: models.InventoryOpCONSUMPTION,
			Qty:           line.Qty,
			Reference:     runID.Hex(),
			OperatorID:    user.ID,
			OperatorName:  user.Name,
			OperationTime: now,
		}
		if _, err := recordsCollection.InsertOne(ctx, record); err != nil {
			utils.LogError(err, map[string]interface{}{
				"runId":   runID.Hex(),
				"batchId": line.BatchID,
			}, "error guardando movimiento de consumo")
		}
		return nil
	}

	revertLine := func(line models.ConsumptionLine) {
		batchObjID, err := primitive.ObjectIDFromHex(line.BatchID)
		if err != nil {
			return
		}

		if _, err := batchesCollection.UpdateOne(
			ctx,
			bson.M{"_id": batchObjID},
			bson.M{
				"$inc": bson.M{"qtyRemain": line.Qty},
				"$set": bson.M{"status": models.BatchStatusAVAILABLE, "updatedAt": now},
			},
		); err != nil {
			utils.LogError(err, map[string]interface{}{
				"runId":   runID.Hex(),
				"batchId": line.BatchID,
			}, "error revirtiendo descuento de lote")
		}

		if _, err := recordsCollection.DeleteOne(ctx, bson.M{
			"reference":     runID.Hex(),
			"batchId":       line.BatchID,
			"operationType": models.InventoryOpCONSUMPTION,
		}); err != nil {
			utils.LogError(err, map[string]interface{}{
				"runId":   runID.Hex(),
				"batchId": line.BatchID,
			}, "error eliminando movimiento de consumo revertido")
		}
	}

	if err := service.ApplyDeductions(lines, applyLine, revertLine); err != nil {
		utils.HandleError(c, err)
		return
	}

	// Lote de salida de producto terminado.
	outputLot := fmt.Sprintf("SB-%s-%s", now.Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))

	outputBatch := models.InventoryBatch{
		MaterialID: input.ProductID,
		LotCode:    outputLot,
		QtyInitial: input.OutputQty,
		QtyRemain:  input.OutputQty,
		Status:     models.BatchStatusAVAILABLE,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	outputResult, err := batchesCollection.InsertOne(ctx, outputBatch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	outputBatchID := outputResult.InsertedID.(primitive.ObjectID)

	outputRecord := models.InventoryRecord{
		MaterialID:    input.ProductID,
		BatchID:       outputBatchID.Hex(),
		LotCode:       outputLot,
		OperationType: models.InventoryOpPRODUCTION,
		Qty:           input.OutputQty,
		Reference:     runID.Hex(),
		OperatorID:    user.ID,
		OperatorName:  user.Name,
		OperationTime: now,
	}
	if _, err := recordsCollection.InsertOne(ctx, outputRecord); err != nil {
		utils.LogError(err, map[string]interface{}{
			"runId": runID.Hex(),
		}, "error guardando movimiento de produccion")
	}

	run := models.ProductionRun{
		ID:            runID,
		ProductID:     input.ProductID,
		ProductName:   product.Name,
		OutputQty:     input.OutputQty,
		OutputBatchID: outputBatchID.Hex(),
		OutputLotCode: outputLot,
		Status:        models.ProductionRunEnCurso,
		Consumptions:  lines,
		Notes:         input.Notes,
		CreatedBy:     user.ID,
		CreatedByName: user.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := repository.Collection(repository.ProductionRunsCollection).InsertOne(ctx, run); err != nil {
		utils.HandleError(c, err)
		return
	}

	middleware.CountProductionRun(string(run.Status))

	utils.LogInfo(map[string]interface{}{
		"runId":     runID.Hex(),
		"product":   product.Name,
		"outputQty": input.OutputQty,
		"lotCode":   outputLot,
		"lines":     len(lines),
	}, "orden de produccion creada")

	utils.SuccessResponse(c, run, "orden de produccion creada", http.StatusCreated)
}

// GetProductionRuns lista ordenes de produccion.
func GetProductionRuns(c *gin.Context) {
	ctx := context.Background()

	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if productID := c.Query("productId"); productID != "" {
		query["productId"] = productID
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.ProductionRunsCollection).Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var runs []models.ProductionRun
	if err := cursor.All(ctx, &runs); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, runs, "")
}

// GetProductionRun devuelve una orden de produccion.
func GetProductionRun(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()

	var run models.ProductionRun
	err = repository.Collection(repository.ProductionRunsCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&run)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("orden de produccion"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, run, "")
}

// CloseProductionRun marca una orden en curso como finalizada.
func CloseProductionRun(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()
	now := time.Now()

	result, err := repository.Collection(repository.ProductionRunsCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID, "status": models.ProductionRunEnCurso},
		bson.M{"$set": bson.M{
			"status":     models.ProductionRunFinalizada,
			"finishedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateConflictError("la orden no esta en curso"))
		return
	}

	middleware.CountProductionRun(string(models.ProductionRunFinalizada))

	utils.SuccessResponse(c, nil, "orden finalizada")
}
