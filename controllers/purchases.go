package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// CreatePurchase registra una compra a proveedor en estado pedido.
func CreatePurchase(c *gin.Context) {
	var input models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de compra no validos", http.StatusBadRequest)
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

	count, err := repository.Collection(repository.MaterialsCollection).
		CountDocuments(ctx, bson.M{"_id": matID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("material"))
		return
	}

	now := time.Now()
	purchase := models.Purchase{
		Supplier:   input.Supplier,
		MaterialID: input.MaterialID,
		Qty:        input.Qty,
		UnitCost:   input.UnitCost,
		TotalCost:  input.Qty * input.UnitCost,
		InvoiceRef: input.InvoiceRef,
		Status:     models.PurchaseStatusPedido,
		CreatedBy:  user.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := repository.Collection(repository.PurchasesCollection).InsertOne(ctx, purchase)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	purchase.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, purchase, "compra registrada", http.StatusCreated)
}

// GetPurchases lista compras con filtros.
func GetPurchases(c *gin.Context) {
	ctx := context.Background()

	query := bson.M{}
	if supplier := c.Query("supplier"); supplier != "" {
		query["supplier"] = bson.M{"$regex": supplier, "$options": "i"}
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if materialID := c.Query("materialId"); materialID != "" {
		query["materialId"] = materialID
	}

	dateQuery := bson.M{}
	if start := c.Query("startDate"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			dateQuery["$gte"] = t
		}
	}
	if end := c.Query("endDate"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			dateQuery["$lt"] = t.AddDate(0, 0, 1)
		}
	}
	if len(dateQuery) > 0 {
		query["createdAt"] = dateQuery
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.PurchasesCollection).Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, purchases, "")
}

// ReceivePurchase marca una compra como recibida y genera su lote de
// inventario.
func ReceivePurchase(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := context.Background()
	purchasesCollection := repository.Collection(repository.PurchasesCollection)

	var purchase models.Purchase
	if err := purchasesCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&purchase); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("compra"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if purchase.Status != models.PurchaseStatusPedido {
		utils.HandleError(c, utils.CreateConflictError("la compra no esta pendiente de recepcion"))
		return
	}

	now := time.Now()
	batch, err := insertBatch(ctx, models.CreateBatchRequest{
		MaterialID: purchase.MaterialID,
		Qty:        purchase.Qty,
		UnitCost:   purchase.UnitCost,
		ReceivedAt: now,
	}, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	_, err = purchasesCollection.UpdateOne(
		ctx,
		bson.M{"_id": objID, "status": models.PurchaseStatusPedido},
		bson.M{"$set": bson.M{
			"status":     models.PurchaseStatusRecibido,
			"batchId":    batch.ID.Hex(),
			"receivedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"purchaseId": objID.Hex(),
		"batchId":    batch.ID.Hex(),
		"lotCode":    batch.LotCode,
	}, "compra recibida")

	utils.SuccessResponse(c, gin.H{"purchaseId": objID.Hex(), "batch": batch}, "compra recibida")
}

// CancelPurchase cancela una compra pendiente.
func CancelPurchase(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()
	result, err := repository.Collection(repository.PurchasesCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID, "status": models.PurchaseStatusPedido},
		bson.M{"$set": bson.M{
			"status":    models.PurchaseStatusCancelado,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateConflictError("la compra no esta pendiente"))
		return
	}

	utils.SuccessResponse(c, nil, "compra cancelada")
}
