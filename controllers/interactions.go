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

	"github.com/santabrisa/crm-server/middleware"
	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

// GetAccountInteractions lista las interacciones de una cuenta, de mas
// reciente a mas antigua.
func GetAccountInteractions(c *gin.Context) {
	accountID := c.Param("accountId")
	if accountID == "" {
		utils.ErrorResponse(c, "id de cuenta obligatorio", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	var account models.Account
	err = repository.Collection(repository.AccountsCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("cuenta"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.InteractionsCollection).
		Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var interactions []models.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, interactions, "")
}

// CreateInteraction registra una interaccion o pedido. Puede llegar con
// accountId o solo con clientName (datos importados).
func CreateInteraction(c *gin.Context) {
	var input models.CreateInteractionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de interaccion no validos", http.StatusBadRequest)
		return
	}

	if input.AccountID == "" && input.ClientName == "" {
		utils.ErrorResponse(c, "se requiere accountId o clientName", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := context.Background()
	now := time.Now()

	// Con accountId la cuenta debe existir; ademas se actualiza su marca
	// de ultima interaccion.
	if input.AccountID != "" {
		objID, err := primitive.ObjectIDFromHex(input.AccountID)
		if err != nil {
			utils.HandleError(c, utils.CreateBadRequestError("accountId no valido"))
			return
		}

		accountsCollection := repository.Collection(repository.AccountsCollection)
		var account models.Account
		if err := accountsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&account); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.HandleError(c, utils.CreateNotFoundError("cuenta"))
				return
			}
			utils.HandleError(c, err)
			return
		}

		_, err = accountsCollection.UpdateOne(
			ctx,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"lastInteractionAt": now, "updatedAt": now}},
		)
		if err != nil {
			// No bloquea el alta de la interaccion
			utils.LogError(err, map[string]interface{}{
				"accountId": input.AccountID,
			}, "error actualizando lastInteractionAt")
		}
	}

	interaction := models.Interaction{
		AccountID:      input.AccountID,
		ClientName:     input.ClientName,
		ClientNameKey:  service.NormalizeName(input.ClientName),
		Status:         input.Status,
		Value:          input.Value,
		VisitDate:      input.VisitDate,
		NextActionDate: input.NextActionDate,
		SalesRepID:     user.ID,
		SalesRepName:   user.Name,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := repository.Collection(repository.InteractionsCollection).InsertOne(ctx, interaction)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	interaction.ID = result.InsertedID.(primitive.ObjectID)

	if interaction.Status.IsValidSale() {
		middleware.CountOrderRecorded()
	}

	utils.LogInfo(map[string]interface{}{
		"interactionId": interaction.ID.Hex(),
		"accountId":     interaction.AccountID,
		"status":        interaction.Status,
	}, "interaccion registrada")

	utils.SuccessResponse(c, interaction, "interaccion registrada", http.StatusCreated)
}

// UpdateInteraction modifica una interaccion. Los cambios de estado se
// validan contra la tabla de transiciones del pipeline.
func UpdateInteraction(c *gin.Context) {
	var input models.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de interaccion no validos", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.InteractionsCollection)

	var current models.Interaction
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&current); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("interaccion"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	update := bson.M{"updatedAt": time.Now()}

	if input.Status != "" && input.Status != current.Status {
		if !models.ValidTransition(current.Status, input.Status) {
			utils.HandleError(c, utils.CreateConflictError(
				"transicion de estado no permitida: "+string(current.Status)+" -> "+string(input.Status)))
			return
		}
		update["status"] = input.Status
		if input.Status.IsValidSale() && !current.Status.IsValidSale() {
			middleware.CountOrderRecorded()
		}
	}
	if input.Value != nil {
		update["value"] = *input.Value
	}
	if !input.VisitDate.IsZero() {
		update["visitDate"] = input.VisitDate
	}
	if !input.NextActionDate.IsZero() {
		update["nextActionDate"] = input.NextActionDate
	}
	if input.Notes != "" {
		update["notes"] = input.Notes
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "interaccion actualizada")
}

// DeleteInteraction elimina una interaccion. Solo el creador o un ADMIN.
func DeleteInteraction(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.InteractionsCollection)

	var interaction models.Interaction
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&interaction); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("interaccion"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if interaction.SalesRepID != user.ID && user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	result, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("interaccion"))
		return
	}

	utils.SuccessResponse(c, nil, "interaccion eliminada")
}
