package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

// GetAccounts lista cuentas con filtros y paginacion.
func GetAccounts(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}

	query := bson.M{}
	if accType := c.Query("type"); accType != "" {
		query["type"] = accType
	}
	if potential := c.Query("potential"); potential != "" {
		query["potential"] = potential
	}
	if ownerID := c.Query("ownerId"); ownerID != "" {
		query["ownerId"] = ownerID
	}
	if name := c.Query("name"); name != "" {
		query["name"] = bson.M{"$regex": name, "$options": "i"}
	}

	ctx := context.Background()
	collection := repository.Collection(repository.AccountsCollection)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	opts := options.Find().
		SetSort(bson.M{"name": 1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, accounts, total, page, limit)
}

// accountInteractionsFilter filtro de interacciones candidatas para una
// cuenta: por accountId, por nombre normalizado (clientNameKey), y para
// interacciones importadas antes de que existiera la clave, por nombre
// exacto sin distinguir mayusculas. El enriquecedor vuelve a validar
// cada candidata, el filtro solo acota la consulta.
func accountInteractionsFilter(accountID, name string) bson.M {
	or := []bson.M{
		{"accountId": accountID},
	}
	if key := service.NormalizeName(name); key != "" {
		or = append(or, bson.M{"clientNameKey": key})
	}
	if name != "" {
		legacyName := bson.M{"$regex": "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", "$options": "i"}
		or = append(or,
			bson.M{"accountId": "", "clientNameKey": bson.M{"$in": []interface{}{nil, ""}}, "clientName": legacyName},
			bson.M{"accountId": bson.M{"$exists": false}, "clientNameKey": bson.M{"$in": []interface{}{nil, ""}}, "clientName": legacyName},
		)
	}
	return bson.M{"$or": or}
}

// GetAccount devuelve una cuenta enriquecida con estado, puntuacion e
// historial de interacciones.
func GetAccount(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()

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

	cursor, err := repository.Collection(repository.InteractionsCollection).
		Find(ctx, accountInteractionsFilter(account.ID.Hex(), account.Name))
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

	var team []models.TeamMember
	teamCursor, err := repository.Collection(repository.TeamMembersCollection).Find(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer teamCursor.Close(ctx)
	if err := teamCursor.All(ctx, &team); err != nil {
		utils.HandleError(c, err)
		return
	}

	enriched := service.EnrichAccounts(
		[]models.Account{account},
		interactions,
		team,
		time.Now(),
		service.DefaultCarteraConfig(),
	)

	utils.SuccessResponse(c, enriched[0], "")
}

// CreateAccount alta de cuenta.
func CreateAccount(c *gin.Context) {
	var input models.AccountCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de cuenta no validos", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.AccountsCollection)

	// Dos cuentas con el mismo nombre normalizado son casi siempre un
	// duplicado de alta manual.
	count, err := collection.CountDocuments(ctx, bson.M{"nameKey": service.NormalizeName(input.Name)})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "ya existe una cuenta con ese nombre", http.StatusConflict)
		return
	}

	ownerID := input.OwnerID
	ownerName := ""
	if ownerID == "" {
		ownerID = user.ID
		ownerName = user.Name
	} else if owner, err := repository.FindTeamMemberByID(ownerID); err == nil {
		ownerName = owner.Name
	}

	now := time.Now()
	account := models.Account{
		Name:          input.Name,
		LegalName:     input.LegalName,
		CIF:           input.CIF,
		Type:          input.Type,
		Potential:     input.Potential,
		ContactPerson: input.ContactPerson,
		ContactPhone:  input.ContactPhone,
		ContactEmail:  input.ContactEmail,
		Address:       input.Address,
		City:          input.City,
		OwnerID:       ownerID,
		OwnerName:     ownerName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	doc := bson.M{
		"name": account.Name, "legalName": account.LegalName, "cif": account.CIF,
		"type": account.Type, "potential": account.Potential,
		"contactPerson": account.ContactPerson, "contactPhone": account.ContactPhone,
		"contactEmail": account.ContactEmail, "address": account.Address, "city": account.City,
		"ownerId": account.OwnerID, "ownerName": account.OwnerName,
		"nameKey":   service.NormalizeName(account.Name),
		"createdAt": now, "updatedAt": now,
	}

	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	account.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"accountId": account.ID.Hex(),
		"name":      account.Name,
		"owner":     ownerName,
	}, "cuenta creada")

	utils.SuccessResponse(c, account, "cuenta creada", http.StatusCreated)
}

// UpdateAccount modificacion parcial de cuenta.
func UpdateAccount(c *gin.Context) {
	var input models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de cuenta no validos", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
		update["nameKey"] = service.NormalizeName(input.Name)
	}
	if input.LegalName != "" {
		update["legalName"] = input.LegalName
	}
	if input.CIF != "" {
		update["cif"] = input.CIF
	}
	if input.Type != "" {
		update["type"] = input.Type
	}
	if input.Potential != "" {
		update["potential"] = input.Potential
	}
	if input.ContactPerson != "" {
		update["contactPerson"] = input.ContactPerson
	}
	if input.ContactPhone != "" {
		update["contactPhone"] = input.ContactPhone
	}
	if input.ContactEmail != "" {
		update["contactEmail"] = input.ContactEmail
	}
	if input.Address != "" {
		update["address"] = input.Address
	}
	if input.City != "" {
		update["city"] = input.City
	}
	if input.OwnerID != "" {
		update["ownerId"] = input.OwnerID
		if owner, err := repository.FindTeamMemberByID(input.OwnerID); err == nil {
			update["ownerName"] = owner.Name
		}
	}

	ctx := context.Background()
	result, err := repository.Collection(repository.AccountsCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("cuenta"))
		return
	}

	utils.SuccessResponse(c, nil, "cuenta actualizada")
}

// DeleteAccount elimina una cuenta. Las cuentas no se borran en el flujo
// normal: endpoint de limpieza de datos, solo ADMIN.
func DeleteAccount(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	ctx := context.Background()
	result, err := repository.Collection(repository.AccountsCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("cuenta"))
		return
	}

	utils.SuccessResponse(c, nil, "cuenta eliminada")
}
