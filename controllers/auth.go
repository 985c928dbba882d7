package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// Login autentica a un miembro del equipo y devuelve un token de sesion.
func Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de acceso no validos", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.TeamMembersCollection)

	var member models.TeamMember
	err := collection.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "credenciales incorrectas", http.StatusUnauthorized)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.VerifyPassword(input.Password, member.Password) {
		utils.ErrorResponse(c, "credenciales incorrectas", http.StatusUnauthorized)
		return
	}

	if member.Status != models.UserStatusAPPROVED {
		utils.ErrorResponse(c, "cuenta pendiente de aprobacion", http.StatusForbidden)
		return
	}

	token, err := utils.GenerateToken(member)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"email": member.Email,
		"role":  member.Role,
	}, "inicio de sesion")

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  member,
	})
}

// Register alta de un miembro del equipo pendiente de aprobacion.
func Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de registro no validos", http.StatusBadRequest)
		return
	}

	if input.Role == models.UserRoleADMIN {
		utils.ErrorResponse(c, "no se puede registrar un administrador", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	collection := repository.Collection(repository.TeamMembersCollection)

	email := strings.ToLower(input.Email)
	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "el email ya esta registrado", http.StatusConflict)
		return
	}

	now := time.Now()
	member := models.TeamMember{
		Name:      input.Name,
		Email:     email,
		Password:  utils.HashPassword(input.Password),
		Role:      input.Role,
		Status:    models.UserStatusPENDING,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, member)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	member.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, member, "registro creado, pendiente de aprobacion", http.StatusCreated)
}

// Validate comprueba el token actual y devuelve el usuario.
func Validate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	member, err := repository.FindTeamMemberByID(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "usuario no encontrado", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(c, member, "")
}

// Approve aprueba o rechaza a un miembro pendiente. Solo ADMIN.
func Approve(c *gin.Context) {
	var input models.ApprovalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos de aprobacion no validos", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("id no valido"))
		return
	}

	status := models.UserStatusAPPROVED
	if !*input.Approved {
		status = models.UserStatusREJECTED
	}

	update := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if status == models.UserStatusREJECTED && input.Reason != "" {
		update["rejectionReason"] = input.Reason
	}

	ctx := context.Background()
	result, err := repository.Collection(repository.TeamMembersCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID, "status": models.UserStatusPENDING},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("registro pendiente"))
		return
	}

	utils.SuccessResponse(c, gin.H{"status": status}, "solicitud procesada")
}
