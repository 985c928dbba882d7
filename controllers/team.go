package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// GetTeamMembers lista los miembros del equipo.
func GetTeamMembers(c *gin.Context) {
	ctx := context.Background()
	collection := repository.Collection(repository.TeamMembersCollection)

	query := bson.M{}
	if role := c.Query("role"); role != "" {
		query["role"] = role
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, members, "")
}

// GetTeamMember devuelve un miembro del equipo por id.
func GetTeamMember(c *gin.Context) {
	member, err := repository.FindTeamMemberByID(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("miembro del equipo"))
		return
	}

	utils.SuccessResponse(c, member, "")
}

// CreateTeamMember alta directa de un miembro del equipo. Solo ADMIN.
func CreateTeamMember(c *gin.Context) {
	var input models.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos no validos", http.StatusBadRequest)
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
		AvatarUrl: input.AvatarUrl,
		Role:      input.Role,
		Status:    models.UserStatusAPPROVED,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, member)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	member.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, member, "miembro del equipo creado", http.StatusCreated)
}

// UpdateTeamMember modifica un miembro del equipo. Solo ADMIN.
func UpdateTeamMember(c *gin.Context) {
	var input models.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "datos no validos", http.StatusBadRequest)
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
	}
	if input.Password != "" {
		update["password"] = utils.HashPassword(input.Password)
	}
	if input.AvatarUrl != "" {
		update["avatarUrl"] = input.AvatarUrl
	}
	if input.Role != "" {
		update["role"] = input.Role
	}

	ctx := context.Background()
	result, err := repository.Collection(repository.TeamMembersCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("miembro del equipo"))
		return
	}

	utils.SuccessResponse(c, nil, "miembro del equipo actualizado")
}
