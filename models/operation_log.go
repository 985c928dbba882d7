package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApiOperationLog registro persistido de una operacion mutadora de la API.
type ApiOperationLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName     string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"`
	Method       string             `bson:"method" json:"method"`
	Path         string             `bson:"path" json:"path"`
	StatusCode   int                `bson:"statusCode" json:"statusCode"`
	DurationMs   int64              `bson:"durationMs" json:"durationMs"`
	RequestBody  string             `bson:"requestBody,omitempty" json:"requestBody,omitempty"`
	ResponseBody string             `bson:"responseBody,omitempty" json:"responseBody,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
