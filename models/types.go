package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates team member roles.
type UserRole string

const (
	UserRoleADMIN     UserRole = "ADMIN"     // full access
	UserRoleSALES_REP UserRole = "SALES_REP" // comerciales
	UserRoleOPS       UserRole = "OPS"       // produccion y almacen
)

// UserStatus enumerates account approval states.
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// TeamMember is a credentialed user of the CRM.
type TeamMember struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"` // never returned
	AvatarUrl       string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Auth request/response payloads.
type (
	// LoginRequest login payload
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse login result
	LoginResponse struct {
		Token string     `json:"token"`
		User  TeamMember `json:"user"`
	}

	// RegisterRequest self-service registration, pending approval
	RegisterRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// CreateTeamMemberRequest admin-created member, approved immediately
	CreateTeamMemberRequest struct {
		Name      string   `json:"name" binding:"required,min=2"`
		Email     string   `json:"email" binding:"required,email"`
		Password  string   `json:"password" binding:"required,min=6"`
		AvatarUrl string   `json:"avatarUrl"`
		Role      UserRole `json:"role" binding:"required"`
	}

	// UpdateTeamMemberRequest partial update
	UpdateTeamMemberRequest struct {
		Name      string   `json:"name" binding:"omitempty,min=2"`
		Password  string   `json:"password" binding:"omitempty,min=6"`
		AvatarUrl string   `json:"avatarUrl"`
		Role      UserRole `json:"role" binding:"omitempty"`
	}

	// ApprovalRequest approve or reject a pending member
	ApprovalRequest struct {
		ID       string `json:"id" binding:"required"`
		Approved *bool  `json:"approved" binding:"required"`
		Reason   string `json:"reason"`
	}
)
