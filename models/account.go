package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountType clasificacion comercial de la cuenta.
type AccountType string

const (
	AccountTypeHORECA      AccountType = "horeca"
	AccountTypeDISTRIBUTOR AccountType = "distribuidor"
	AccountTypeRETAIL      AccountType = "retail"
	AccountTypeONLINE      AccountType = "online"
	AccountTypeOTHER       AccountType = "otro"
)

// Potential tier asignado por el comercial.
type Potential string

const (
	PotentialLOW    Potential = "bajo"
	PotentialMEDIUM Potential = "medio"
	PotentialHIGH   Potential = "alto"
)

// AccountStatus estado derivado del ciclo de vida de la cuenta.
// Never stored: recomputed on read from the interaction history.
type AccountStatus string

const (
	AccountStatusPENDIENTE   AccountStatus = "Pendiente"
	AccountStatusPROGRAMADA  AccountStatus = "Programada"
	AccountStatusSEGUIMIENTO AccountStatus = "Seguimiento"
	AccountStatusACTIVO      AccountStatus = "Activo"
	AccountStatusREPETICION  AccountStatus = "Repetición"
	AccountStatusFALLIDO     AccountStatus = "Fallido"
	AccountStatusINACTIVO    AccountStatus = "Inactivo"
)

// Account cuenta de cliente o prospecto.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	LegalName string             `bson:"legalName,omitempty" json:"legalName,omitempty"`
	CIF       string             `bson:"cif,omitempty" json:"cif,omitempty"`
	Type      AccountType        `bson:"type" json:"type"`
	Potential Potential          `bson:"potential" json:"potential"`

	// Contacto
	ContactPerson string `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	ContactPhone  string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail  string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	Address       string `bson:"address,omitempty" json:"address,omitempty"`
	City          string `bson:"city,omitempty" json:"city,omitempty"`

	// Comercial responsable
	OwnerID   string `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	OwnerName string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`

	LastInteractionAt time.Time `bson:"lastInteractionAt,omitempty" json:"lastInteractionAt,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AccountCreateRequest alta de cuenta.
type AccountCreateRequest struct {
	Name          string      `json:"name" binding:"required,min=2"`
	LegalName     string      `json:"legalName"`
	CIF           string      `json:"cif"`
	Type          AccountType `json:"type" binding:"required"`
	Potential     Potential   `json:"potential" binding:"required"`
	ContactPerson string      `json:"contactPerson"`
	ContactPhone  string      `json:"contactPhone"`
	ContactEmail  string      `json:"contactEmail"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	OwnerID       string      `json:"ownerId"`
}

// AccountUpdateRequest modificacion parcial de cuenta.
type AccountUpdateRequest struct {
	Name          string      `json:"name" binding:"omitempty,min=2"`
	LegalName     string      `json:"legalName"`
	CIF           string      `json:"cif"`
	Type          AccountType `json:"type"`
	Potential     Potential   `json:"potential"`
	ContactPerson string      `json:"contactPerson"`
	ContactPhone  string      `json:"contactPhone"`
	ContactEmail  string      `json:"contactEmail"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	OwnerID       string      `json:"ownerId"`
}
