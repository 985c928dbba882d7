package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionStatus estado de una interaccion o pedido.
type InteractionStatus string

const (
	// Tareas abiertas
	InteractionStatusPROGRAMADA  InteractionStatus = "Programada"
	InteractionStatusSEGUIMIENTO InteractionStatus = "Seguimiento"

	// Cierres sin venta
	InteractionStatusCOMPLETADO InteractionStatus = "Completado"
	InteractionStatusFALLIDO    InteractionStatus = "Fallido"

	// Pipeline de pedido
	InteractionStatusCONFIRMADO InteractionStatus = "Confirmado"
	InteractionStatusPROCESANDO InteractionStatus = "Procesando"
	InteractionStatusENVIADO    InteractionStatus = "Enviado"
	InteractionStatusENTREGADO  InteractionStatus = "Entregado"
	InteractionStatusFACTURADO  InteractionStatus = "Facturado"
	InteractionStatusPAGADO     InteractionStatus = "Pagado"
	InteractionStatusCANCELADO  InteractionStatus = "Cancelado"
)

// validSaleStatuses estados que cuentan como venta a efectos de cartera.
var validSaleStatuses = map[InteractionStatus]bool{
	InteractionStatusCONFIRMADO: true,
	InteractionStatusPROCESANDO: true,
	InteractionStatusENVIADO:    true,
	InteractionStatusENTREGADO:  true,
	InteractionStatusFACTURADO:  true,
	InteractionStatusPAGADO:     true,
}

// IsValidSale reports whether the status counts as a completed or
// in-progress sale.
func (s InteractionStatus) IsValidSale() bool {
	return validSaleStatuses[s]
}

// IsOpenTask reports whether the status represents a pending task.
func (s InteractionStatus) IsOpenTask() bool {
	return s == InteractionStatusPROGRAMADA || s == InteractionStatusSEGUIMIENTO
}

// IsTerminal reports whether the status admits no further transition.
func (s InteractionStatus) IsTerminal() bool {
	return s == InteractionStatusPAGADO || s == InteractionStatusCANCELADO
}

// transitions allowed successor states per status. The original system
// accepted any transition; the table below is an intentional hardening of
// the order pipeline (forward along the pipeline, or out to a closing
// state).
var transitions = map[InteractionStatus][]InteractionStatus{
	InteractionStatusPROGRAMADA: {
		InteractionStatusSEGUIMIENTO, InteractionStatusCOMPLETADO,
		InteractionStatusFALLIDO, InteractionStatusCONFIRMADO,
		InteractionStatusCANCELADO,
	},
	InteractionStatusSEGUIMIENTO: {
		InteractionStatusPROGRAMADA, InteractionStatusCOMPLETADO,
		InteractionStatusFALLIDO, InteractionStatusCONFIRMADO,
		InteractionStatusCANCELADO,
	},
	InteractionStatusCOMPLETADO: {
		InteractionStatusSEGUIMIENTO, InteractionStatusCONFIRMADO,
	},
	InteractionStatusFALLIDO: {
		InteractionStatusSEGUIMIENTO, InteractionStatusPROGRAMADA,
	},
	InteractionStatusCONFIRMADO: {
		InteractionStatusPROCESANDO, InteractionStatusCANCELADO,
	},
	InteractionStatusPROCESANDO: {
		InteractionStatusENVIADO, InteractionStatusCANCELADO,
	},
	InteractionStatusENVIADO: {
		InteractionStatusENTREGADO, InteractionStatusCANCELADO,
	},
	InteractionStatusENTREGADO: {
		InteractionStatusFACTURADO,
	},
	InteractionStatusFACTURADO: {
		InteractionStatusPAGADO,
	},
	// Pagado y Cancelado son terminales.
}

// ValidTransition reports whether moving from one status to another is
// allowed. Setting the same status again is a no-op and always allowed.
func ValidTransition(from, to InteractionStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Interaction un contacto registrado con una cuenta: visita, llamada,
// tarea programada o pedido.
type Interaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AccountID string             `bson:"accountId,omitempty" json:"accountId,omitempty"`
	// ClientName legacy: interacciones antiguas referencian la cuenta por
	// nombre libre en vez de por id. ClientNameKey guarda el nombre
	// normalizado para poder filtrar por el en la base de datos.
	ClientName    string            `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientNameKey string            `bson:"clientNameKey,omitempty" json:"-"`
	Status     InteractionStatus `bson:"status" json:"status"`
	Value      float64           `bson:"value,omitempty" json:"value,omitempty"`

	VisitDate      time.Time `bson:"visitDate,omitempty" json:"visitDate,omitempty"`
	NextActionDate time.Time `bson:"nextActionDate,omitempty" json:"nextActionDate,omitempty"`

	SalesRepID   string `bson:"salesRepId,omitempty" json:"salesRepId,omitempty"`
	SalesRepName string `bson:"salesRepName,omitempty" json:"salesRepName,omitempty"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateInteractionRequest alta de interaccion.
type CreateInteractionRequest struct {
	AccountID      string            `json:"accountId"`
	ClientName     string            `json:"clientName"`
	Status         InteractionStatus `json:"status" binding:"required"`
	Value          float64           `json:"value"`
	VisitDate      time.Time         `json:"visitDate"`
	NextActionDate time.Time         `json:"nextActionDate"`
	Notes          string            `json:"notes"`
}

// UpdateInteractionRequest cambio de estado o datos de una interaccion.
type UpdateInteractionRequest struct {
	Status         InteractionStatus `json:"status"`
	Value          *float64          `json:"value"`
	VisitDate      time.Time         `json:"visitDate"`
	NextActionDate time.Time         `json:"nextActionDate"`
	Notes          string            `json:"notes"`
}
