package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseStatus estado de una compra a proveedor.
type PurchaseStatus string

const (
	PurchaseStatusPedido    PurchaseStatus = "pedido"
	PurchaseStatusRecibido  PurchaseStatus = "recibido"
	PurchaseStatusCancelado PurchaseStatus = "cancelado"
)

// Purchase compra de material a proveedor. Al marcarse recibida genera el
// lote de inventario correspondiente.
type Purchase struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Supplier   string             `bson:"supplier" json:"supplier"`
	MaterialID string             `bson:"materialId" json:"materialId"`
	Qty        float64            `bson:"qty" json:"qty"`
	UnitCost   float64            `bson:"unitCost" json:"unitCost"`
	TotalCost  float64            `bson:"totalCost" json:"totalCost"`
	InvoiceRef string             `bson:"invoiceRef,omitempty" json:"invoiceRef,omitempty"`
	Status     PurchaseStatus     `bson:"status" json:"status"`
	BatchID    string             `bson:"batchId,omitempty" json:"batchId,omitempty"`
	CreatedBy  string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	ReceivedAt time.Time          `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreatePurchaseRequest alta de compra.
type CreatePurchaseRequest struct {
	Supplier   string  `json:"supplier" binding:"required,min=2"`
	MaterialID string  `json:"materialId" binding:"required"`
	Qty        float64 `json:"qty" binding:"required,gt=0"`
	UnitCost   float64 `json:"unitCost" binding:"required,gte=0"`
	InvoiceRef string  `json:"invoiceRef"`
}
