package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaterialCategory categoria de material.
type MaterialCategory string

const (
	MaterialCategoryRAW       MaterialCategory = "materia_prima"
	MaterialCategoryPACKAGING MaterialCategory = "embalaje"
	MaterialCategoryFINISHED  MaterialCategory = "producto_terminado"
)

// Material articulo de inventario: materia prima, embalaje o producto
// terminado.
type Material struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	SKU       string             `bson:"sku" json:"sku"`
	Category  MaterialCategory   `bson:"category" json:"category"`
	Unit      string             `bson:"unit" json:"unit"` // ud, l, kg
	MinStock  float64            `bson:"minStock,omitempty" json:"minStock,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BatchStatus estado de un lote.
type BatchStatus string

const (
	BatchStatusAVAILABLE BatchStatus = "disponible"
	BatchStatusDEPLETED  BatchStatus = "agotado"
	BatchStatusBLOCKED   BatchStatus = "bloqueado"
)

// InventoryBatch lote de inventario con cantidad inicial y restante.
type InventoryBatch struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MaterialID string             `bson:"materialId" json:"materialId"`
	LotCode    string             `bson:"lotCode" json:"lotCode"`
	QtyInitial float64            `bson:"qtyInitial" json:"qtyInitial"`
	QtyRemain  float64            `bson:"qtyRemain" json:"qtyRemain"`
	UnitCost   float64            `bson:"unitCost,omitempty" json:"unitCost,omitempty"`
	Status     BatchStatus        `bson:"status" json:"status"`
	PurchaseID string             `bson:"purchaseId,omitempty" json:"purchaseId,omitempty"`
	ReceivedAt time.Time          `bson:"receivedAt" json:"receivedAt"`
	ExpiryDate time.Time          `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InventoryOperationType tipo de movimiento de inventario.
type InventoryOperationType string

const (
	InventoryOpRECEIPT     InventoryOperationType = "entrada"
	InventoryOpCONSUMPTION InventoryOperationType = "consumo"
	InventoryOpADJUSTMENT  InventoryOperationType = "ajuste"
	InventoryOpPRODUCTION  InventoryOperationType = "produccion"
)

// InventoryRecord movimiento de inventario registrado para auditoria.
type InventoryRecord struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"_id,omitempty"`
	MaterialID    string                 `bson:"materialId" json:"materialId"`
	BatchID       string                 `bson:"batchId" json:"batchId"`
	LotCode       string                 `bson:"lotCode" json:"lotCode"`
	OperationType InventoryOperationType `bson:"operationType" json:"operationType"`
	Qty           float64                `bson:"qty" json:"qty"`
	Reference     string                 `bson:"reference,omitempty" json:"reference,omitempty"` // purchase or run id
	OperatorID    string                 `bson:"operatorId,omitempty" json:"operatorId,omitempty"`
	OperatorName  string                 `bson:"operatorName,omitempty" json:"operatorName,omitempty"`
	OperationTime time.Time              `bson:"operationTime" json:"operationTime"`
}

// CreateMaterialRequest alta de material.
type CreateMaterialRequest struct {
	Name     string           `json:"name" binding:"required,min=2"`
	SKU      string           `json:"sku" binding:"required"`
	Category MaterialCategory `json:"category" binding:"required"`
	Unit     string           `json:"unit" binding:"required"`
	MinStock float64          `json:"minStock"`
}

// CreateBatchRequest alta manual de lote (entrada sin compra asociada).
type CreateBatchRequest struct {
	MaterialID string    `json:"materialId" binding:"required"`
	LotCode    string    `json:"lotCode"`
	Qty        float64   `json:"qty" binding:"required,gt=0"`
	UnitCost   float64   `json:"unitCost"`
	ReceivedAt time.Time `json:"receivedAt"`
	ExpiryDate time.Time `json:"expiryDate"`
}
