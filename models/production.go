package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductionRunStatus estado de una orden de produccion.
type ProductionRunStatus string

const (
	ProductionRunEnCurso    ProductionRunStatus = "en_curso"
	ProductionRunFinalizada ProductionRunStatus = "finalizada"
	ProductionRunCancelada  ProductionRunStatus = "cancelada"
)

// ConsumptionLine consumo de un lote concreto dentro de una orden.
type ConsumptionLine struct {
	MaterialID string  `bson:"materialId" json:"materialId"`
	BatchID    string  `bson:"batchId" json:"batchId"`
	LotCode    string  `bson:"lotCode" json:"lotCode"`
	Qty        float64 `bson:"qty" json:"qty"`
}

// ProductionRun orden de produccion: consume lotes de materiales y genera
// un lote de producto terminado.
type ProductionRun struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string              `bson:"productId" json:"productId"` // material de categoria producto_terminado
	ProductName   string              `bson:"productName,omitempty" json:"productName,omitempty"`
	OutputQty     float64             `bson:"outputQty" json:"outputQty"`
	OutputBatchID string              `bson:"outputBatchId,omitempty" json:"outputBatchId,omitempty"`
	OutputLotCode string              `bson:"outputLotCode,omitempty" json:"outputLotCode,omitempty"`
	Status        ProductionRunStatus `bson:"status" json:"status"`
	Consumptions  []ConsumptionLine   `bson:"consumptions" json:"consumptions"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     string              `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedByName string              `bson:"createdByName,omitempty" json:"createdByName,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
	FinishedAt    time.Time           `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
}

// MaterialRequirement material y cantidad que requiere una orden.
type MaterialRequirement struct {
	MaterialID string  `json:"materialId" binding:"required"`
	Qty        float64 `json:"qty" binding:"required,gt=0"`
}

// CreateProductionRunRequest alta de orden de produccion.
type CreateProductionRunRequest struct {
	ProductID    string                `json:"productId" binding:"required"`
	OutputQty    float64               `json:"outputQty" binding:"required,gt=0"`
	Requirements []MaterialRequirement `json:"requirements" binding:"required,min=1,dive"`
	Notes        string                `json:"notes"`
}
