package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/santabrisa/crm-server/models"
)

func batch(lot string, remain float64, received time.Time, status models.BatchStatus) models.InventoryBatch {
	return models.InventoryBatch{
		ID:         primitive.NewObjectID(),
		LotCode:    lot,
		QtyInitial: remain,
		QtyRemain:  remain,
		ReceivedAt: received,
		Status:     status,
	}
}

func TestAvailableStock(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L1", 10, daysAgo(30), models.BatchStatusAVAILABLE),
		batch("L2", 5, daysAgo(20), models.BatchStatusBLOCKED),
		batch("L3", 0, daysAgo(10), models.BatchStatusAVAILABLE),
		batch("L4", 7, daysAgo(5), models.BatchStatusAVAILABLE),
	}
	assert.Equal(t, 17.0, AvailableStock(batches))
}

func TestPlanConsumptionFIFO(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L-NUEVO", 50, daysAgo(2), models.BatchStatusAVAILABLE),
		batch("L-VIEJO", 10, daysAgo(30), models.BatchStatusAVAILABLE),
		batch("L-MEDIO", 20, daysAgo(15), models.BatchStatusAVAILABLE),
	}

	plan, err := PlanConsumption(batches, 35)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	// El lote mas antiguo se agota primero.
	assert.Equal(t, "L-VIEJO", plan[0].LotCode)
	assert.Equal(t, 10.0, plan[0].Qty)
	assert.Equal(t, "L-MEDIO", plan[1].LotCode)
	assert.Equal(t, 20.0, plan[1].Qty)
	assert.Equal(t, "L-NUEVO", plan[2].LotCode)
	assert.Equal(t, 5.0, plan[2].Qty)
}

func TestPlanConsumptionStopsWhenCovered(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L1", 10, daysAgo(30), models.BatchStatusAVAILABLE),
		batch("L2", 20, daysAgo(15), models.BatchStatusAVAILABLE),
		batch("L3", 50, daysAgo(2), models.BatchStatusAVAILABLE),
	}

	plan, err := PlanConsumption(batches, 25)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "L1", plan[0].LotCode)
	assert.Equal(t, 10.0, plan[0].Qty)
	assert.Equal(t, "L2", plan[1].LotCode)
	assert.Equal(t, 15.0, plan[1].Qty)
}

func TestPlanConsumptionExactFit(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L1", 10, daysAgo(30), models.BatchStatusAVAILABLE),
		batch("L2", 15, daysAgo(15), models.BatchStatusAVAILABLE),
	}

	plan, err := PlanConsumption(batches, 25)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, 15.0, plan[1].Qty)
}

func TestPlanConsumptionInsufficientStock(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L1", 10, daysAgo(30), models.BatchStatusAVAILABLE),
		batch("L2", 5, daysAgo(15), models.BatchStatusBLOCKED),
	}

	plan, err := PlanConsumption(batches, 25)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	// Sin plan parcial cuando no alcanza.
	assert.Nil(t, plan)
}

func TestPlanConsumptionInvalidQty(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L1", 10, daysAgo(30), models.BatchStatusAVAILABLE),
	}

	for _, qty := range []float64{0, -3} {
		plan, err := PlanConsumption(batches, qty)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInsufficientStock)
		assert.Nil(t, plan)
	}
}

func TestPlanConsumptionZeroDateLast(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L-SIN-FECHA", 30, time.Time{}, models.BatchStatusAVAILABLE),
		batch("L-CON-FECHA", 10, daysAgo(5), models.BatchStatusAVAILABLE),
	}

	plan, err := PlanConsumption(batches, 15)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "L-CON-FECHA", plan[0].LotCode)
	assert.Equal(t, "L-SIN-FECHA", plan[1].LotCode)
	assert.Equal(t, 5.0, plan[1].Qty)
}

func TestApplyDeductionsAllOrNothing(t *testing.T) {
	lines := []models.ConsumptionLine{
		{BatchID: "b1", LotCode: "L1", Qty: 10},
		{BatchID: "b2", LotCode: "L2", Qty: 5},
		{BatchID: "b3", LotCode: "L3", Qty: 8},
	}

	failOn := errors.New("el lote cambio")
	var applied, reverted []string

	err := ApplyDeductions(lines,
		func(line models.ConsumptionLine) error {
			if line.BatchID == "b3" {
				return failOn
			}
			applied = append(applied, line.BatchID)
			return nil
		},
		func(line models.ConsumptionLine) {
			reverted = append(reverted, line.BatchID)
		},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, failOn)
	assert.Equal(t, []string{"b1", "b2"}, applied)
	// Se revierte todo lo aplicado, en orden inverso.
	assert.Equal(t, []string{"b2", "b1"}, reverted)
}

func TestApplyDeductionsSuccessNoRevert(t *testing.T) {
	lines := []models.ConsumptionLine{
		{BatchID: "b1", Qty: 10},
		{BatchID: "b2", Qty: 5},
	}

	var applied, reverted []string

	err := ApplyDeductions(lines,
		func(line models.ConsumptionLine) error {
			applied = append(applied, line.BatchID)
			return nil
		},
		func(line models.ConsumptionLine) {
			reverted = append(reverted, line.BatchID)
		},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, applied)
	assert.Empty(t, reverted)
}

func TestApplyDeductionsFirstLineFails(t *testing.T) {
	lines := []models.ConsumptionLine{
		{BatchID: "b1", Qty: 10},
		{BatchID: "b2", Qty: 5},
	}

	var reverted []string

	err := ApplyDeductions(lines,
		func(line models.ConsumptionLine) error {
			return errors.New("sin stock")
		},
		func(line models.ConsumptionLine) {
			reverted = append(reverted, line.BatchID)
		},
	)

	require.Error(t, err)
	assert.Empty(t, reverted)
}

func TestPlanConsumptionSkipsDepleted(t *testing.T) {
	batches := []models.InventoryBatch{
		batch("L-AGOTADO", 0, daysAgo(40), models.BatchStatusDEPLETED),
		batch("L-OK", 20, daysAgo(10), models.BatchStatusAVAILABLE),
	}

	plan, err := PlanConsumption(batches, 10)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "L-OK", plan[0].LotCode)
}
