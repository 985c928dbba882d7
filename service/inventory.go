package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/santabrisa/crm-server/models"
)

// ErrInsufficientStock no hay stock suficiente entre los lotes
// disponibles para cubrir la cantidad pedida.
var ErrInsufficientStock = errors.New("stock insuficiente")

// BatchDeduction cantidad a descontar de un lote concreto.
type BatchDeduction struct {
	BatchID string
	LotCode string
	Qty     float64
}

// AvailableStock stock total disponible entre los lotes dados.
func AvailableStock(batches []models.InventoryBatch) float64 {
	var total float64
	for _, b := range batches {
		if b.Status == models.BatchStatusAVAILABLE && b.QtyRemain > 0 {
			total += b.QtyRemain
		}
	}
	return total
}

// PlanConsumption reparte una cantidad requerida entre lotes disponibles
// en orden FIFO por fecha de recepcion. Funcion pura: no modifica los
// lotes, solo devuelve el plan de descuento. Si el stock no alcanza
// devuelve ErrInsufficientStock y ningun plan parcial.
func PlanConsumption(batches []models.InventoryBatch, required float64) ([]BatchDeduction, error) {
	if required <= 0 {
		return nil, fmt.Errorf("cantidad requerida no valida: %v", required)
	}

	available := make([]models.InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b.Status == models.BatchStatusAVAILABLE && b.QtyRemain > 0 {
			available = append(available, b)
		}
	}

	// FIFO: recepcion mas antigua primero, las fechas no validas al final.
	sort.SliceStable(available, func(i, j int) bool {
		di, dj := available[i].ReceivedAt, available[j].ReceivedAt
		switch {
		case !di.IsZero() && !dj.IsZero():
			return di.Before(dj)
		case !di.IsZero():
			return true
		default:
			return false
		}
	})

	var plan []BatchDeduction
	remaining := required
	for _, b := range available {
		if remaining <= 0 {
			break
		}
		take := b.QtyRemain
		if take > remaining {
			take = remaining
		}
		plan = append(plan, BatchDeduction{
			BatchID: b.ID.Hex(),
			LotCode: b.LotCode,
			Qty:     take,
		})
		remaining -= take
	}

	if remaining > 0 {
		return nil, fmt.Errorf("%w: faltan %.2f (disponible %.2f de %.2f)",
			ErrInsufficientStock, remaining, required-remaining, required)
	}

	return plan, nil
}

// ApplyDeductions aplica las lineas de consumo en orden. Si una falla,
// revierte las ya aplicadas en orden inverso antes de devolver el error,
// de modo que un fallo a mitad no deje descuentos parciales.
func ApplyDeductions(lines []models.ConsumptionLine, apply func(models.ConsumptionLine) error, revert func(models.ConsumptionLine)) error {
	for i, line := range lines {
		if err := apply(line); err != nil {
			for j := i - 1; j >= 0; j-- {
				revert(lines[j])
			}
			return err
		}
	}
	return nil
}
