package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from InteractionStatus
		to   InteractionStatus
		want bool
	}{
		{"avance del pipeline", InteractionStatusCONFIRMADO, InteractionStatusPROCESANDO, true},
		{"envio a entrega", InteractionStatusENVIADO, InteractionStatusENTREGADO, true},
		{"entrega a factura", InteractionStatusENTREGADO, InteractionStatusFACTURADO, true},
		{"factura a pago", InteractionStatusFACTURADO, InteractionStatusPAGADO, true},
		{"cancelacion en proceso", InteractionStatusPROCESANDO, InteractionStatusCANCELADO, true},
		{"tarea a pedido", InteractionStatusPROGRAMADA, InteractionStatusCONFIRMADO, true},
		{"fallido reabierto", InteractionStatusFALLIDO, InteractionStatusSEGUIMIENTO, true},

		{"sin saltos en el pipeline", InteractionStatusCONFIRMADO, InteractionStatusENTREGADO, false},
		{"sin retrocesos", InteractionStatusENVIADO, InteractionStatusCONFIRMADO, false},
		{"entregado no se cancela", InteractionStatusENTREGADO, InteractionStatusCANCELADO, false},
		{"pagado es terminal", InteractionStatusPAGADO, InteractionStatusPROGRAMADA, false},
		{"cancelado es terminal", InteractionStatusCANCELADO, InteractionStatusCONFIRMADO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTransition(tt.from, tt.to))
		})
	}
}

// Repetir el mismo estado es siempre valido, incluso en terminales.
func TestValidTransitionSameStatus(t *testing.T) {
	for _, s := range []InteractionStatus{
		InteractionStatusPROGRAMADA, InteractionStatusPAGADO, InteractionStatusCANCELADO,
	} {
		assert.True(t, ValidTransition(s, s), string(s))
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, InteractionStatusENTREGADO.IsValidSale())
	assert.True(t, InteractionStatusCONFIRMADO.IsValidSale())
	assert.False(t, InteractionStatusCANCELADO.IsValidSale())
	assert.False(t, InteractionStatusCOMPLETADO.IsValidSale())

	assert.True(t, InteractionStatusPROGRAMADA.IsOpenTask())
	assert.True(t, InteractionStatusSEGUIMIENTO.IsOpenTask())
	assert.False(t, InteractionStatusFALLIDO.IsOpenTask())

	assert.True(t, InteractionStatusPAGADO.IsTerminal())
	assert.True(t, InteractionStatusCANCELADO.IsTerminal())
	assert.False(t, InteractionStatusFACTURADO.IsTerminal())
}
