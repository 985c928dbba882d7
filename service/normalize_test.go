package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"minusculas", "BAR MAFALDA", "bar mafalda"},
		{"tildes", "Bar Máfalda", "bar mafalda"},
		{"enie", "Viña Añeja", "vina aneja"},
		{"espacios repetidos", "  Bar   Mafalda  ", "bar mafalda"},
		{"combinado", "  Bar  MÁFALDA ", "bar mafalda"},
		{"vacio", "", ""},
		{"solo espacios", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

// Dos nombres que difieren solo en tildes y espaciado deben producir la
// misma clave de enlace.
func TestNormalizeNameEquivalence(t *testing.T) {
	assert.Equal(t, NormalizeName("Bar  Máfalda "), NormalizeName("bar mafalda"))
}
