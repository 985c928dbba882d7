package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAccountInteractionsFilter(t *testing.T) {
	filter := accountInteractionsFilter("abc123", "Bar Máfalda")

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)

	assert.Equal(t, bson.M{"accountId": "abc123"}, or[0])
	// La rama principal del nombre filtra por la clave normalizada.
	assert.Equal(t, bson.M{"clientNameKey": "bar mafalda"}, or[1])

	// Las ramas antiguas solo aplican a documentos sin clave y acotan por
	// nombre exacto, no traen toda la coleccion.
	for _, branch := range or[2:] {
		assert.Contains(t, branch, "clientNameKey")
		name, ok := branch["clientName"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, "^Bar Máfalda$", name["$regex"])
		assert.Equal(t, "i", name["$options"])
	}
}

func TestAccountInteractionsFilterEscapesRegex(t *testing.T) {
	filter := accountInteractionsFilter("abc123", "Bar (El Puerto) S.L.")

	or := filter["$or"].([]bson.M)
	require.Len(t, or, 4)
	name := or[2]["clientName"].(bson.M)
	assert.Equal(t, `^Bar \(El Puerto\) S\.L\.$`, name["$regex"])
}

func TestAccountInteractionsFilterEmptyName(t *testing.T) {
	filter := accountInteractionsFilter("abc123", "")

	or := filter["$or"].([]bson.M)
	require.Len(t, or, 1)
	assert.Equal(t, bson.M{"accountId": "abc123"}, or[0])
}
