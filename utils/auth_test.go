package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/santabrisa/crm-server/models"
)

func TestVerifyPassword(t *testing.T) {
	hashed := HashPassword("secreta123")

	assert.True(t, VerifyPassword("secreta123", hashed))
	assert.False(t, VerifyPassword("otra", hashed))
	assert.False(t, VerifyPassword("secreta123", "no-es-un-hash"))
}

func TestVerifyPasswordSaltedFormat(t *testing.T) {
	stored := SaltedHash("secreta123", "abc123")

	assert.True(t, VerifyPassword("secreta123", stored))
	assert.False(t, VerifyPassword("otra", stored))
}

func TestTokenRoundtrip(t *testing.T) {
	member := models.TeamMember{
		ID:   primitive.NewObjectID(),
		Name: "Lucia Perez",
		Role: models.UserRoleSALES_REP,
	}

	token, err := GenerateToken(member)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, member.ID.Hex(), claims["id"])
	assert.Equal(t, "Lucia Perez", claims["name"])
	assert.Equal(t, string(models.UserRoleSALES_REP), claims["role"])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("no.es.token")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     models.UserRole
		resource string
		action   string
		want     bool
	}{
		{"admin todo", models.UserRoleADMIN, "production", "delete", true},
		{"comercial lee cartera", models.UserRoleSALES_REP, "cartera", "read", true},
		{"comercial crea interacciones", models.UserRoleSALES_REP, "interactions", "create", true},
		{"comercial no toca inventario", models.UserRoleSALES_REP, "inventory", "read", false},
		{"operaciones gestiona produccion", models.UserRoleOPS, "production", "create", true},
		{"operaciones no lee cartera", models.UserRoleOPS, "cartera", "read", false},
		{"accion desconocida", models.UserRoleOPS, "inventory", "delete", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.resource, tt.action))
		})
	}
}
