package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/santabrisa/crm-server/config"
	"github.com/santabrisa/crm-server/models"

	"github.com/golang-jwt/jwt"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hash sha256 de la contraseña.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// SaltedHash hash sha256 con sal, formato sha256$sal$hash.
func SaltedHash(password string, salt string) string {
	hash := sha256.Sum256([]byte(password + salt))
	return fmt.Sprintf("sha256$%s$%s", salt, hex.EncodeToString(hash[:]))
}

// VerifyPassword comprueba la contraseña contra el hash almacenado.
// Acepta el formato estandar y el formato con sal de datos migrados.
func VerifyPassword(password string, hashedPassword string) bool {
	if HashPassword(password) == hashedPassword {
		return true
	}

	// Formato sha256$sal$hash de la importacion inicial
	parts := strings.Split(hashedPassword, "$")
	if len(parts) == 3 && parts[0] == "sha256" {
		return SaltedHash(password, parts[1]) == hashedPassword
	}

	return false
}

// GenerateToken genera un JWT de sesion para un miembro del equipo.
func GenerateToken(member models.TeamMember) (string, error) {
	claims := jwt.MapClaims{
		"id":   member.ID.Hex(),
		"name": member.Name,
		"role": string(member.Role),
		"exp":  time.Now().Add(time.Hour * 24 * 30).Unix(), // 30 dias
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("error generando token")
		return "", err
	}

	return tokenString, nil
}

// ParseToken valida y decodifica un JWT.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("token no valido")
}

// permissions acciones permitidas por rol y recurso. ADMIN no aparece:
// tiene acceso total.
var permissions = map[models.UserRole]map[string][]string{
	models.UserRoleSALES_REP: {
		"accounts":     {"read", "create", "update"},
		"interactions": {"read", "create", "update", "delete"},
		"cartera":      {"read"},
		"dashboard":    {"read"},
	},
	models.UserRoleOPS: {
		"inventory":  {"read", "create", "update"},
		"production": {"read", "create", "update"},
		"purchases":  {"read", "create", "update"},
		"dashboard":  {"read"},
	},
}

// HasPermission comprueba si el rol puede ejecutar la accion sobre el
// recurso.
func HasPermission(role models.UserRole, resource string, action string) bool {
	if role == models.UserRoleADMIN {
		return true
	}

	if resourceActions, exists := permissions[role]; exists {
		for _, a := range resourceActions[resource] {
			if a == action {
				return true
			}
		}
	}

	return false
}
