package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt"

	"github.com/gin-gonic/gin"
)

// LoginUser usuario autenticado extraido del token.
type LoginUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

// GetUser devuelve el usuario autenticado almacenado en el contexto por el
// middleware de autenticacion.
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("acceso no autorizado")
	}

	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = map[string]interface{}(v)
	case map[string]interface{}:
		claims = v
	default:
		return nil, fmt.Errorf("formato de usuario no reconocido")
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("id de usuario no valido")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("rol de usuario no valido")
	}

	name, ok := claims["name"].(string)
	if !ok {
		return nil, fmt.Errorf("nombre de usuario no valido")
	}

	return &LoginUser{
		ID:   id,
		Role: role,
		Name: name,
	}, nil
}
