package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Metodos que se persisten en el registro de operaciones.
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// Rutas excluidas del registro.
var excludedPaths = map[string]bool{
	"/api/health":        true,
	"/api/db-status":     true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
	"/metrics":           true,
}

const maxLoggedBody = 4096

// OperationLoggerMiddleware persiste en MongoDB cada operacion mutadora
// de la API junto con el usuario que la ejecuto.
func OperationLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loggedMethods[c.Request.Method] || excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &bodyLogWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = blw

		c.Next()

		entry := models.ApiOperationLog{
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			StatusCode:   c.Writer.Status(),
			DurationMs:   time.Since(start).Milliseconds(),
			RequestBody:  truncate(string(requestBody)),
			ResponseBody: truncate(blw.body.String()),
			CreatedAt:    time.Now(),
		}

		if claims, exists := c.Get("user"); exists {
			if mc, ok := claims.(jwt.MapClaims); ok {
				entry.UserID, _ = mc["id"].(string)
				entry.UserName, _ = mc["name"].(string)
				entry.Role, _ = mc["role"].(string)
			}
		}

		// El registro nunca bloquea la respuesta.
		go func() {
			_, err := repository.Collection(repository.ApiOperationLogsCollection).
				InsertOne(repository.GetContext(), entry)
			if err != nil {
				utils.Logger.Error().Err(err).
					Str("path", entry.Path).
					Msg("error guardando registro de operacion")
			}
		}()
	}
}

// truncate limita el tamaño de los cuerpos guardados.
func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "...(truncado)"
	}
	return s
}
