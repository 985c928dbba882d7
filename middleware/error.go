package middleware

import (
	"github.com/santabrisa/crm-server/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware global de errores: responde el ultimo error
// registrado en el contexto si nadie lo hizo antes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			utils.HandleError(c, c.Errors.Last().Err)
		}
	}
}
