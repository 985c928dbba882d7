package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError error de API con codigo HTTP.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implementa la interfaz error.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError crea un error de API.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError recurso no encontrado.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" no encontrado", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

// CreateUnauthorizedError acceso no autorizado.
func CreateUnauthorizedError() *ApiError {
	return NewApiError("acceso no autorizado", http.StatusUnauthorized, "UNAUTHORIZED")
}

// CreateForbiddenError permisos insuficientes.
func CreateForbiddenError() *ApiError {
	return NewApiError("permisos insuficientes", http.StatusForbidden, "FORBIDDEN")
}

// CreateBadRequestError peticion invalida.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

// CreateConflictError conflicto de estado.
func CreateConflictError(message string) *ApiError {
	return NewApiError(message, http.StatusConflict, "CONFLICT")
}

// HandleError registra el error y responde con el codigo adecuado.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "error de API")

	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// SuccessResponse respuesta de exito.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse respuesta de error simple.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// PaginatedResponse respuesta paginada.
func PaginatedResponse(c *gin.Context, data interface{}, total int64, page int64, limit int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": (total + limit - 1) / limit,
		},
	})
}
