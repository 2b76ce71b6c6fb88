package apiresponses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
}

// RespondNotFound sends a 404 Not Found response.
func RespondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, APIError{Message: message})
}

// RespondUnauthorized sends a 401 Unauthorized response.
// Use this when the admin key is missing or wrong.
func RespondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
}

// RespondBadRequest sends a 400 Bad Request response.
// Use this for client errors like malformed JSON or invalid parameters.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIError{Message: message})
}

// RespondTooManyRequests sends a 429 response for rate-limited clients.
func RespondTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, APIError{Message: "Too many requests, please try again later"})
}

// RespondInternalError sends a 500 Internal Server Error response.
// It logs the error with full details but returns only message to the client.
func RespondInternalError(c *gin.Context, message string, err error, log *zap.SugaredLogger) {
	if log != nil {
		log.Errorw(message, "error", err)
	}
	c.JSON(http.StatusInternalServerError, APIError{Message: message})
}

// RespondBadGateway sends a 502 Bad Gateway response.
// Useful when proxying upstream services.
func RespondBadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "bad gateway"
	}
	c.JSON(http.StatusBadGateway, APIError{Message: message})
}

// RespondServiceUnavailable sends a 503 Service Unavailable response.
// Use this when a required backend service is not available.
func RespondServiceUnavailable(c *gin.Context, service string) {
	c.JSON(http.StatusServiceUnavailable, APIError{Message: "service unavailable: " + service})
}

// RespondOK sends a 200 OK response with the given data.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with the given data.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
