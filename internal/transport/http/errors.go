package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richardliu001/newsletter-service/internal/service"
)

// statusFor maps a service error onto the HTTP status returned to the client.
func statusFor(err error) int {
	var se *service.SubscribeError
	if errors.As(err, &se) {
		if se.Kind == service.SubscribeValidation {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
	var ce *service.ConfirmError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case service.ConfirmMissingToken:
			return http.StatusBadRequest
		case service.ConfirmTokenNotFound:
			return http.StatusUnauthorized
		}
	}
	return http.StatusInternalServerError
}

// abortWithError records err for the logging middleware and writes the
// client-safe message.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": service.PublicMessage(err)})
}
