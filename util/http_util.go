// api/util/http_util.go
package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
)

const (
	IdentityContextKey  = "identityKey"
	RequestIDContextKey = "requestID"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

func RespondWithError(c *gin.Context, code int, message string, err error) {
	fields := []zap.Field{
		zap.Int("status", code),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("requestID", c.GetString(RequestIDContextKey)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if code >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	c.AbortWithStatusJSON(code, ErrorResponse{Status: "error", Description: message})
}

// GetIdentityFromContext returns the authenticated identity key, or "" when
// the request carries none.
func GetIdentityFromContext(c *gin.Context) string {
	identity, exists := c.Get(IdentityContextKey)
	if !exists {
		return ""
	}
	s, _ := identity.(string)
	return s
}

func SetIdentity(c *gin.Context, identity string) {
	c.Set(IdentityContextKey, identity)
}
