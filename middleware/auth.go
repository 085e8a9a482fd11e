// api/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/weathergate/api/auth"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/service"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

// Authenticate resolves the sender's identity key and hands any presented
// certificates to listener before the request moves on.
func Authenticate(verifier auth.Verifier, listener service.CredentialListener, allowUnauthenticated bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := verifier.Verify(c.Request)
		if err != nil {
			if allowUnauthenticated {
				logger.Debug("Continuing without identity", zap.Error(err))
				c.Next()
				return
			}
			util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
			return
		}

		util.SetIdentity(c, result.Identity)
		if len(result.Certificates) > 0 {
			listener.OnCredentialsVerified(c.Request.Context(), result.Identity, result.Certificates)
		}

		c.Next()
	}
}
