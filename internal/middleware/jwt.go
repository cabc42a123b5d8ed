package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"car-inventory-service/internal/auth"
)

const identityKey = "identity"

// RequireAuth validates the bearer token on every request and injects the
// resulting identity into the gin context. Requests without a valid token
// never reach the guarded handler.
func RequireAuth(verifier *auth.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			status := http.StatusUnauthorized
			message := "Invalid token"
			var authErr *auth.Error
			if errors.As(err, &authErr) {
				message = authErr.Message
				if authErr.Kind == auth.KindInternal {
					status = http.StatusInternalServerError
					log.Error("token verification fault",
						zap.Error(err),
						zap.String("request_id", RequestIDFrom(c)))
				}
			}
			c.AbortWithStatusJSON(status, gin.H{"message": message})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
