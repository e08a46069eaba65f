package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskboard/taskboard/pkg/token"
)

// CtxUsernameKey is the gin context key holding the authenticated principal.
const CtxUsernameKey = "username"

// invalidTokenBody is the single response for every validation failure.
// Missing header, bad signature, and expiry all look the same to the caller;
// the distinct causes are only logged.
var invalidTokenBody = gin.H{"detail": "Could not validate credentials"}

// Auth reads the Authorization bearer header, validates the token, and
// injects the resolved subject into the gin context. On any failure the
// downstream handler never runs.
func Auth(tokens *token.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, logger, "missing bearer credential")
			return
		}
		subject, err := tokens.Validate(raw)
		if err != nil {
			unauthorized(c, logger, err.Error())
			return
		}
		c.Set(CtxUsernameKey, subject)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

func unauthorized(c *gin.Context, logger *logrus.Logger, reason string) {
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"reason":     reason,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Info("rejected bearer credential")
	}
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, invalidTokenBody)
}
