package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const (
	ctxKeyUser  = "auth_user"
	ctxKeyToken = "auth_token"

	msgUnauthorized = "Please authenticate!"
)

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// AuthRequired verifies the bearer token and loads its user into the gin
// context. Every failure mode answers with the same 401 body.
func AuthRequired(users UserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxKeyUser, user)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
}

// currentUser returns the user placed into the context by AuthRequired.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxKeyUser).(*models.User)
}

func currentToken(c *gin.Context) string {
	return c.MustGet(ctxKeyToken).(string)
}
