package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chefmarket-storefront/internal/backend"
	sessionsvc "chefmarket-storefront/internal/service/session"
)

const (
	sessionTokenHeader = "X-Session-Token"
	cartIDKey          = "cartID"
)

// sessionMiddleware resolves the storefront session token, binds the cart ID
// to the gin context, and forwards the caller's backend bearer on the
// request context.
func sessionMiddleware(sessions *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sessionTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token required"})
			return
		}
		sess, err := sessions.Lookup(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		c.Set(cartIDKey, sess.CartID)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), sess.Bearer))
		c.Next()
	}
}

func cartIDFrom(c *gin.Context) string {
	return c.GetString(cartIDKey)
}

func createSessionHandler(sessions *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			BackendToken string `json:"backend_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "backend_token required"})
			return
		}
		token, cartID, err := sessions.Issue(c.Request.Context(), in.BackendToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"session_token": token,
			"cart_id":       cartID,
			"expires_in":    sessions.TTLSeconds(),
		})
	}
}
