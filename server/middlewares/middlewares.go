package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feather-works/feather-backend/model"
)

// userKey is where TokenAuth parks the resolved user in the gin context.
const userKey = "acting_user"

// TokenAuth resolves the acting user from the "Authorization: Token <key>"
// header and stores it in the request context. Requests without the header
// pass through as anonymous. Requests presenting an unknown or malformed
// token are rejected outright so a client never silently degrades to
// anonymous.
func TokenAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Token" || parts[1] == "" {
			abortUnauthorized(c, "Invalid token header.")
			return
		}

		var token model.AuthToken
		if err := db.Preload("User").Where("key = ?", parts[1]).First(&token).Error; err != nil {
			abortUnauthorized(c, "Invalid token.")
			return
		}

		c.Set(userKey, token.User)
		c.Next()
	}
}

// LoginRequired aborts with 401 unless TokenAuth resolved an acting user.
// Layer it in front of handlers for unsafe methods and for endpoints that
// never serve anonymous callers.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userKey); !ok {
			abortUnauthorized(c, "Authentication credentials were not provided.")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the acting user resolved by TokenAuth, if any.
func CurrentUser(c *gin.Context) (model.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := value.(model.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
