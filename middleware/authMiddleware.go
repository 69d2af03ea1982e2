package middleware

import (
	"net/http"

	"foodstop-server/helpers"
	"foodstop-server/models"
	"foodstop-server/services"

	"github.com/gin-gonic/gin"
)

// Authentication rejects requests without a valid token. The token query
// parameter is accepted as a fallback because browser websocket clients
// cannot set request headers.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			clientToken = c.Query("token")
		}
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication token required"})
			c.Abort()
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthentication decodes the token when one is present but lets
// anonymous requests through. Used on the order submission route, where
// guests order without an account.
func OptionalAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken != "" {
			if claims, err := helpers.ValidateToken(clientToken); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after Authentication.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *helpers.SignedDetails) {
	c.Set("email", claims.Email)
	c.Set("name", claims.Name)
	c.Set("uid", claims.Uid)
	c.Set("user_role", claims.User_role)
}

// CallerFromContext rebuilds the caller identity stored by the auth
// middleware. Returns nil for anonymous requests.
func CallerFromContext(c *gin.Context) *services.Caller {
	uid := c.GetString("uid")
	if uid == "" {
		return nil
	}
	return &services.Caller{
		User_id: uid,
		Email:   c.GetString("email"),
		Role:    c.GetString("user_role"),
	}
}
