package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClientClaims is the key used to store token claims in the Gin context.
	ContextClientClaims = "clientClaims"
	// ContextClient is the key used to store the API client name in the Gin context.
	ContextClient = "client"
)

// Authoriz accepts requests carrying a valid solve-scoped bearer token.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		client, err := token.ClientFromClaims(claims)
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(ContextClientClaims, claims)
		c.Set(ContextClient, client)
		c.Next()
	}
}
