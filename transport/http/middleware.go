package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the bearer token from the Authorization header,
// returning "" when it is absent or malformed. The gate itself performs
// all validation; this only carries the string.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
