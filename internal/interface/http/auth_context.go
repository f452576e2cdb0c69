package http

import (
	"github.com/gin-gonic/gin"

	"github.com/luvit/moodfit/internal/domain/access"
)

const accessClaimsKey = "access_claims"

func setClaims(c *gin.Context, claims access.Claims) {
	c.Set(accessClaimsKey, claims)
}

func getClaims(c *gin.Context) (access.Claims, bool) {
	value, ok := c.Get(accessClaimsKey)
	if !ok {
		return access.Claims{}, false
	}
	claims, ok := value.(access.Claims)
	return claims, ok
}
