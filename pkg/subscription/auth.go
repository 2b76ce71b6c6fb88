package subscription

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/ashokpds15/Myself/pkg/apiresponses"
	"github.com/ashokpds15/Myself/pkg/apitypes"
)

// RequireAPIKey aborts with 401 unless the key query parameter equals secret.
// An empty secret rejects every request.
func RequireAPIKey(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.Query(apitypes.APIKeyParam))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			apiresponses.RespondUnauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
