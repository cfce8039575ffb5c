package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// RequireAppID rejects requests whose x-app-id header does not name this
// deployment. The console sends the value it was built against, which keeps
// stale bundles off a mismatched backend.
func RequireAppID(appID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got := c.GetHeader(constants.HeaderAppID); got != appID {
			utils.ErrorResponse(c, http.StatusForbidden, "unknown application id")
			c.Abort()
			return
		}
		c.Next()
	}
}
