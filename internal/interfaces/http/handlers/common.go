// Package handlers wires the console's REST surface onto the application
// use cases.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
)

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

// currentUserID reads the authenticated account id set by the auth
// middleware. Zero means the route is misconfigured, not a client error.
func currentUserID(c *gin.Context) uint {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0
	}
	id, _ := v.(uint)
	return id
}
