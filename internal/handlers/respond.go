package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
)

// fail writes the uniform error body, with the status derived from the error
// taxonomy.
func fail(ctx *gin.Context, err error, message string) {
	ctx.JSON(apperrors.HTTPStatus(err), gin.H{"success": false, "message": message})
}

// parseID parses a numeric path parameter.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
