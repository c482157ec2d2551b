// Package handlers implements the REST endpoints for clients, properties,
// and contracts.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error to its HTTP status and writes the
// structured body.  Store faults and internal errors are masked.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    string(errors.GetKind(err)),
		Message: message,
	})
}

// respondConflict writes a 409 for deletions blocked by existing references.
func respondConflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
		Code:    "CONFLICT",
		Message: message,
	})
}

// parseIDParam reads the :id path parameter.  A non-numeric value is a
// caller mistake, reported as 400.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errors.InvalidArgument("identifier must be a number"))
		return 0, false
	}
	return id, true
}
