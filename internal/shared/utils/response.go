package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/shared/errors"
)

// PaginateMeta is the paging block of a list response.
type PaginateMeta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Perpage int   `json:"perpage"`
}

// Envelope is the standard response body. List responses carry Paginate;
// single-record responses carry Data only.
type Envelope struct {
	Data     interface{}   `json:"data,omitempty"`
	Paginate *PaginateMeta `json:"paginate,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// ErrorBody is the standard error response body. Message is the field clients
// surface to the operator.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// DataResponse sends a single-record response.
func DataResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Data: data})
}

// CreatedResponse sends a created response.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// MessageResponse sends a response with no record payload.
func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{Message: message})
}

// ListResponse sends a paginated list response.
func ListResponse(c *gin.Context, items interface{}, total int64, page, perpage int) {
	c.JSON(http.StatusOK, Envelope{
		Data: items,
		Paginate: &PaginateMeta{
			Total:   total,
			Page:    page,
			Perpage: perpage,
		},
	})
}

// ErrorResponse sends an error response with an explicit status and message.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Type: "error", Message: message})
}

// ErrorResponseWithError translates an error into the wire error body. For a
// non-AppError nothing internal is exposed.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, ErrorBody{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorBody{
		Type:    string(errors.ErrorTypeInternal),
		Message: "Internal server error occurred",
	})
}
