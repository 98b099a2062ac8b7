package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/assistant-admin/internal/pkg/errors"
)

// Response is the envelope returned by every endpoint
type Response struct {
	Code    int         `json:"code"`              // business code, 0 on success
	Message string      `json:"message,omitempty"` // operator-facing message
	Data    interface{} `json:"data"`
}

// Success writes a 200 response
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "", data)
}

// SuccessWithMessage writes a 200 response carrying an operator-facing message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, Response{
		Code:    apperrors.Success,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusCreated, Response{
		Code:    apperrors.Success,
		Message: message,
		Data:    data,
	})
}

// BadRequest 400 for malformed input that never reached the use cases
func BadRequest(c *gin.Context, message string) {
	HandleError(c, apperrors.New(apperrors.ErrInvalidParams, message))
}

// NotFound 404 for unknown routes
func NotFound(c *gin.Context) {
	HandleError(c, apperrors.New(apperrors.ErrNotFound, c.Request.URL.Path))
}

// HandleError writes err using its AppError code, 500 otherwise
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := apperrors.ExtractCode(err)
	c.JSON(apperrors.GetHTTPStatus(code), Response{
		Code:    code,
		Message: apperrors.FormatError(code, apperrors.GetDetails(err)),
		Data:    struct{}{},
	})
}
