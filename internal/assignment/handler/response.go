package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes an error envelope.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// notFoundResponse creates 404 error response.
func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}

// invalidRequest creates 400 error response.
func invalidRequest(c *gin.Context, message string) {
	errorResponse(c, "INVALID_REQUEST", message, http.StatusBadRequest)
}
