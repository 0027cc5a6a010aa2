// Package httpx carries the uniform response envelope every service
// endpoint replies with: {success, message, data, statusCode}.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	StatusCode int    `json:"statusCode"`
}

// OK is a 200 success envelope.
func OK(message string, data any) *Response {
	return &Response{Success: true, Message: message, Data: data, StatusCode: http.StatusOK}
}

// Created is a 201 success envelope for newly created resources.
func Created(message string, data any) *Response {
	return &Response{Success: true, Message: message, Data: data, StatusCode: http.StatusCreated}
}

// BadRequest covers missing or malformed input.
func BadRequest(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusBadRequest}
}

// Unauthorized covers missing or rejected credentials.
func Unauthorized(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusUnauthorized}
}

// NotFound covers absent (or soft-deleted) resources.
func NotFound(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusNotFound}
}

// Conflict covers duplicate emails and already-active OTPs.
func Conflict(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusConflict}
}

// DatabaseError covers persistence faults.
func DatabaseError(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusInternalServerError}
}

// InternalError is the catch-all for unexpected failures.
func InternalError(message string) *Response {
	return &Response{Message: message, StatusCode: http.StatusInternalServerError}
}

// Log writes one structured line for the response under the caller's
// tag. Auditing aid only; it never alters the envelope.
func (r *Response) Log(log *zap.Logger, tag string) *Response {
	fields := []zap.Field{
		zap.String("tag", tag),
		zap.Int("status", r.StatusCode),
		zap.Bool("success", r.Success),
		zap.String("message", r.Message),
	}
	switch {
	case r.StatusCode >= http.StatusInternalServerError:
		log.Error("response", fields...)
	case r.StatusCode >= http.StatusBadRequest:
		log.Warn("response", fields...)
	default:
		log.Info("response", fields...)
	}
	return r
}

// Send writes the envelope; the HTTP status mirrors statusCode.
func (r *Response) Send(c *gin.Context) {
	c.JSON(r.StatusCode, r)
}
