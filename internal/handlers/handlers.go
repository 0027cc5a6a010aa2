package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/httpx"
	"github.com/davidrendon/identia-backend/internal/models"
	otpsvc "github.com/davidrendon/identia-backend/internal/otp"
	"github.com/davidrendon/identia-backend/internal/store"
)

// userPayload is the sanitized user shape; the password hash never
// leaves the service.
func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"phone": u.Phone,
	}
}

// respondError maps the error taxonomy to the response envelope and
// sends it under the caller's tag. Internal detail stays in the log.
func respondError(c *gin.Context, log *zap.Logger, tag string, err error) {
	var resp *httpx.Response
	switch {
	case errors.Is(err, otpsvc.ErrValidation):
		resp = httpx.BadRequest(err.Error())
	case errors.Is(err, otpsvc.ErrInvalidOTP):
		resp = httpx.BadRequest("The OTP is invalid or has expired")
	case errors.Is(err, store.ErrDuplicateEmail):
		resp = httpx.Conflict("The email is already registered")
	case errors.Is(err, store.ErrActiveOTP):
		resp = httpx.Conflict("An active OTP already exists for this subject")
	case errors.Is(err, store.ErrNotFound):
		resp = httpx.NotFound("Resource not found")
	case errors.Is(err, store.ErrDatabase):
		log.Error("database failure", zap.String("tag", tag), zap.Error(err))
		resp = httpx.DatabaseError("Internal server error")
	default:
		log.Error("unexpected failure", zap.String("tag", tag), zap.Error(err))
		resp = httpx.InternalError("An unexpected error occurred")
	}
	resp.Log(log, tag).Send(c)
}
