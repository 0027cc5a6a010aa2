package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/httpx"
	otpsvc "github.com/davidrendon/identia-backend/internal/otp"
	"github.com/davidrendon/identia-backend/internal/store"
	"github.com/davidrendon/identia-backend/pkg/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RecoverPasswordInput struct {
	OTP      string `json:"otp" binding:"required,len=6,numeric"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login checks credentials and returns a signed session token.
func Login(s *store.Store, jwtSecret string, log *zap.Logger) gin.HandlerFunc {
	const tag = "[Login]"
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		user, err := s.UserByEmail(c.Request.Context(), input.Email)
		if errors.Is(err, store.ErrNotFound) {
			httpx.Unauthorized("Invalid credentials").Log(log, tag).Send(c)
			return
		}
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			httpx.Unauthorized("Invalid credentials").Log(log, tag).Send(c)
			return
		}

		token, err := utils.GenerateToken(user, jwtSecret)
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		httpx.OK("Login successful", gin.H{
			"token": token,
			"user":  userPayload(user),
		}).Log(log, tag).Send(c)
	}
}

// RecoverPassword verifies the submitted OTP and replaces the account
// password. The consumed OTP is not restored if the update fails.
func RecoverPassword(svc *otpsvc.Service, log *zap.Logger) gin.HandlerFunc {
	const tag = "[RecoverPassword]"
	return func(c *gin.Context) {
		var input RecoverPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		err := svc.RecoverPassword(c.Request.Context(), input.Email, input.OTP, input.Password)
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		httpx.OK("Password updated successfully", nil).Log(log, tag).Send(c)
	}
}
