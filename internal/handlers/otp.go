package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/httpx"
	otpsvc "github.com/davidrendon/identia-backend/internal/otp"
)

type IssueOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPInput struct {
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
	Email string `json:"email" binding:"required,email"`
}

// IssueOTP creates a one-time code for the subject. The code itself is
// delivered through the notification pipeline and never echoed here;
// the response carries the record id, subject, expiry, and the recovery
// URL derived from the requesting host.
func IssueOTP(svc *otpsvc.Service, log *zap.Logger) gin.HandlerFunc {
	const tag = "[IssueOTP]"
	return func(c *gin.Context) {
		var input IssueOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		rec, err := svc.Issue(c.Request.Context(), input.Email)
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		recoveryURL := fmt.Sprintf("%s://%s/api/auth/otp/recover-password?email=%s",
			scheme, c.Request.Host, rec.SubjectEmail)

		httpx.Created("OTP created successfully", gin.H{
			"id":                rec.ID,
			"subjectIdentifier": rec.SubjectEmail,
			"expiresAt":         rec.ExpiresAt,
			"url":               recoveryURL,
		}).Log(log, tag).Send(c)
	}
}

// VerifyOTP consumes the subject's active code on a match. A mismatch
// or expired code is a 400, not a fault.
func VerifyOTP(svc *otpsvc.Service, log *zap.Logger) gin.HandlerFunc {
	const tag = "[VerifyOTP]"
	return func(c *gin.Context) {
		var input VerifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		ok, err := svc.Verify(c.Request.Context(), input.Email, input.OTP)
		if err != nil {
			respondError(c, log, tag, err)
			return
		}
		if !ok {
			httpx.BadRequest("The OTP is invalid or has expired").Log(log, tag).Send(c)
			return
		}

		httpx.OK("OTP verified successfully", nil).Log(log, tag).Send(c)
	}
}
