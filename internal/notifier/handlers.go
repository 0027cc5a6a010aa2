package notifier

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SendEmailInput struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

type SendSMSInput struct {
	To   string `json:"to" binding:"required"`
	Body string `json:"body" binding:"required"`
}

// SendEmail relays an email through the configured provider.
func SendEmail(sender EmailSender, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendEmailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		trackingID, err := sender.Send(c.Request.Context(), input.To, input.Subject, input.Text)
		if err != nil {
			log.Error("email send failed", zap.String("to", input.To), zap.Error(err))
			c.JSON(500, gin.H{"error": "Failed to send email"})
			return
		}

		log.Info("email sent", zap.String("to", input.To), zap.String("trackingId", trackingID))
		c.JSON(200, gin.H{
			"message":    "Email sent",
			"trackingId": trackingID,
		})
	}
}

// SendSMS relays a text message through the configured provider.
func SendSMS(sender SMSSender, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendSMSInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		sid, err := sender.Send(c.Request.Context(), input.To, input.Body)
		if err != nil {
			log.Error("sms send failed", zap.String("to", input.To), zap.Error(err))
			c.JSON(500, gin.H{"error": "Failed to send SMS"})
			return
		}

		log.Info("sms sent", zap.String("to", input.To), zap.String("sid", sid))
		c.JSON(200, gin.H{
			"message": "SMS sent",
			"sid":     sid,
		})
	}
}

// NewRouter builds the relay's route table.
func NewRouter(email EmailSender, sms SMSSender, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/actuator/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	r.POST("/send-email", SendEmail(email, log))
	r.POST("/send-sms", SendSMS(sms, log))

	return r
}
