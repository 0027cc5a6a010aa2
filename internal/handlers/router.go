package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/middleware"
	otpsvc "github.com/davidrendon/identia-backend/internal/otp"
	"github.com/davidrendon/identia-backend/internal/store"
)

// RouterDeps carries everything the route table needs. Events and
// Revoker may be nil; the affected features degrade to no-ops.
type RouterDeps struct {
	Store     *store.Store
	OTP       *otpsvc.Service
	Events    events.Publisher
	Revoker   middleware.Revoker
	JWTSecret string
	Log       *zap.Logger
}

// NewRouter builds the full route table for the identity service.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/actuator/health", Health())

	api := r.Group("/api")
	{
		api.POST("/otp", IssueOTP(deps.OTP, deps.Log))
		api.POST("/otp/verify", VerifyOTP(deps.OTP, deps.Log))

		auth := api.Group("/auth")
		{
			auth.POST("/login", Login(deps.Store, deps.JWTSecret, deps.Log))
			auth.POST("/otp/recover-password", RecoverPassword(deps.OTP, deps.Log))
		}

		users := api.Group("/users")
		{
			users.POST("/register", RegisterUser(deps.Store, deps.Events, deps.Log))
			users.PUT("/:id", UpdateUser(deps.Store, deps.Log))
			users.GET("", ListUsers(deps.Store, deps.Log))
			users.GET("/:id", GetUser(deps.Store, deps.Log))
			users.DELETE("/:id", DeleteUser(deps.Store, deps.Log))
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Revoker))
		{
			protected.GET("/greeting", Greeting(deps.Log))
		}
	}

	return r
}
