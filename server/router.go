package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	limitForgotPassword := limitSensitiveRoutes(time.Minute, 5)
	limitTyping := limitSensitiveRoutes(time.Second, 10)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.POST("/password/forgot", limitForgotPassword, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/stays", s.handleListStays())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.POST("/me/verify-phone/start", s.handleStartPhoneVerification())
	authorized.POST("/me/verify-phone/check", s.handleCheckPhoneVerification())
	authorized.POST("/me/government-id", s.handleUploadGovernmentID())

	authorized.POST("/agents/apply", s.handleApplyForAgent())
	authorized.GET("/agents/:userId", s.handleGetAgentProfile())

	authorized.POST("/stays", s.handleCreateStay())
	authorized.PUT("/stays", s.handleUpdateStay())
	authorized.DELETE("/stays/:stayId", s.handleDeleteStay())
	authorized.POST("/stays/upload", s.handleUploadStayImages())

	authorized.POST("/bookings", s.handleCreateBooking())
	authorized.GET("/bookings", s.handleListMyBookings())

	authorized.GET("/wishlist/stays", s.handleListStaysWithWishlist())
	authorized.POST("/wishlist", s.handleAddToWishlist())

	authorized.GET("/messages/conversations", s.handleListConversations())
	authorized.GET("/messages/conversation/:otherId", s.handleGetConversation())
	authorized.POST("/messages", s.handleSendMessage())
	authorized.POST("/messages/read", s.handleMarkConversationRead())
	authorized.POST("/messages/typing", limitTyping, s.handleSendTyping())
	authorized.POST("/pusher/auth", s.handleChannelAuth())

	if s.Hub != nil {
		authorized.GET("/ws", s.handleWebsocket())
	}
}
