package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/wayvee/config"
	"github.com/techagentng/wayvee/db"
	"github.com/techagentng/wayvee/services"
	"github.com/techagentng/wayvee/services/realtime"
)

type Server struct {
	Config          *config.Config
	AuthRepository  db.AuthRepository
	AuthService     services.AuthService
	AgentService    services.AgentService
	StayService     services.StayService
	BookingService  services.BookingService
	WishlistService services.WishlistService
	MessageService  services.MessageService
	MediaService    services.MediaService
	// Hub is non-nil only when running with the in-process realtime
	// fallback instead of Pusher.
	Hub *realtime.Hub
	DB  db.GormDB
}

// decode binds the JSON body into v.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return nil
}

func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	r := s.setupRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
