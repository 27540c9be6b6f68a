package main

import (
	"log"

	"github.com/techagentng/wayvee/config"
	"github.com/techagentng/wayvee/db"
	"github.com/techagentng/wayvee/mailingservices"
	"github.com/techagentng/wayvee/server"
	"github.com/techagentng/wayvee/services"
	"github.com/techagentng/wayvee/services/realtime"
	"github.com/techagentng/wayvee/smsservices"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)

	mailer := mailingservices.NewMailgun(conf)
	otpSender := smsservices.NewTwilio(conf)

	authRepo := db.NewAuthRepo(gormDB)
	agentRepo := db.NewAgentRepo(gormDB)
	stayRepo := db.NewStayRepo(gormDB)
	bookingRepo := db.NewBookingRepo(gormDB)
	wishlistRepo := db.NewWishlistRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)

	// Pusher carries realtime traffic in production. Without credentials the
	// in-process websocket hub takes over so local setups still get events.
	var (
		notifier   realtime.Notifier
		authorizer realtime.ChannelAuthorizer
		hub        *realtime.Hub
	)
	if pusherClient, err := realtime.NewPusherClient(conf); err == nil {
		notifier = pusherClient
		authorizer = pusherClient
	} else {
		log.Printf("pusher unavailable (%v), falling back to local hub", err)
		hub = realtime.NewHub(conf.JWTSecret)
		notifier = hub
		authorizer = hub
	}

	authService := services.NewAuthService(authRepo, mailer, otpSender, conf)
	agentService := services.NewAgentService(agentRepo, authRepo)
	stayService := services.NewStayService(stayRepo)
	bookingService := services.NewBookingService(bookingRepo, stayRepo, mailer)
	wishlistService := services.NewWishlistService(wishlistRepo, stayRepo)
	messageService := services.NewMessageService(messageRepo, conversationRepo, authRepo, notifier, authorizer)
	mediaService, err := services.NewMediaService(conf)
	if err != nil {
		log.Fatalf("error creating media service: %v", err)
	}

	s := &server.Server{
		Config:          conf,
		AuthRepository:  authRepo,
		AuthService:     authService,
		AgentService:    agentService,
		StayService:     stayService,
		BookingService:  bookingService,
		WishlistService: wishlistService,
		MessageService:  messageService,
		MediaService:    mediaService,
		Hub:             hub,
		DB:              *gormDB,
	}

	s.Start()
}
