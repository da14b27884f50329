// Package server assembles the application: configuration, database,
// stores, handlers, the realtime bridge and the HTTP routes.
package server

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/surrealdb/surrealdb.go"

	"github.com/remitflow/remitflow/internal/config"
	"github.com/remitflow/remitflow/internal/database"
	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/email"
	"github.com/remitflow/remitflow/internal/handlers"
	"github.com/remitflow/remitflow/internal/hub"
	"github.com/remitflow/remitflow/internal/logging"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/platform"
	"github.com/remitflow/remitflow/internal/pubsub"
	"github.com/remitflow/remitflow/internal/rates"
	"github.com/remitflow/remitflow/internal/realtime"
	"github.com/remitflow/remitflow/internal/rendering"
	"github.com/remitflow/remitflow/internal/storage"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	DB  *surrealdb.DB
	Cfg config.Provider

	client   *platform.SurrealClient
	emailer  domain.EmailSender
	profiles domain.ProfileRepository

	authHandler         *handlers.AuthHandler
	dashboardHandler    *handlers.DashboardHandler
	sendMoneyHandler    *handlers.SendMoneyHandler
	requestHandler      *handlers.RequestTransferHandler
	transactionsHandler *handlers.TransactionsHandler
	onboardingHandler   *handlers.OnboardingHandler
	accountHandler      *handlers.AccountHandler
	adminHandler        *handlers.AdminHandler
	streamHandler       *realtime.StreamHandler

	htmlHub *hub.Hub
	bus     *pubsub.WatermillBridge
	bridge  *realtime.Bridge
}

// New creates a new Server instance with every dependency wired.
func New() *Server {
	// Load environment variables from .env if present. slog is not
	// configured yet, so the standard logger is used for this one message.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	logging.New()
	cfg := config.New()

	db, err := platform.NewDB(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	client := platform.NewSurrealClient(db, cfg.GetDBNs(), cfg.GetDBDb())

	emailer, err := email.NewEmailService(cfg)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	// Stores over the platform client.
	profiles := database.NewSurrealProfileStore(client)
	transactions := database.NewSurrealTransactionStore(client)
	requests := database.NewSurrealTransferRequestStore(client)
	documents := database.NewSurrealDocumentStore(client)

	// Uploads land on local disk and are served back under /uploads.
	store := storage.NewDiskStore(cfg.GetStorageRoot())
	uploader := platform.NewStorageUploader(store, cfg.GetAppBaseURL(), cfg.GetMaxUploadBytes(), cfg.GetAllowedUploadTypes())

	rateService := rates.NewClient(cfg.GetRatesPrimaryURL(), cfg.GetRatesFallbackURL())

	// Realtime plumbing: live query feed -> bus -> hub -> websockets.
	htmlHub := hub.NewHub()
	go htmlHub.Run()
	bus := pubsub.NewWatermillBridge()
	feed := platform.NewLiveFeed(client)
	toasts := realtime.NewToastLog()
	bridge := realtime.NewBridge(feed, bus, bus, htmlHub, transactions, toasts)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	// RequestID must run before Logger so the request-scoped logger can
	// pick the ID up.
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)

	sessionStore := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	e.Use(session.Middleware(sessionStore))

	e.Renderer = rendering.NewUniversalRenderer()

	return &Server{
		E:        e,
		DB:       db,
		Cfg:      cfg,
		client:   client,
		emailer:  emailer,
		profiles: profiles,

		authHandler:         handlers.NewAuthHandler(client, emailer, cfg.GetAppBaseURL()),
		dashboardHandler:    handlers.NewDashboardHandler(transactions),
		sendMoneyHandler:    handlers.NewSendMoneyHandler(transactions, rateService),
		requestHandler:      handlers.NewRequestTransferHandler(requests, transactions),
		transactionsHandler: handlers.NewTransactionsHandler(transactions),
		onboardingHandler:   handlers.NewOnboardingHandler(profiles, documents, uploader),
		accountHandler:      handlers.NewAccountHandler(client, profiles, documents, uploader),
		adminHandler:        handlers.NewAdminHandler(profiles),
		streamHandler:       realtime.NewStreamHandler(htmlHub, toasts),

		htmlHub: htmlHub,
		bus:     bus,
		bridge:  bridge,
	}
}

// Client exposes the platform client, useful for tests.
func (s *Server) Client() *platform.SurrealClient {
	return s.client
}
