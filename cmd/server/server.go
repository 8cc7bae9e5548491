package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/meunion/campus-match/internal/config"
	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers"
	"github.com/meunion/campus-match/internal/otp"
	"github.com/meunion/campus-match/internal/presence"
	"github.com/meunion/campus-match/internal/storage"
	ws "github.com/meunion/campus-match/internal/websocket"
	"github.com/meunion/campus-match/internal/wizard"
	"github.com/meunion/campus-match/pkg/auth"
)

type Server struct {
	Router *gin.Engine
	Config *config.Config
	DB     *database.Database
	Redis  *redis.Client
	Hub    *ws.Hub
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	setupLogger(cfg.LogLevel)

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	photoStore, err := storage.NewPhotoStore(context.Background(), storage.Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		CDNBase:   cfg.CDNBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("photo storage init failed")
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	otpMgr := otp.NewManager(rdb, cfg.OTPTTL)
	tracker := presence.NewTracker(rdb, cfg.PresenceTTL)
	wizardStore := wizard.NewStore(rdb)

	hub := ws.NewHub()
	go hub.Run()

	messageHandler := handlers.NewMessageHandler(dbConn, hub)

	deps := &routerDeps{
		cfg:     cfg,
		jwtMgr:  jwtMgr,
		redis:   rdb,
		authH:   handlers.NewAuthHandler(dbConn, jwtMgr, rdb, otpMgr),
		userH:   handlers.NewUserHandler(dbConn, tracker),
		swipeH:  handlers.NewSwipeHandler(dbConn, hub),
		matchH:  handlers.NewMatchHandler(dbConn),
		chatH:   handlers.NewChatHandler(dbConn, hub),
		zoneH:   handlers.NewHotZoneHandler(dbConn, tracker),
		photoH:  handlers.NewPhotoHandler(dbConn, photoStore),
		reportH: handlers.NewReportHandler(dbConn),
		wizardH: handlers.NewWizardHandler(dbConn, wizardStore, photoStore),
		wsH:     handlers.NewWebSocketHandler(hub, messageHandler),
	}

	router := gin.Default()
	APIEndpoints(router, deps)

	return &Server{
		Router: router,
		Config: cfg,
		DB:     dbConn,
		Redis:  rdb,
		Hub:    hub,
	}
}

// Run поднимает HTTP-сервер и аккуратно гасит его по SIGINT/SIGTERM
func (s *Server) Run() {
	srv := &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", s.Config.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server run error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	s.Hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
