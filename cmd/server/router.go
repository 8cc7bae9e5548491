package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/meunion/campus-match/internal/config"
	"github.com/meunion/campus-match/internal/handlers"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/pkg/auth"
)

type routerDeps struct {
	cfg    *config.Config
	jwtMgr *auth.JWTManager
	redis  *redis.Client

	authH   *handlers.AuthHandler
	userH   *handlers.UserHandler
	swipeH  *handlers.SwipeHandler
	matchH  *handlers.MatchHandler
	chatH   *handlers.ChatHandler
	zoneH   *handlers.HotZoneHandler
	photoH  *handlers.PhotoHandler
	reportH *handlers.ReportHandler
	wizardH *handlers.WizardHandler
	wsH     *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, d *routerDeps) {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = d.cfg.AllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.authH.Register)
		authGroup.POST("/login", d.authH.Login)
		authGroup.POST("/logout", d.authH.Logout)
		authGroup.POST("/phone", d.authH.PhoneStart)
		authGroup.POST("/phone/verify", d.authH.PhoneVerify)
		authGroup.POST("/google", d.authH.GoogleSignIn(d.cfg.GoogleClientID))
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(d.jwtMgr, d.redis))
	{
		api.GET("/me", d.userH.GetMe)
		api.PUT("/me", d.userH.UpdateMe)
		api.DELETE("/me", d.userH.DeleteMe)
		api.PATCH("/me/settings", d.userH.UpdateSettings)
		api.POST("/me/location", d.userH.UpdateLocation)
		api.GET("/users/:id", d.userH.GetUser)

		api.GET("/candidates", d.swipeH.GetCandidates)
		api.POST("/swipes", d.swipeH.RecordSwipe)
		api.GET("/likers", d.swipeH.GetLikers)

		api.GET("/matches", d.matchH.GetMyMatches)
		api.GET("/matches/:id/messages", d.chatH.GetMessages)
		api.POST("/matches/:id/messages", d.chatH.SendMessage)
		api.POST("/matches/:id/read", d.chatH.MarkRead)

		api.GET("/hot-zones", d.zoneH.GetHotZones)

		api.POST("/photos", d.photoH.Upload)
		api.DELETE("/photos", d.photoH.Delete)

		api.POST("/reports", d.reportH.CreateReport)

		api.GET("/profile-setup", d.wizardH.GetState)
		api.POST("/profile-setup/next", d.wizardH.Advance)
		api.POST("/profile-setup/back", d.wizardH.Back)
		api.POST("/profile-setup/submit", d.wizardH.Submit)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(d.jwtMgr, d.redis), d.wsH.HandleWebSocket)
}
