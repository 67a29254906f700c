package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/server/http/handlers"
	"github.com/polkiloo/topdonators/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	donationHandler := handlers.NewDonationHandler(facade)
	passwordHandler := handlers.NewPasswordHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Live)
	engine.GET("/readyz", healthHandler.Ready)

	api := engine.Group("/api")
	api.GET("/leaderboard", donationHandler.Leaderboard)
	api.POST("/payments/webhook", donationHandler.Webhook)
	api.POST("/password/forgot", passwordHandler.Forgot)
	api.POST("/password/reset", passwordHandler.Reset)
	api.GET("/check-auth", middleware.AuthRequired(facade), profileHandler.CheckAuth)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", authHandler.Logout)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", profileHandler.Get)
	userAuth.PATCH("/profile", profileHandler.Update)
	userAuth.POST("/checkout", donationHandler.Checkout)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		// cors.New panics on an empty allow-list
		cfg.AllowOrigins = []string{"http://localhost:8000"}
	}
	return cfg
}
