package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/config"
	"github.com/jaeminyoo/homepoint/internal/handlers"
	"github.com/jaeminyoo/homepoint/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	setupLogging(cfg.AppEnv)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Str("env", cfg.AppEnv).Msg("starting server")
	return r.Run(":" + port)
}

func setupLogging(appEnv string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if appEnv != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		// Authenticated by HMAC signature, not a bearer token.
		public.POST("/webhooks/payment", handlers.PaymentWebhook)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		orderProtected := protected.Group("/orders")
		{
			orderProtected.POST("", handlers.CreateOrder)
			orderProtected.GET("/:orderId", handlers.GetOrder)
			orderProtected.POST("/:orderId/session", handlers.CreateSession)
			orderProtected.POST("/:orderId/confirm", handlers.ConfirmPayment)
		}

		pointProtected := protected.Group("/points")
		{
			pointProtected.GET("/balance", handlers.GetBalance)
			pointProtected.GET("/ledger", handlers.ListLedger)
			pointProtected.POST("/debit", handlers.DebitPoints)
		}

		protected.GET("/partners/me", handlers.GetMyPartner)
	}
}
