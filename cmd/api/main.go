package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/events"
	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/preconsult-backend/internal/handlers/http"
	"github.com/rafabene/preconsult-backend/internal/handlers/middleware"
	"github.com/rafabene/preconsult-backend/internal/handlers/ws"
	"github.com/rafabene/preconsult-backend/internal/infrastructure/config"
	"github.com/rafabene/preconsult-backend/internal/infrastructure/contentgate"
	"github.com/rafabene/preconsult-backend/internal/infrastructure/i18n"
	"github.com/rafabene/preconsult-backend/internal/infrastructure/logging"
	"github.com/rafabene/preconsult-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/preconsult-backend/internal/services"
)

func main() {
	// Carregar variáveis do .env antes da configuração
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting preconsult backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n (locales embutidos)
	i18nService, err := i18n.NewService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Dispatcher de eventos de domínio
	dispatcher := events.NewInMemoryDispatcher()

	// Content gate (opcional por configuração)
	var gate ports.ContentGate
	if cfg.ContentGate.Enabled && cfg.ContentGate.URL != "" {
		gate = contentgate.NewClient(cfg.ContentGate.URL, cfg.ContentGate.Timeout, logger)
		logger.Info("content gate enabled",
			"url", cfg.ContentGate.URL,
			"fail_open", cfg.ContentGate.FailOpen,
		)
	}

	// Inicializar services
	userService := services.NewUserService(userRepo, logger)

	var identity ports.IdentityResolver
	switch cfg.Auth.Mode {
	case "jwt":
		identity = services.NewJWTIdentityResolver(userService, cfg.Auth.JWTSecret)
	default:
		identity = services.NewStaticIdentityResolver(
			userService,
			cfg.Auth.StaticEmail,
			cfg.Auth.StaticFirstName,
			cfg.Auth.StaticLastName,
		)
	}
	logger.Info("identity resolution configured", "mode", cfg.Auth.Mode)

	consultationService := services.NewConsultationService(consultationRepo, commentRepo, identity, uow, dispatcher, logger)
	commentService := services.NewCommentService(commentRepo, consultationRepo, userService, identity, gate, cfg.ContentGate.FailOpen, dispatcher, logger)

	// Inicializar handlers
	consultationHandler := httphandlers.NewConsultationHandler(consultationService)
	commentHandler := httphandlers.NewCommentHandler(commentService)
	analogHandler := httphandlers.NewAnalogHandler(commentService)
	moderatorHandler := httphandlers.NewModeratorHandler(commentService)
	userHandler := httphandlers.NewUserHandler(identity)
	feedHub := ws.NewFeedHub(dispatcher, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterCustomValidations()

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Middleware de extração do bearer token
	router.Use(middleware.BearerToken())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		consultations := v1.Group("/pre-consultations")
		{
			consultations.POST("", consultationHandler.Create)
			consultations.GET("", consultationHandler.List)

			// Rotas de moderação antes das rotas com :id para não colidir
			moderator := consultations.Group("/moderator")
			{
				moderator.GET("/blocked", moderatorHandler.ListBlocked)
				moderator.GET("/feed", feedHub.Handle)
				moderator.PATCH("/:commentId/unblock", moderatorHandler.Unblock)
			}

			// Comentários analógicos (cartas, formulários presenciais)
			consultations.POST("/analog/:id/comments", analogHandler.Create)

			consultations.GET("/:id", consultationHandler.GetByID)
			consultations.PUT("/:id", consultationHandler.Update)
			consultations.DELETE("/:id", consultationHandler.Deactivate)

			consultations.POST("/:id/comments", commentHandler.Create)
			consultations.GET("/:id/comments", commentHandler.ListActive)
			consultations.PATCH("/:id/comments/:commentId/block", commentHandler.Block)
			consultations.POST("/:id/comments/:commentId/approve", commentHandler.ToggleApproval)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", userHandler.Me)
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	feedHub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
