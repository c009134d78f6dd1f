package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/docs"
	httphandlers "github.com/smartwaste/smartwaste-backend/internal/handlers/http"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/auth"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/i18n"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/logging"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/mail"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/persistence/postgres"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

//	@title						SmartWaste API
//	@version					1.0
//	@description				Pontos de coleta de resíduos, registro e autenticação.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting smartwaste backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Sentry é opcional
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Env,
		}); err != nil {
			logger.Error("failed to initialize sentry", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			log.Fatal(err)
		}
		if err := postgres.SeedWasteTypes(context.Background(), db); err != nil {
			logger.Error("failed to seed waste types", "error", err)
			log.Fatal(err)
		}
	}

	// Inicializar i18n
	i18nService, err := i18n.Load(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
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
	operatorRepo := postgres.NewOperatorRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	pointRepo := postgres.NewCollectionPointRepository(db)
	wasteTypeRepo := postgres.NewWasteTypeRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Infraestrutura de autenticação
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	tokens := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
	states := auth.NewStateCodec(cfg.OAuth.StateSecret)
	providers := auth.NewOAuthProviders(cfg.OAuth)
	mailer := mail.New(cfg.SMTP, logger)

	// Inicializar services
	provisioner := services.NewAccountProvisioner(userRepo, operatorRepo, accountRepo, hasher, uow, logger)
	registrationService := services.NewRegistrationService(userRepo, operatorRepo, provisioner, uow, logger)
	authService := services.NewAuthService(services.NewCredentialVerifier(userRepo, hasher), provisioner, userRepo, operatorRepo, tokens, logger)
	resetService := services.NewPasswordResetService(userRepo, hasher, auth.ResetTokenGenerator{}, mailer, cfg.Server.AppBaseURL, logger)
	profileService := services.NewProfileService(userRepo, operatorRepo, uow, logger)
	pointService := services.NewCollectionPointService(pointRepo, wasteTypeRepo, operatorRepo, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if u, err := url.Parse(cfg.Server.BaseURL); err == nil {
		docs.SwaggerInfo.Host = u.Host
	}

	ping := func(ctx context.Context) error { return postgres.Ping(ctx, db) }
	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Auth:           httphandlers.NewAuthHandler(registrationService, authService, resetService, providers, states, cfg.Env == "production", logger),
		Profile:        httphandlers.NewProfileHandler(profileService, logger),
		Points:         httphandlers.NewCollectionPointHandler(pointService, logger),
		Health:         httphandlers.NewHealthHandler(ping, cfg.Env, logger),
		I18n:           middleware.NewI18nMiddleware(i18nService),
		Tokens:         tokens,
		Logger:         logger,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Sentry:         cfg.Sentry.DSN != "",
	})

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
			"oauth_providers", len(providers),
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
