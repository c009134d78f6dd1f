package http

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/smartwaste/smartwaste-backend/docs"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
)

// RouterConfig reúne os handlers e o que os middlewares globais precisam
type RouterConfig struct {
	Auth           *AuthHandler
	Profile        *ProfileHandler
	Points         *CollectionPointHandler
	Health         *HealthHandler
	I18n           *middleware.I18nMiddleware
	Tokens         ports.TokenIssuer
	Logger         ports.Logger
	BaseURL        string
	AllowedOrigins string
	Sentry         bool
}

// NewRouter monta o engine gin com as rotas em /api
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Sentry {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// base URL usada nos problem details
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})
	router.Use(cfg.I18n.DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.RequireAuth(cfg.Tokens, responder{logger: cfg.Logger}.fail)

	api := router.Group("/api")
	{
		api.GET("/health", cfg.Health.Check)

		api.POST("/register", cfg.Auth.Register)
		api.POST("/complete-registration", requireAuth, cfg.Auth.CompleteRegistration)
		api.POST("/login", cfg.Auth.Login)
		api.POST("/forgot-password", cfg.Auth.ForgotPassword)
		api.POST("/reset-password", cfg.Auth.ResetPassword)

		oauth := api.Group("/auth/:provider")
		{
			oauth.GET("/login", cfg.Auth.OAuthLogin)
			oauth.GET("/callback", cfg.Auth.OAuthCallback)
		}

		points := api.Group("/collection-points")
		{
			points.GET("", cfg.Points.List)
			points.GET("/:id", cfg.Points.Get)
			points.POST("", requireAuth, cfg.Points.Create)
			points.PUT("/:id", requireAuth, cfg.Points.Update)
			points.DELETE("/:id", requireAuth, cfg.Points.Delete)
		}

		api.GET("/map", cfg.Points.Map)
		api.GET("/services", cfg.Points.Services)

		profile := api.Group("/profile", requireAuth)
		{
			profile.GET("", cfg.Profile.Get)
			profile.PUT("", cfg.Profile.Update)
			profile.DELETE("", cfg.Profile.Delete)
		}
	}

	return router
}
