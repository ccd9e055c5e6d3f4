package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ruanfdev/cleanbreak-backend/internal/handlers"
	"github.com/ruanfdev/cleanbreak-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	OAuthHandler   *handlers.OAuthHandler
	PageHandler    *handlers.PageHandler
	QuizHandler    *handlers.QuizHandler
	RelapseHandler *handlers.RelapseHandler
	StreakHandler  *handlers.StreakHandler
	TriggerHandler *handlers.TriggerHandler
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	AccessGate     *middleware.AccessGate
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Pages: every navigable path goes through the access gate.
	pages := router.Group("/")
	pages.Use(cfg.AccessGate.Gate())
	pages.GET("", cfg.PageHandler.Login)
	pages.GET("/quiz", cfg.PageHandler.Quiz)
	pages.GET("/dashboard", cfg.PageHandler.Dashboard)
	pages.GET("/auth/callback", cfg.OAuthHandler.Callback)

	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/quiz/questions", cfg.QuizHandler.Questions)
	protected.POST("/quiz", cfg.QuizHandler.Submit)
	protected.POST("/relapses", cfg.RelapseHandler.Register)
	protected.GET("/streaks", cfg.StreakHandler.History)
	protected.GET("/streaks/active", cfg.StreakHandler.Active)
	protected.POST("/triggers", cfg.TriggerHandler.Log)
	protected.GET("/triggers", cfg.TriggerHandler.Recent)

	return router
}
