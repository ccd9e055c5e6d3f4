package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ruanfdev/cleanbreak-backend/internal/db"
	"github.com/ruanfdev/cleanbreak-backend/internal/handlers"
	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/middleware"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/server"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
	"github.com/ruanfdev/cleanbreak-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables...")
	jwtSecretKey := utils.MustGetEnv("JWT_SECRET_KEY", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	cookieSecure := utils.GetEnv("SESSION_COOKIE_SECURE", "false", log) == "true"
	allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log), ",")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	userProfileRepo := repos.NewUserProfileRepo(thePG, log)
	streakRepo := repos.NewStreakRepo(thePG, log)
	relapseRepo := repos.NewRelapseRepo(thePG, log)
	triggerRepo := repos.NewTriggerRepo(thePG, log)

	// Quiz catalog
	catalog, err := services.LoadQuizCatalog()
	if err != nil {
		log.Fatal("Could not load quiz catalog", "error", err)
	}

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)

	var oauthProvider services.OAuthProvider
	githubClientID := utils.GetEnv("GITHUB_CLIENT_ID", "", log)
	githubClientSecret := utils.GetEnv("GITHUB_CLIENT_SECRET", "", log)
	if githubClientID != "" && githubClientSecret != "" {
		oauthProvider, err = services.NewGithubProvider(&http.Client{Timeout: 10 * time.Second}, githubClientID, githubClientSecret)
		if err != nil {
			log.Fatal("Could not init GitHub OAuth provider", "error", err)
		}
	} else {
		log.Warn("GitHub OAuth not configured; callback logins will fail")
	}
	oauthService := services.NewOAuthService(thePG, log, oauthProvider, userRepo, authService)

	onboardingService := services.NewOnboardingService(thePG, log, catalog, userProfileRepo, streakRepo)
	streakService := services.NewStreakService(thePG, log, streakRepo)
	relapseService := services.NewRelapseService(thePG, log, streakRepo, relapseRepo)
	dashboardService := services.NewDashboardService(thePG, log, userProfileRepo, streakRepo, relapseRepo)
	triggerService := services.NewTriggerService(thePG, log, triggerRepo)
	userService := services.NewUserService(thePG, log, userRepo)

	// Handlers
	log.Info("Setting up handlers...")
	sessionCookie := handlers.DefaultSessionCookie(cookieSecure, refreshTokenTTL)
	authHandler := handlers.NewAuthHandler(authService, sessionCookie)
	oauthHandler := handlers.NewOAuthHandler(log, oauthService, onboardingService, sessionCookie)
	pageHandler := handlers.NewPageHandler(log, catalog, onboardingService, dashboardService)
	quizHandler := handlers.NewQuizHandler(catalog, onboardingService)
	relapseHandler := handlers.NewRelapseHandler(relapseService)
	streakHandler := handlers.NewStreakHandler(streakService)
	triggerHandler := handlers.NewTriggerHandler(triggerService)
	userHandler := handlers.NewUserHandler(userService)

	// Middleware
	log.Info("Setting up middleware...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService, sessionCookie.Name)
	accessGate := middleware.NewAccessGate(log, authService, userProfileRepo, sessionCookie.Name)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		OAuthHandler:   oauthHandler,
		PageHandler:    pageHandler,
		QuizHandler:    quizHandler,
		RelapseHandler: relapseHandler,
		StreakHandler:  streakHandler,
		TriggerHandler: triggerHandler,
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
		AccessGate:     accessGate,
		AllowOrigins:   allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
