package main

import (
	"context"
	"net/http"
	"os"

	_ "teamgoals/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"teamgoals/internal/auth"
	"teamgoals/internal/cache"
	"teamgoals/internal/config"
	"teamgoals/internal/db"
	"teamgoals/internal/handler"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
	"teamgoals/internal/router"
	"teamgoals/internal/service"
)

// @title Team Goals API
// @version 1.0
// @description Player and coach management API with role-based goals, process goals and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.ProcessGoal{},
			&model.Goal{},
			&model.Player{},
			&model.Coach{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("drop table failed (may not exist)")
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Coach{},
		&model.Player{},
		&model.Goal{},
		&model.ProcessGoal{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.WithError(err).Warn("redis unreachable, caching and refresh tokens degraded")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	coachRepo := repository.NewCoachRepository(gormDB)
	playerRepo := repository.NewPlayerRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)
	processGoalRepo := repository.NewProcessGoalRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	principalService := service.NewPrincipalService(userRepo, coachRepo, playerRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(userRepo, coachRepo, playerRepo, cacheClient)
	coachService := service.NewCoachService(coachRepo)
	playerService := service.NewPlayerService(playerRepo)
	goalService := service.NewGoalService(goalRepo, playerRepo)
	processGoalService := service.NewProcessGoalService(processGoalRepo, goalRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	coachHandler := handler.NewCoachHandler(coachService)
	playerHandler := handler.NewPlayerHandler(playerService)
	goalHandler := handler.NewGoalHandler(goalService)
	processGoalHandler := handler.NewProcessGoalHandler(processGoalService)

	// Register routes
	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		log,
		principalService,
		authHandler,
		userHandler,
		dashboardHandler,
		coachHandler,
		playerHandler,
		goalHandler,
		processGoalHandler,
	)

	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
