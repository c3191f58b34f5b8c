package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"teamgoals/internal/config"
	"teamgoals/internal/handler"
	"teamgoals/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logrus.Logger,
	principalService service.PrincipalService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	dashboardHandler *handler.DashboardHandler,
	coachHandler *handler.CoachHandler,
	playerHandler *handler.PlayerHandler,
	goalHandler *handler.GoalHandler,
	processGoalHandler *handler.ProcessGoalHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			}).Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), LoadPrincipal(principalService))

	secured.GET("/dashboard", dashboardHandler.GetDashboard)
	secured.GET("/profile", userHandler.GetProfile)

	// User routes (admin only, enforced in the service)
	secured.POST("/users", userHandler.CreateUser)

	// Coach routes
	secured.GET("/coaches", coachHandler.ListCoaches)

	// Player routes
	secured.GET("/players", playerHandler.ListPlayers)
	secured.GET("/players/:id", playerHandler.GetPlayer)

	// Goal routes
	secured.GET("/goals", goalHandler.ListGoals)
	secured.POST("/goals", goalHandler.CreateGoal)
	secured.GET("/goals/:id", goalHandler.GetGoal)
	secured.PUT("/goals/:id", goalHandler.UpdateGoal)
	secured.POST("/goals/:id/progress", goalHandler.UpdateGoalProgress)

	// Process goal routes
	secured.GET("/goals/:id/process-goals", processGoalHandler.ListProcessGoals)
	secured.POST("/goals/:id/process-goals", processGoalHandler.CreateProcessGoal)
	secured.PUT("/process-goals/:id", processGoalHandler.UpdateProcessGoal)
	secured.POST("/process-goals/:id/progress", processGoalHandler.UpdateProcessGoalProgress)
}

// LoadPrincipal resolves the authenticated user and its role profile and
// stashes the result for handlers. Runs after the JWT middleware.
func LoadPrincipal(principalService service.PrincipalService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			userID, ok := claims["user_id"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			principal, err := principalService.Load(c.Request().Context(), uint(userID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			c.Set("principal", principal)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
