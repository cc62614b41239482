package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"enrollhub/internal/auth"
	"enrollhub/internal/config"
	"enrollhub/internal/handler"
	"enrollhub/internal/repository"
	"enrollhub/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenService *auth.TokenService,
	tokens repository.TokenRepository,
	authHandler *handler.AuthHandler,
	courseHandler *handler.CourseHandler,
	scheduleHandler *handler.TrainingScheduleHandler,
	studentHandler *handler.StudentHandler,
	enrollmentHandler *handler.EnrollmentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = validation.New()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Secured routes: the signed token must resolve to a live access_tokens
	// row, so revoked tokens fail here even with a valid signature.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, authValue string) (interface{}, error) {
			claims, err := tokenService.Parse(authValue)
			if err != nil {
				return nil, err
			}
			return tokens.FindByToken(c.Request().Context(), claims.ID)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthenticated."})
		},
	}))

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)

	// Course routes
	secured.GET("/courses", courseHandler.List)
	secured.POST("/courses", courseHandler.Create)
	secured.GET("/courses/:id", courseHandler.Get)
	secured.PUT("/courses/:id", courseHandler.Update)
	secured.DELETE("/courses/:id", courseHandler.Delete)

	// Student routes. Echo matches the static /students/user segment before :id.
	secured.GET("/students/user/:userId", studentHandler.GetByUserID)
	secured.POST("/students/user/:userId", studentHandler.CreateForUser)
	secured.GET("/students", studentHandler.List)
	secured.POST("/students", studentHandler.Create)
	secured.GET("/students/:id", studentHandler.Get)
	secured.PUT("/students/:id", studentHandler.Update)
	secured.DELETE("/students/:id", studentHandler.Delete)

	// Training schedule routes
	secured.GET("/training-schedules", scheduleHandler.List)
	secured.POST("/training-schedules", scheduleHandler.Create)
	secured.GET("/training-schedules/:id", scheduleHandler.Get)
	secured.PUT("/training-schedules/:id", scheduleHandler.Update)
	secured.DELETE("/training-schedules/:id", scheduleHandler.Delete)

	// Enrollment routes
	secured.POST("/training-opt-in-out", enrollmentHandler.OptInOut)
	secured.GET("/student-training-statuses", enrollmentHandler.StatusList)
}
