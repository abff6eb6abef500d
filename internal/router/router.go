package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"guardianclima/internal/auth"
	"guardianclima/internal/config"
	"guardianclima/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	weatherHandler *handler.WeatherHandler,
	adviceHandler *handler.AdviceHandler,
	outfitHandler *handler.OutfitHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if cfg.CORSOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
			AllowCredentials: true,
		}))
	}

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	secured.POST("/user/preferences", userHandler.SavePreferences)
	secured.POST("/user/upgrade", userHandler.UpgradePlan)

	secured.GET("/v1/weather/:ciudad", weatherHandler.CurrentWeather)
	secured.GET("/v1/history", weatherHandler.History)

	secured.GET("/v1/ai-advice/:ciudad", adviceHandler.TextAdvice)
	secured.POST("/v1/ai-outfit", adviceHandler.OutfitAdvice)
	secured.POST("/v1/ai-travel-assistant", adviceHandler.TravelAdvice)

	secured.GET("/v1/outfits", outfitHandler.List)
	secured.POST("/v1/outfits", outfitHandler.Save)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
