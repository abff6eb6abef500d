package main

import (
	"log"
	"net/http"
	"os"

	_ "guardianclima/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"guardianclima/internal/ai"
	"guardianclima/internal/auth"
	"guardianclima/internal/config"
	"guardianclima/internal/db"
	"guardianclima/internal/handler"
	"guardianclima/internal/model"
	"guardianclima/internal/repository"
	"guardianclima/internal/router"
	"guardianclima/internal/service"
	"guardianclima/internal/weather"
)

// @title GuardianClima API
// @version 1.0
// @description Weather and wardrobe advice backend with freemium quotas and JWT authentication.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Outfit{},
			&model.WeatherQuery{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.WeatherQuery{},
		&model.Outfit{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	historyRepo := repository.NewHistoryRepository(gormDB)
	outfitRepo := repository.NewOutfitRepository(gormDB)

	// Initialize gateways
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	weatherClient := weather.NewClient(nil, cfg.WeatherBaseURL, cfg.WeatherAPIKey)

	// The AI endpoints degrade to a fixed message when no key is set.
	var advisor ai.Advisor
	if cfg.GenAIAPIKey != "" {
		advisor = ai.NewClient(cfg.GenAIAPIKey, cfg.GenAIBaseURL)
	} else {
		log.Println("GENAI_API_KEY not set, AI advice disabled")
	}

	// Initialize services
	quotaService := service.NewQuotaService(userRepo, service.QuotaLimits{
		OutfitAdvice: cfg.AIOutfitLimit,
		TravelAdvice: cfg.AITravelLimit,
	})
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, jwtService)
	weatherService := service.NewWeatherService(weatherClient, historyRepo)
	adviceService := service.NewAdviceService(userRepo, outfitRepo, weatherClient, advisor, quotaService, jwtService)
	historyService := service.NewHistoryService(historyRepo, outfitRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	weatherHandler := handler.NewWeatherHandler(weatherService, historyService)
	adviceHandler := handler.NewAdviceHandler(adviceService)
	outfitHandler := handler.NewOutfitHandler(historyService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		weatherHandler,
		adviceHandler,
		outfitHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
