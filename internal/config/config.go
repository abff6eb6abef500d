package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	MySQLDSN       string
	JWTSecret      string
	WeatherAPIKey  string
	WeatherBaseURL string
	GenAIAPIKey    string
	GenAIBaseURL   string
	CORSOrigin     string
	SwaggerHost    string
	AIOutfitLimit  int
	AITravelLimit  int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/guardianclima?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		GenAIAPIKey:    os.Getenv("GENAI_API_KEY"),
		GenAIBaseURL:   getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		AIOutfitLimit:  getEnvInt("AI_OUTFIT_LIMIT", 3),
		AITravelLimit:  getEnvInt("AI_TRAVEL_LIMIT", 1),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
