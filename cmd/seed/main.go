package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guardianclima/internal/config"
	"guardianclima/internal/db"
	"guardianclima/internal/model"
	"guardianclima/internal/repository"
)

// demoUser describes a seed account for local development.
type demoUser struct {
	Username string
	Email    string
	Password string
	Plan     string
}

var demoUsers = []demoUser{
	{Username: "ana", Email: "ana@example.com", Password: "password123", Plan: model.PlanFree},
	{Username: "bruno", Email: "bruno@example.com", Password: "password123", Plan: model.PlanPremium},
	{Username: "carla", Email: "carla@example.com", Password: "password123", Plan: model.PlanPro},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.WeatherQuery{}, &model.Outfit{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, du := range demoUsers {
		if _, err := userRepo.FindByEmail(ctx, du.Email); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", du.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", du.Email, err)
		}

		user := &model.User{
			Username:     du.Username,
			Email:        du.Email,
			PasswordHash: string(hash),
			Plan:         du.Plan,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
