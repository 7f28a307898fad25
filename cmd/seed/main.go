package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/config"
	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/domain/repository"
	pginfra "github.com/oksasatya/travel-story-api/internal/infrastructure/postgres"
	"github.com/oksasatya/travel-story-api/pkg/helpers"
)

const (
	demoEmail    = "demo@travelstory.local"
	demoPassword = "password123"
	demoName     = "Demo Traveler"
)

func demoStories(userID, placeholder string) []entity.Story {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []entity.Story{
		{UserID: userID, Title: "Cherry blossoms in Kyoto", Story: "Philosopher's Path at dawn, before the crowds.",
			VisitedLocation: []string{"Japan", "Kyoto"}, IsFavourite: true, ImageURL: placeholder,
			VisitedDate: day(2024, 4, 2), Spending: 1200, SpendingCategory: entity.CategoryAccommodation, TripDuration: 6},
		{UserID: userID, Title: "Street food in Hanoi", Story: "Bun cha on plastic stools in the Old Quarter.",
			VisitedLocation: []string{"Vietnam"}, ImageURL: placeholder,
			VisitedDate: day(2024, 3, 15), Spending: 85, SpendingCategory: entity.CategoryFood, TripDuration: 3},
		{UserID: userID, Title: "Ferry hopping", Story: "Three islands in four days.",
			VisitedLocation: []string{"Greece", "Santorini"}, IsFavourite: true, ImageURL: placeholder,
			VisitedDate: day(2024, 3, 2), Spending: 240, SpendingCategory: entity.CategoryTransport, TripDuration: 4},
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{
		DSN:         cfg.PostgresDSN(),
		AppName:     cfg.AppName + "-seed",
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	stories := pginfra.NewStoryRepository(pool)

	u, err := users.GetByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		helpers.LogInfo(logger, "demo user already seeded", logrus.Fields{"user_id": u.ID, "email": demoEmail})
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.Fatalf("lookup demo user: %v", err)
	}

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	u = &entity.User{Email: demoEmail, Password: hash, FullName: demoName}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	if err := users.MarkVerified(ctx, u.ID); err != nil {
		log.Fatalf("failed to verify user: %v", err)
	}

	for _, st := range demoStories(u.ID, cfg.PlaceholderImageURL) {
		st := st
		if err := stories.Create(ctx, &st); err != nil {
			log.Fatalf("failed to seed story %q: %v", st.Title, err)
		}
	}
	helpers.LogInfo(logger, "seeded demo data", logrus.Fields{"user_id": u.ID, "email": demoEmail, "stories": 3})
}
