package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"food_delivery/internal/clock"
	"food_delivery/internal/config"
	"food_delivery/internal/model"
	"food_delivery/internal/repository"
	"food_delivery/internal/service"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Record Store ---
	store, closeStore, err := config.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer closeStore()

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	// --- Initialize Services ---
	sessionService := service.NewSessionService(sessionRepo)
	authService := service.NewAuthService(userRepo, sessionService, cfg.BcryptCost)
	profileService := service.NewProfileService(userRepo, sessionService)
	orderService := service.NewOrderService(orderRepo, sessionService, clock.System{}, cfg.TickInterval)

	if cfg.LoginPhone != "" {
		if _, err := authService.Login(ctx, cfg.LoginPhone, cfg.LoginPIN); err != nil {
			log.Fatalf("Failed to log in %s: %v", cfg.LoginPhone, err)
		}
	}

	user, err := profileService.Get(ctx)
	if errors.Is(err, service.ErrNotLoggedIn) {
		log.Println("INFO: nobody is logged in; nothing to track")
		return
	}
	if err != nil {
		log.Fatalf("Failed to read profile: %v", err)
	}
	name := user.DisplayName
	if name == "" {
		name = user.Phone
	}
	log.Printf("INFO: tracking orders for %s", name)

	// --- Live Order Feed ---
	feed, err := orderService.OnTick(ctx, model.SelectAll, func(orders []model.Order) {
		for _, o := range orders {
			log.Printf("INFO: %s -> %s: %s (%d min left)", o.SenderName, o.RecipientName, o.Status, o.MinutesRemaining)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start order feed: %v", err)
	}

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Println("Shutting down tracker...")
	feed.Stop()
	log.Println("Tracker exiting")
}
