// Command server runs the restaurant reservation API.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/availability"
	"github.com/briochebrew/restaurant-reservation/internal/booking"
	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/config"
	"github.com/briochebrew/restaurant-reservation/internal/database"
	"github.com/briochebrew/restaurant-reservation/internal/handler"
	"github.com/briochebrew/restaurant-reservation/internal/middleware"
	"github.com/briochebrew/restaurant-reservation/internal/queue"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
	"github.com/briochebrew/restaurant-reservation/internal/router"
	queue_publisher "github.com/briochebrew/restaurant-reservation/internal/service"
	"github.com/briochebrew/restaurant-reservation/internal/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	staffRepo := repository.NewStaffRepo(db)
	seedAdmin(ctx, staffRepo, cfg)

	reservationRepo := repository.NewReservationRepo(db)
	blockRepo := repository.NewBlockRepo(db)
	sequenceRepo := repository.NewSequenceRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	offerRepo := repository.NewOfferRepo(db)

	layout := catalog.Default()
	availabilitySvc := availability.New(layout, reservationRepo, blockRepo)
	bookingSvc := booking.New(db, layout, reservationRepo, blockRepo, sequenceRepo, queue_publisher.Publisher{})

	// Background consumer writes confirmation lines to logs/reservations.log.
	// It reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true

	availHandler := handler.NewAvailabilityHandler(availabilitySvc)
	resHandler := handler.NewReservationHandler(bookingSvc, reservationRepo)
	blockHandler := handler.NewBlockHandler(blockRepo, layout)
	menuHandler := handler.NewMenuHandler(menuRepo)
	offerHandler := handler.NewOfferHandler(offerRepo)
	orderHandler := handler.NewOrderHandler(orderRepo)
	authHandler := handler.NewAuthHandler(staffRepo, cfg.JWTSecret, cfg.AccessTTLMin)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, availHandler, resHandler, menuHandler, offerHandler, orderHandler, limiter, cache)
	router.RegisterAuth(e, authHandler)
	router.RegisterAdmin(e, cfg.JWTSecret, authHandler, resHandler, blockHandler, menuHandler, offerHandler, orderHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// when both are set.  The insert is idempotent, so restarting with the same
// credentials is harmless.
func seedAdmin(ctx context.Context, staff *repository.StaffRepo, cfg config.Config) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if err := staff.EnsureAdmin(ctx, email, hash); err != nil {
		log.Fatalf("seed admin account: %v", err)
	}
}
