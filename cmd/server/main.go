package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	appmw "github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)

	// The engine is the authority for every booking decision; MySQL is
	// replayed into it once at boot and written behind thereafter.
	eng := booking.New()
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.RebuildEngine(bootCtx, eng, users, restaurants, tables, reservations); err != nil {
		cancel()
		log.Fatalf("rebuild engine: %v", err)
	}
	if n, err := tokens.DeleteExpired(bootCtx, time.Now().UTC()); err == nil && n > 0 {
		log.Printf("purged %d expired refresh tokens", n)
	}
	cancel()

	rdb := config.NewRedisClient()
	cacheMW := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authH := handler.NewAuthHandler(cfg, users, tokens, eng)
	publicH := handler.NewPublicHandler(eng)
	customerH := handler.NewCustomerHandler(eng, reservations, cfg.AMQPURL)
	managerH := handler.NewManagerHandler(eng, restaurants, tables)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, customerH, cacheMW)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret, limitMW)
	router.RegisterManager(e, managerH, cfg.JWTSecret)

	// The consumer writes the reservation audit log; it reconnects on
	// its own and never blocks startup.
	go func() {
		if err := queue.StartReservationConsumer(cfg.AMQPURL); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
