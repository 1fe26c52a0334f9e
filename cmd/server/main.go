package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"ticketr/internal/config"
	"ticketr/internal/database"
	"ticketr/internal/handler"
	"ticketr/internal/middleware"
	"ticketr/internal/purchase"
	"ticketr/internal/queue"
	"ticketr/internal/repository"
	"ticketr/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	var events repository.EventStore
	var users repository.UserStore
	switch cfg.StoreDriver {
	case "memory":
		log.Println("using in-memory store; all data is lost on shutdown")
		events = repository.NewMemoryEventStore()
		users = repository.NewMemoryUserStore()
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		events = repository.NewEventRepo(db)
		users = repository.NewUserRepo(db)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	engine := purchase.NewEngine(events)

	authHandler := handler.NewAuthHandler(cfg, users)
	eventHandler := handler.NewEventHandler(events, engine)
	ticketHandler := handler.NewTicketHandler(engine)

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret, users)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, jwtAuth)
	router.RegisterEvents(e, eventHandler, ticketHandler, jwtAuth, cache, ratelimit)

	// delivers verification mails from the user.signup queue
	go func() {
		if err := queue.StartMailerConsumer(); err != nil {
			log.Printf("mailer consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.StoreDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
