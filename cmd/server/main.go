package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/booking"
	"github.com/iliyamo/movie-reservation/internal/catalog"
	"github.com/iliyamo/movie-reservation/internal/config"
	"github.com/iliyamo/movie-reservation/internal/database"
	"github.com/iliyamo/movie-reservation/internal/handler"
	"github.com/iliyamo/movie-reservation/internal/middleware"
	"github.com/iliyamo/movie-reservation/internal/queue"
	"github.com/iliyamo/movie-reservation/internal/repository"
	"github.com/iliyamo/movie-reservation/internal/router"
	queue_publisher "github.com/iliyamo/movie-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	reservations := repository.NewReservationRepo(db)
	engine := booking.NewEngine(reservations)

	authH := handler.NewAuthHandler(cfg, users)
	moviesH := handler.NewMovieHandler(catalog.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey))
	reservationsH := handler.NewReservationHandler(engine, queue_publisher.PublishReservationCreated)

	// Background consumer mirrors reservation.created events into a log file.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, middleware.NewLoginRateLimit(config.LoadRateLimitConfig(), rdb))
	router.RegisterMovies(e, moviesH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterReservations(e, reservationsH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
