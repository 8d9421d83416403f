package main // entry point of the seat booking service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-seat-booking/internal/apiclient"
	"github.com/iliyamo/event-seat-booking/internal/booking"
	"github.com/iliyamo/event-seat-booking/internal/cache"
	"github.com/iliyamo/event-seat-booking/internal/config"
	"github.com/iliyamo/event-seat-booking/internal/database"
	"github.com/iliyamo/event-seat-booking/internal/handler"
	"github.com/iliyamo/event-seat-booking/internal/middleware"
	"github.com/iliyamo/event-seat-booking/internal/queue"
	"github.com/iliyamo/event-seat-booking/internal/repository"
	"github.com/iliyamo/event-seat-booking/internal/router"
	"github.com/iliyamo/event-seat-booking/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend := openBackend(ctx, cfg)
	defer closeBackend()

	// nil when Redis is down; mirror, cache and limiter all degrade
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher booking.Publisher
	if cfg.QueueEnabled {
		publisher = service.QueuePublisher{URL: cfg.RabbitURL}
		consumer := queue.Consumer{URL: cfg.RabbitURL, LogDir: cfg.BookingLogDir}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	sc := cfg.Seating
	svc := service.NewSeatService(backend, service.Options{
		Mirror:      cache.NewMirror(rdb, sc.MirrorKeyNS, sc.MirrorTTL),
		Publisher:   publisher,
		Sessions:    service.NewSessionStore(sc.SessionTTL, sc.SessionMax, nil),
		SeatsPerRow: sc.SeatsPerRow,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	router.RegisterRoutes(e)
	router.RegisterSeats(e, handler.NewSeatHandler(svc), cfg.JWTSecret, router.SeatMiddleware{
		LayoutCache: middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		BookLimit:   middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, backend=%s)", addr, cfg.Env, cfg.BackendMode)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openBackend picks the system of record for BACKEND_MODE.
func openBackend(ctx context.Context, cfg config.Config) (service.Backend, func()) {
	if cfg.BackendMode != config.BackendMySQL {
		client := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout)
		log.Printf("backend: booking API at %s", client.BaseURL())
		return client, func() {}
	}

	db, err := database.Open(ctx, database.Options{
		User:     cfg.DBUser,
		Pass:     cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if cfg.DBMigrate {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
	}
	return repository.NewStore(db), func() { _ = db.Close() }
}
