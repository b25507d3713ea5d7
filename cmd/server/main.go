package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/match-seat-reservation/internal/config"
	"github.com/iliyamo/match-seat-reservation/internal/database"
	"github.com/iliyamo/match-seat-reservation/internal/handler"
	"github.com/iliyamo/match-seat-reservation/internal/queue"
	"github.com/iliyamo/match-seat-reservation/internal/repository"
	"github.com/iliyamo/match-seat-reservation/internal/router"
	"github.com/iliyamo/match-seat-reservation/internal/scheduler"
	"github.com/iliyamo/match-seat-reservation/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.Load()
	rcfg, err := config.LoadReservationConfig()
	if err != nil {
		log.Fatalf("reservation config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: unreachable; seat state cannot be served without it")
	}
	defer rdb.Close()

	amqpURL := config.AMQPURL()
	publisher := queue.NewPublisher(amqpURL, rcfg.AuditQueue)
	if rcfg.AuditConsumerEnabled {
		go func() {
			if err := queue.StartConfirmationConsumer(ctx, amqpURL, rcfg.AuditQueue, rcfg.AuditLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("audit-consumer: stopped: %v", err)
			}
		}()
	}

	svc := service.NewSeatService(repository.NewMatchRepo(db), rdb, publisher, service.Options{
		MaxSeatsPerRequest: rcfg.MaxSeatsPerRequest,
		HardCeiling:        rcfg.HardCeiling,
		AuditTimeout:       rcfg.AuditPublishTimeout,
	})
	stopReconcile, reconcileDone := scheduler.StartReconcileLoop(svc, rcfg.ReconcileInterval)

	e := echo.New()
	e.HideBanner = true

	h := handler.NewSeatHandler(svc)
	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, config.LoadCacheConfig(), rdb)
	router.RegisterSeats(e, h, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, h, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	stopReconcile()
	<-reconcileDone
	svc.Wait()
}
