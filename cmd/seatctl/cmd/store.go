package cmd

import (
	"context"
	"fmt"

	"github.com/iliyamo/match-seat-reservation/internal/config"
	"github.com/iliyamo/match-seat-reservation/internal/database"
	"github.com/iliyamo/match-seat-reservation/internal/repository"
	"github.com/iliyamo/match-seat-reservation/internal/service"
)

// openService connects to MySQL and Redis the way the server does.  No
// audit publisher is attached.
func openService(ctx context.Context) (*service.SeatService, func(), error) {
	cfg := config.Load()
	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return nil, nil, err
	}
	rdb := config.NewRedisClient()
	if rdb == nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("redis is unreachable")
	}
	svc := service.NewSeatService(repository.NewMatchRepo(db), rdb, nil, service.Options{})
	return svc, func() {
		_ = rdb.Close()
		_ = db.Close()
	}, nil
}
