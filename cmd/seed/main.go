package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/config"
	"github.com/vaktplan-dev/roster-manager/backend/internal/repository"
	"github.com/vaktplan-dev/roster-manager/backend/internal/seed"
	"github.com/vaktplan-dev/roster-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var orgID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: seed demo organization, 2: insert random employees)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&orgID, "org-id", 0, "organization to insert random employees into")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		seed.SeedDemoData(repo, cfg)
	case 2:
		if orgID <= 0 {
			slog.Error("please pass a valid organization id")
			return
		}
		if n <= 0 {
			slog.Error("please pass a valid employee count")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			emp := utils.GenerateRandomEmployee(orgID, "example.is")
			if err := repo.CreateEmployee(emp); err != nil {
				slog.Error("failed to insert employee", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("employees inserted", slog.Int("count", cnt))
	default:
		slog.Error("unknown operation")
	}
}
