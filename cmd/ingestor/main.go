package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"booking_rag/internal/adapters/csvsource"
	"booking_rag/internal/adapters/observability"
	"booking_rag/internal/app"
	"booking_rag/internal/shared"
	mysqlrepo "booking_rag/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("file", cfg.BookingsCSV).
		Int("workers", cfg.IngestWorkers).
		Int("chunk", cfg.IngestChunk).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	ing := app.NewIngestionService(csvsource.ReadFile, repo, cfg.IngestChunk, cfg.IngestWorkers)

	start := time.Now()
	n, err := ing.IngestFile(ctx, cfg.BookingsCSV)
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
	total, err := repo.CountBookings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count bookings failed")
	}
	log.Info().Int("rows", n).Int("table_rows", total).Dur("took", time.Since(start)).Msg("ingestion completed")
}
