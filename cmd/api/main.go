package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"booking_rag/internal/adapters/country"
	"booking_rag/internal/adapters/csvsource"
	"booking_rag/internal/adapters/embedder"
	server "booking_rag/internal/adapters/http_server"
	"booking_rag/internal/adapters/observability"
	redisad "booking_rag/internal/adapters/redis"
	"booking_rag/internal/app"
	"booking_rag/internal/corpus"
	"booking_rag/internal/domain"
	"booking_rag/internal/shared"
	mysqlrepo "booking_rag/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// records
	all, err := loadBookings(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.BookingsSource).Msg("load bookings failed")
	}
	sample := corpus.Sample(all, cfg.CorpusSize, cfg.SampleSeed)
	log.Info().Int("loaded", len(all)).Int("sampled", len(sample)).Uint64("seed", cfg.SampleSeed).Msg("bookings sampled")

	// embeddings + index
	emb, closeEmb, err := newEmbedder(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize embedder")
	}
	defer closeEmb()

	c, err := corpus.Build(ctx, sample, emb, corpus.BuildOptions{BatchSize: cfg.EmbedBatchSize, Workers: cfg.EmbedWorkers})
	if err != nil {
		log.Fatal().Err(err).Msg("corpus build failed")
	}
	observability.SetCorpusSize(c.Store.Size())

	q := app.NewQueryService(c, emb, country.New())

	// http
	srv := server.New(15 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Int("corpus", c.Store.Size()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// loadBookings reads the full dataset from the configured source, in
// source order.
func loadBookings(ctx context.Context, cfg shared.Config) ([]domain.Booking, error) {
	switch cfg.BookingsSource {
	case shared.SourceCSV:
		raw, err := csvsource.ReadFile(cfg.BookingsCSV)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Booking, len(raw))
		for i, row := range raw {
			out[i] = app.MapBooking(row)
		}
		return out, nil

	case shared.SourceMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return nil, err
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db).ListBookings(ctx)

	default:
		return nil, fmt.Errorf("unknown BOOKINGS_SOURCE %q", cfg.BookingsSource)
	}
}

// newEmbedder builds the configured client, wrapped in the Redis cache when
// a TTL is set and Redis answers.
func newEmbedder(ctx context.Context, cfg shared.Config) (domain.Embedder, func(), error) {
	var base domain.Embedder
	switch cfg.Embedder {
	case shared.EmbedderTEI:
		cl, err := embedder.NewHTTPClient(cfg.EmbedBaseURL, cfg.EmbedAPIKey, cfg.EmbedRPS)
		if err != nil {
			return nil, nil, err
		}
		base = cl
	case shared.EmbedderOpenAI:
		base = embedder.NewOpenAI(embedder.OpenAIConfig{APIKey: cfg.EmbedAPIKey, BaseURL: cfg.EmbedBaseURL, Model: cfg.EmbedModel})
	default:
		return nil, nil, errors.New("EMBEDDER must be tei or openai")
	}
	log.Info().Str("embedder", cfg.Embedder).Str("model", cfg.EmbedModel).Msg("embedder ready")

	noop := func() {}
	if cfg.EmbedCacheTTL <= 0 {
		return base, noop, nil
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, embedding cache disabled")
		_ = cache.Close()
		return base, noop, nil
	}
	ttl := int(cfg.EmbedCacheTTL / time.Second)
	return embedder.NewCached(base, cache, cfg.EmbedModel, ttl), func() { _ = cache.Close() }, nil
}
