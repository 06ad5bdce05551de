package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"

	EmbedderTEI    = "tei"
	EmbedderOpenAI = "openai"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	BookingsSource string
	BookingsCSV    string
	MySQLDSN       string

	RedisAddr string
	RedisDB   int
	RedisPass string

	CorpusSize int
	SampleSeed uint64

	Embedder       string
	EmbedBaseURL   string
	EmbedAPIKey    string
	EmbedModel     string
	EmbedRPS       int
	EmbedBatchSize int
	EmbedWorkers   int
	EmbedCacheTTL  time.Duration

	IngestWorkers int
	IngestChunk   int
}

// Load reads the environment after merging an optional .env file; real
// environment variables win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		BookingsSource: env("BOOKINGS_SOURCE", SourceCSV),
		BookingsCSV:    env("BOOKINGS_CSV", "hotel_bookings.csv"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/bookings?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CorpusSize:     atoi("CORPUS_SIZE", 1000),
		SampleSeed:     uint64(atoi("SAMPLE_SEED", 42)),
		Embedder:       env("EMBEDDER", EmbedderTEI),
		EmbedBaseURL:   env("EMBED_BASE_URL", "http://localhost:8081"),
		EmbedAPIKey:    env("EMBED_API_KEY", ""),
		EmbedModel:     env("EMBED_MODEL", "paraphrase-MiniLM-L3-v2"),
		EmbedRPS:       atoi("EMBED_RPS", 20),
		EmbedBatchSize: atoi("EMBED_BATCH_SIZE", 64),
		EmbedWorkers:   atoi("EMBED_WORKERS", 4),
		EmbedCacheTTL:  time.Duration(atoi("EMBED_CACHE_TTL_SECONDS", 3600)) * time.Second,
		IngestWorkers:  atoi("INGEST_WORKERS", 4),
		IngestChunk:    atoi("INGEST_CHUNK", 500),
	}
	if c.Embedder == EmbedderOpenAI && c.EmbedAPIKey == "" {
		log.Warn().Msg("EMBED_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
