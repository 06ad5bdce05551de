package domain

import "context"

// Embedder turns text into unit-normalized vectors of a fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CountryResolver maps an ISO alpha-3 code to a display name. Unknown codes
// come back unchanged; it never fails.
type CountryResolver interface {
	Resolve(code string) string
}

type BookingRepository interface {
	UpsertBookings(ctx context.Context, rows []BookingRow) error
	ListBookings(ctx context.Context) ([]Booking, error)
	CountBookings(ctx context.Context) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
