package embedder

import (
	"context"
	"crypto/sha1"
	"encoding/hex"

	"github.com/rs/zerolog/log"

	"booking_rag/internal/domain"
)

// Cached memoizes single-text embeddings (user questions) in a cache.
// Batch calls only happen while the corpus is built, so they pass through.
type Cached struct {
	inner  domain.Embedder
	cache  domain.Cache
	prefix string
	ttlSec int
}

// NewCached keys entries by model so switching models never serves stale vectors.
func NewCached(inner domain.Embedder, cache domain.Cache, model string, ttlSec int) *Cached {
	return &Cached{inner: inner, cache: cache, prefix: "emb:" + model + ":", ttlSec: ttlSec}
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)
	var vec []float32
	ok, err := c.cache.Get(ctx, key, &vec)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("embedding cache read failed")
	}
	if ok && len(vec) > 0 {
		return vec, nil
	}

	vec, err = c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, vec, c.ttlSec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("embedding cache write failed")
	}
	return vec, nil
}

func (c *Cached) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}

func (c *Cached) key(text string) string {
	sum := sha1.Sum([]byte(text))
	return c.prefix + hex.EncodeToString(sum[:])
}
