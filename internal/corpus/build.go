// Package corpus owns the sampled booking records and pairs them with their
// embeddings. Position i in the Store is position i in the Index; nothing
// after Build can reorder either side.
package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"booking_rag/internal/domain"
	"booking_rag/internal/vectorindex"
)

type Corpus struct {
	Store *Store
	Index *vectorindex.Index
}

type BuildOptions struct {
	BatchSize int // texts per EmbedBatch call
	Workers   int // concurrent EmbedBatch calls
}

// Build embeds the description of every record and indexes the vectors.
func Build(ctx context.Context, records []domain.Booking, emb domain.Embedder, opts BuildOptions) (*Corpus, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	start := time.Now()
	vectors := make([][]float32, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for lo := 0; lo < len(records); lo += opts.BatchSize {
		hi := min(lo+opts.BatchSize, len(records))
		g.Go(func() error {
			texts := make([]string, 0, hi-lo)
			for _, r := range records[lo:hi] {
				texts = append(texts, r.Description())
			}
			out, err := emb.EmbedBatch(gctx, texts)
			if err != nil {
				return fmt.Errorf("embed records [%d,%d): %w", lo, hi, err)
			}
			if len(out) != len(texts) {
				return fmt.Errorf("embed records [%d,%d): got %d vectors for %d texts", lo, hi, len(out), len(texts))
			}
			// each batch owns a disjoint slot range
			copy(vectors[lo:hi], out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Int("records", len(records)).Dur("took", time.Since(start)).Msg("corpus embedded")

	ix, err := vectorindex.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	store := NewStore(records)
	if store.Size() != ix.Size() {
		return nil, fmt.Errorf("store has %d records, index has %d vectors", store.Size(), ix.Size())
	}
	log.Info().Int("records", store.Size()).Int("dim", ix.Dim()).Msg("vector index ready")
	return &Corpus{Store: store, Index: ix}, nil
}
