package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"booking_rag/internal/domain"
)

// RowReader yields header-keyed raw rows from a dataset file.
type RowReader func(path string) ([]map[string]string, error)

// IngestionService copies a raw bookings file into the booking repository.
type IngestionService struct {
	read    RowReader
	repo    domain.BookingRepository
	chunk   int
	workers int
}

func NewIngestionService(read RowReader, repo domain.BookingRepository, chunk, workers int) *IngestionService {
	if chunk <= 0 {
		chunk = 500
	}
	if workers <= 0 {
		workers = 1
	}
	return &IngestionService{read: read, repo: repo, chunk: chunk, workers: workers}
}

// IngestFile upserts every row of path, keyed by its row number, so running
// it twice leaves the table unchanged. It returns the number of rows written.
func (s *IngestionService) IngestFile(ctx context.Context, path string) (int, error) {
	raw, err := s.read(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	rows := MapBookings(raw)

	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for lo := 0; lo < len(rows); lo += s.chunk {
		hi := min(lo+s.chunk, len(rows))

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, err
		}
		wg.Add(1)
		go func(part []domain.BookingRow) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertBookings(ctx, part); err != nil {
				log.Warn().Int64("first_row", part[0].Row).Int("rows", len(part)).Err(err).Msg("upsert failed")
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("upsert rows %d..%d: %w", part[0].Row, part[len(part)-1].Row, err)
				}
				mu.Unlock()
				return
			}
			log.Debug().Int64("first_row", part[0].Row).Int("rows", len(part)).Msg("chunk ok")
		}(rows[lo:hi])
	}

	wg.Wait()
	if firstErr != nil {
		return 0, firstErr
	}
	return len(rows), nil
}
