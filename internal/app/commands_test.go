package app_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"booking_rag/internal/app"
	"booking_rag/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu     sync.Mutex
	rows   map[int64]domain.Booking
	calls  int
	failAt int64 // fail any chunk containing this row
}

func (f *fakeRepo) UpsertBookings(_ context.Context, rows []domain.BookingRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.rows == nil {
		f.rows = map[int64]domain.Booking{}
	}
	for _, r := range rows {
		if r.Row == f.failAt {
			return errors.New("deadlock")
		}
	}
	for _, r := range rows {
		f.rows[r.Row] = r.Booking
	}
	return nil
}

func (f *fakeRepo) ListBookings(context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]int64, 0, len(f.rows))
	for k := range f.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	out := make([]domain.Booking, 0, len(keys))
	for _, k := range keys {
		out = append(out, f.rows[k])
	}
	return out, nil
}

func (f *fakeRepo) CountBookings(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows), nil
}

func rowsReader(n int) app.RowReader {
	return func(string) ([]map[string]string, error) {
		out := make([]map[string]string, n)
		for i := range out {
			out[i] = map[string]string{"hotel": "City Hotel", "lead_time": fmt.Sprint(i), "country": "PRT"}
		}
		return out, nil
	}
}

// ---- tests ----

func TestIngestFile_ChunksAndIsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	ing := app.NewIngestionService(rowsReader(23), repo, 5, 3)

	n, err := ing.IngestFile(context.Background(), "bookings.csv")
	if err != nil || n != 23 {
		t.Fatalf("ingest: n=%d err=%v", n, err)
	}
	if repo.calls != 5 {
		t.Fatalf("expected 5 chunks, got %d", repo.calls)
	}

	if _, err := ing.IngestFile(context.Background(), "bookings.csv"); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	bs, _ := repo.ListBookings(context.Background())
	if len(bs) != 23 {
		t.Fatalf("expected 23 stored rows, got %d", len(bs))
	}
	for i, b := range bs {
		if b.LeadTime != i {
			t.Fatalf("row order broken at %d: %+v", i, b)
		}
	}
}

func TestIngestFile_Errors(t *testing.T) {
	bad := func(string) ([]map[string]string, error) { return nil, errors.New("no such file") }
	if _, err := app.NewIngestionService(bad, &fakeRepo{}, 10, 1).IngestFile(context.Background(), "x.csv"); err == nil {
		t.Fatalf("expected read error")
	}

	repo := &fakeRepo{failAt: 7}
	if _, err := app.NewIngestionService(rowsReader(12), repo, 4, 2).IngestFile(context.Background(), "x.csv"); err == nil {
		t.Fatalf("expected upsert error")
	}
}
