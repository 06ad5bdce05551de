package observability_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking_rag/internal/adapters/observability"
	"booking_rag/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are non-empty
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveSearch(300*time.Microsecond, nil)
	observability.SetCorpusSize(1000)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{"bookingrag_http_requests_total", "bookingrag_search_duration_seconds", "bookingrag_corpus_records 1000"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestLabelErr(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrInvalidK, "invalid_k"},
		{fmt.Errorf("x: %w", domain.ErrDimensionMismatch), "dimension_mismatch"},
		{domain.ErrOutOfRange, "out_of_range"},
		{domain.ErrEmbedding, "embedding"},
		{errors.New("other"), "error"},
	}
	for _, c := range cases {
		if got := observability.LabelErr(c.err); got != c.want {
			t.Fatalf("LabelErr(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
