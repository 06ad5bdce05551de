package embedder_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"booking_rag/internal/adapters/embedder"
	"booking_rag/internal/domain"
)

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func TestHTTPClient_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/embed" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			var req struct {
				Inputs []string `json:"inputs"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			out := make([][]float32, len(req.Inputs))
			for i := range out {
				out[i] = []float32{3, 4}
			}
			_ = json.NewEncoder(w).Encode(out)
		}
	}))
	defer ts.Close()

	cl, err := embedder.NewHTTPClient(ts.URL, "", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.EmbedBatch(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || math.Abs(norm(got[0])-1) > 1e-6 || math.Abs(float64(got[0][0])-0.6) > 1e-6 {
		t.Fatalf("unexpected vectors: %v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestHTTPClient_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := embedder.NewHTTPClient(ts.URL, "k", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.Embed(ctx, "hello")
	if !errors.Is(err, domain.ErrEmbedding) || !errors.Is(err, embedder.ErrNotFound) {
		t.Fatalf("expected wrapped not found error, got %v", err)
	}
}

func TestHTTPClient_CountMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1,0]]`))
	}))
	defer ts.Close()

	cl, _ := embedder.NewHTTPClient(ts.URL, "", 100)
	if _, err := cl.EmbedBatch(context.Background(), []string{"a", "b"}); !errors.Is(err, domain.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding, got %v", err)
	}
}

func TestHTTPClient_SendsBearerKey(t *testing.T) {
	var auth atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[[0,1]]`))
	}))
	defer ts.Close()

	cl, _ := embedder.NewHTTPClient(ts.URL+"/", "secret", 100)
	if _, err := cl.Embed(context.Background(), ""); err != nil {
		t.Fatalf("embed: %v", err)
	}
	if got, _ := auth.Load().(string); got != "Bearer secret" {
		t.Fatalf("authorization header: %q", got)
	}
}

func TestNewHTTPClient_RequiresBase(t *testing.T) {
	if _, err := embedder.NewHTTPClient("", "", 1); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
