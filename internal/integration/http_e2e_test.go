//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"booking_rag/internal/adapters/country"
	"booking_rag/internal/adapters/csvsource"
	httpserver "booking_rag/internal/adapters/http_server"
	"booking_rag/internal/app"
	"booking_rag/internal/corpus"
	"booking_rag/internal/domain"
	mysqlrepo "booking_rag/internal/storage/mysql"
	"booking_rag/internal/storage/mysql/mysqltest"
)

const bookingsCSV = `hotel,is_canceled,lead_time,arrival_date_year,arrival_date_month,stays_in_weekend_nights,stays_in_week_nights,adults,children,babies,country,adr
Resort Hotel,0,342,2015,July,0,0,2,0,0,PRT,0
Resort Hotel,0,7,2015,July,0,1,1,0,0,GBR,75
City Hotel,1,85,2015,July,0,3,2,0,0,PRT,82
City Hotel,0,6,2016,August,2,5,2,1,0,ESP,107.5
City Hotel,0,40,2016,August,1,2,2,NA,0,,98
`

// keywordEmbedder puts each hotel type on its own axis.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.Contains(strings.ToLower(text), "resort") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (e keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func TestHTTP_EndToEnd_IngestThenAsk(t *testing.T) {
	repo := mysqlrepo.New(mysqltest.Start(t))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	if err := os.WriteFile(path, []byte(bookingsCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	// Ingest twice: upserts keyed by row leave the table unchanged
	ing := app.NewIngestionService(csvsource.ReadFile, repo, 2, 2)
	for range 2 {
		n, err := ing.IngestFile(ctx, path)
		if err != nil {
			t.Fatalf("IngestFile: %v", err)
		}
		if n != 5 {
			t.Fatalf("ingested %d rows", n)
		}
	}
	if n, err := repo.CountBookings(ctx); err != nil || n != 5 {
		t.Fatalf("CountBookings: %d %v", n, err)
	}

	records, err := repo.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if records[4].Country != domain.UnknownCountry || records[4].TotalGuests != 2 || records[3].TotalNights != 7 {
		t.Fatalf("unexpected mapped rows: %+v", records)
	}

	c, err := corpus.Build(ctx, corpus.Sample(records, 4, 42), keywordEmbedder{}, corpus.BuildOptions{BatchSize: 2, Workers: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	s := httpserver.New(0)
	s.MountHandlers(&httpserver.Handlers{Q: app.NewQueryService(c, keywordEmbedder{}, country.New())})
	ts := httptest.NewServer(s.Mux())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/v1/ask", "application/json", strings.NewReader(`{"question":"a city break"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Matches []string         `json:"matches"`
		Rows    []domain.Booking `json:"rows"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Matches) != app.AskK {
		t.Fatalf("matches: %v", body.Matches)
	}
	// at most two resort rows exist, so the nearest hit is a city hotel
	if body.Rows[0].Hotel != "City Hotel" || !strings.HasPrefix(body.Matches[0], "City Hotel – ") {
		t.Fatalf("unexpected first match: %q %+v", body.Matches[0], body.Rows[0])
	}
}
