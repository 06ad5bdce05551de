package app

import (
	"fmt"
	"time"

	"booking_rag/internal/adapters/observability"
	"booking_rag/internal/corpus"
	"booking_rag/internal/domain"
	"booking_rag/internal/vectorindex"
)

// RetrievalService maps nearest-neighbor positions back to corpus records
// and renders them for display.
type RetrievalService struct {
	store *corpus.Store
	index *vectorindex.Index
	names domain.CountryResolver
}

func NewRetrievalService(store *corpus.Store, index *vectorindex.Index, names domain.CountryResolver) *RetrievalService {
	return &RetrievalService{store: store, index: index, names: names}
}

// Answer returns up to k matches for an already embedded query. k above the
// corpus size is clamped by the index.
func (s *RetrievalService) Answer(query []float32, k int) ([]domain.Match, error) {
	start := time.Now()
	hits, err := s.index.Search(query, k)
	observability.ObserveSearch(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Match, 0, len(hits))
	for _, h := range hits {
		b, err := s.store.Get(h.Index)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Match{
			Position: h.Index,
			Booking:  b,
			Text:     FormatMatch(b, s.names),
			Distance: h.Distance,
		})
	}
	return out, nil
}

// FormatMatch renders a booking as a short multi-line card.
func FormatMatch(b domain.Booking, names domain.CountryResolver) string {
	status := "Confirmed"
	if b.IsCanceled {
		status = "Cancelled"
	}
	return fmt.Sprintf(
		"%s – %d guests – %d nights\nCountry: %s  Month: %s %d\nLead Time: %d days  Price: ₹%s\nStatus: %s",
		b.Hotel, b.TotalGuests, b.TotalNights,
		resolve(names, b.Country), b.ArrivalMonth, b.ArrivalYear,
		b.LeadTime, domain.FormatFloat(b.ADR),
		status,
	)
}
