package app

import (
	"context"
	"fmt"
	"sync"

	"booking_rag/internal/corpus"
	"booking_rag/internal/domain"
)

// AskK is the number of matches returned for a question.
const AskK = 3

// QueryService is the read surface used by the HTTP layer.
type QueryService struct {
	emb       domain.Embedder
	store     *corpus.Store
	retrieval *RetrievalService
	names     domain.CountryResolver

	fullOnce sync.Once
	full     domain.Summary
}

func NewQueryService(c *corpus.Corpus, emb domain.Embedder, names domain.CountryResolver) *QueryService {
	return &QueryService{
		emb:       emb,
		store:     c.Store,
		retrieval: NewRetrievalService(c.Store, c.Index, names),
		names:     names,
	}
}

// Ask embeds the question and returns the AskK nearest bookings. An empty
// question is still searched.
func (s *QueryService) Ask(ctx context.Context, question string) ([]domain.Match, error) {
	vec, err := s.emb.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return s.retrieval.Answer(vec, AskK)
}

// Analytics summarizes records, or the whole corpus when none are given.
func (s *QueryService) Analytics(records []domain.Booking) domain.Summary {
	if len(records) == 0 {
		return s.CorpusAnalytics()
	}
	return Summarize(records, s.names)
}

// CorpusAnalytics is computed once; the corpus never changes.
func (s *QueryService) CorpusAnalytics() domain.Summary {
	s.fullOnce.Do(func() { s.full = Summarize(s.store.All(), s.names) })
	return s.full
}

// Booking returns the corpus record at position pos.
func (s *QueryService) Booking(pos int) (domain.Booking, error) {
	return s.store.Get(pos)
}

func (s *QueryService) CorpusSize() int { return s.store.Size() }
