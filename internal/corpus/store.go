package corpus

import (
	"fmt"

	"booking_rag/internal/domain"
)

// Store holds the sampled bookings in corpus order. Immutable once built.
type Store struct{ records []domain.Booking }

func NewStore(records []domain.Booking) *Store {
	return &Store{records: append([]domain.Booking(nil), records...)}
}

func (s *Store) Size() int { return len(s.records) }

func (s *Store) Get(i int) (domain.Booking, error) {
	if i < 0 || i >= len(s.records) {
		return domain.Booking{}, fmt.Errorf("position %d of %d: %w", i, len(s.records), domain.ErrOutOfRange)
	}
	return s.records[i], nil
}

// All returns a copy of every record in corpus order.
func (s *Store) All() []domain.Booking {
	return append([]domain.Booking(nil), s.records...)
}
