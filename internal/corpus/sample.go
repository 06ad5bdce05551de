package corpus

import (
	"math/rand/v2"

	"booking_rag/internal/domain"
)

// Sample picks n records without replacement. The same (records, n, seed)
// always yields the same subset in the same order. When n covers the whole
// input, every record is returned in input order.
func Sample(records []domain.Booking, n int, seed uint64) []domain.Booking {
	if n <= 0 {
		return nil
	}
	if n >= len(records) {
		return append([]domain.Booking(nil), records...)
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := make([]int, len(records))
	for i := range perm {
		perm[i] = i
	}
	// partial Fisher-Yates: only the first n slots are settled
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := make([]domain.Booking, n)
	for i := range out {
		out[i] = records[perm[i]]
	}
	return out
}
