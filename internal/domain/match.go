package domain

// Match is one retrieval hit, ready for display.
type Match struct {
	Position int     `json:"position"`
	Booking  Booking `json:"booking"`
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
}
