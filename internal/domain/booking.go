package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnknownCountry is stored when the source row carries no country code.
const UnknownCountry = "Unknown"

// Booking is one corpus record. Values are never mutated after ingestion.
type Booking struct {
	Hotel        string  `json:"hotel"`
	ArrivalYear  int     `json:"arrival_date_year"`
	ArrivalMonth string  `json:"arrival_date_month"`
	Country      string  `json:"country"`
	LeadTime     int     `json:"lead_time"`
	IsCanceled   bool    `json:"is_canceled"`
	ADR          float64 `json:"adr"`
	TotalNights  int     `json:"total_nights"`
	TotalGuests  int     `json:"total_guests"`
}

// BookingRow ties a booking to its line in the source file (storage key).
type BookingRow struct {
	Row     int64
	Booking Booking
}

// Revenue is ADR * nights; canceled bookings earn nothing.
func (b Booking) Revenue() float64 {
	if b.IsCanceled {
		return 0
	}
	return b.ADR * float64(b.TotalNights)
}

// Description renders the fixed template that is fed to the embedding model.
func (b Booking) Description() string {
	return fmt.Sprintf(
		"%s hotel booking from %s for %d guest(s) staying %d night(s) in %s %d. Lead time: %d days. Price: %s. Canceled: %s.",
		b.Hotel, b.Country, b.TotalGuests, b.TotalNights, b.ArrivalMonth, b.ArrivalYear,
		b.LeadTime, FormatFloat(b.ADR), pyBool(b.IsCanceled),
	)
}

// UnmarshalJSON accepts is_canceled as a bool or as 0/1, which is what
// clients echo back from CSV-shaped payloads.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var aux struct {
		plain
		IsCanceled json.RawMessage `json:"is_canceled"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Booking(aux.plain)
	if len(aux.IsCanceled) == 0 {
		return nil
	}
	switch raw := strings.Trim(string(aux.IsCanceled), `"`); raw {
	case "true", "True":
		b.IsCanceled = true
	case "false", "False", "null", "":
		b.IsCanceled = false
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("is_canceled: %w", err)
		}
		b.IsCanceled = f != 0
	}
	return nil
}

// FormatFloat prints f in shortest round-trip form, keeping a ".0" on whole
// numbers (100 -> "100.0").
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
