package app

import (
	"math"
	"strconv"
	"strings"

	"booking_rag/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Column names seen across exports of the bookings dataset.
var bookingAliases = map[string][]string{
	"hotel":          {"hotel", "hotel_type"},
	"year":           {"arrival_date_year", "arrival_year"},
	"month":          {"arrival_date_month", "arrival_month"},
	"country":        {"country", "country_code"},
	"lead_time":      {"lead_time"},
	"is_canceled":    {"is_canceled", "is_cancelled", "canceled"},
	"adr":            {"adr", "average_daily_rate"},
	"week_nights":    {"stays_in_week_nights"},
	"weekend_nights": {"stays_in_weekend_nights"},
	"total_nights":   {"total_nights"},
	"adults":         {"adults"},
	"children":       {"children"},
	"babies":         {"babies"},
	"total_guests":   {"total_guests"},
}

// Tokens that pandas' CSV reader turns into NaN.
var naTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NULL": {}, "null": {},
	"NaN": {}, "nan": {}, "-NaN": {}, "-nan": {}, "<NA>": {}, "None": {},
}

/********** tiny helpers **********/

// lookupStr returns the first non-missing value among the aliases of key.
func lookupStr(row map[string]string, key string) (string, bool) {
	for _, col := range bookingAliases[key] {
		v, ok := row[col]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if _, na := naTokens[v]; na {
			continue
		}
		return v, true
	}
	return "", false
}

// maxCount bounds whole-number columns so sums of them stay in int range.
const maxCount = math.MaxInt32

// getFloatFlexible parses "8.5", "8,5" or "8"; missing, invalid or
// non-finite ("NAN", "inf") -> 0.
func getFloatFlexible(row map[string]string, key string) float64 {
	s, ok := lookupStr(row, key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// getCount is a whole number in [0, maxCount]; "2.0" (pandas float columns) is accepted.
func getCount(row map[string]string, key string) int {
	f := getFloatFlexible(row, key)
	if f <= 0 {
		return 0
	}
	if f >= maxCount {
		return maxCount
	}
	return int(f)
}

/********** booking mapper **********/

// MapBooking converts one raw dataset row into a Booking. Missing numbers
// become 0, a missing country becomes domain.UnknownCountry and negative
// values are clamped to 0. Derived totals are used when the row carries
// them, otherwise they are computed from their parts.
func MapBooking(row map[string]string) domain.Booking {
	b := domain.Booking{
		ArrivalYear: getCount(row, "year"),
		LeadTime:    getCount(row, "lead_time"),
		IsCanceled:  getFloatFlexible(row, "is_canceled") != 0 || isTrue(row),
		ADR:         max(getFloatFlexible(row, "adr"), 0),
	}
	b.Hotel, _ = lookupStr(row, "hotel")
	b.ArrivalMonth, _ = lookupStr(row, "month")
	if c, ok := lookupStr(row, "country"); ok {
		b.Country = c
	} else {
		b.Country = domain.UnknownCountry
	}

	if _, ok := lookupStr(row, "total_nights"); ok {
		b.TotalNights = getCount(row, "total_nights")
	} else {
		b.TotalNights = getCount(row, "week_nights") + getCount(row, "weekend_nights")
	}
	if _, ok := lookupStr(row, "total_guests"); ok {
		b.TotalGuests = getCount(row, "total_guests")
	} else {
		b.TotalGuests = getCount(row, "adults") + getCount(row, "children") + getCount(row, "babies")
	}
	return b
}

func isTrue(row map[string]string) bool {
	s, _ := lookupStr(row, "is_canceled")
	return strings.EqualFold(s, "true")
}

// MapBookings maps rows in order; row numbers are 1-based data lines.
func MapBookings(rows []map[string]string) []domain.BookingRow {
	out := make([]domain.BookingRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, domain.BookingRow{Row: int64(i + 1), Booking: MapBooking(r)})
	}
	return out
}
