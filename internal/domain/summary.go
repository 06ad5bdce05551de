package domain

import (
	"bytes"
	"encoding/json"
)

// Summary is the analytics result over a set of bookings.
type Summary struct {
	AveragePrice     float64       `json:"average_booking_price"`
	CancellationRate string        `json:"cancellation_rate"`
	TopCountries     CountryCounts `json:"top_booking_countries"`
	TopRevenueMonths MonthRevenues `json:"top_revenue_months"`
}

type CountryCount struct {
	Country string
	Count   int
}

type MonthRevenue struct {
	Month   string
	Revenue float64
}

// CountryCounts keeps rank order; it marshals to a JSON object whose keys
// appear in that order.
type CountryCounts []CountryCount

// MonthRevenues keeps rank order; see CountryCounts.
type MonthRevenues []MonthRevenue

func (c CountryCounts) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(c))
	vals := make([]any, len(c))
	for i, e := range c {
		keys[i], vals[i] = e.Country, e.Count
	}
	return orderedObject(keys, vals)
}

func (m MonthRevenues) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(m))
	vals := make([]any, len(m))
	for i, e := range m {
		keys[i], vals[i] = e.Month, e.Revenue
	}
	return orderedObject(keys, vals)
}

func (c *CountryCounts) UnmarshalJSON(data []byte) error {
	pairs, err := decodeOrdered(data)
	if err != nil {
		return err
	}
	out := make(CountryCounts, 0, len(pairs))
	for _, p := range pairs {
		var n int
		if err := json.Unmarshal(p.val, &n); err != nil {
			return err
		}
		out = append(out, CountryCount{Country: p.key, Count: n})
	}
	*c = out
	return nil
}

func (m *MonthRevenues) UnmarshalJSON(data []byte) error {
	pairs, err := decodeOrdered(data)
	if err != nil {
		return err
	}
	out := make(MonthRevenues, 0, len(pairs))
	for _, p := range pairs {
		var f float64
		if err := json.Unmarshal(p.val, &f); err != nil {
			return err
		}
		out = append(out, MonthRevenue{Month: p.key, Revenue: f})
	}
	*m = out
	return nil
}

func orderedObject(keys []string, vals []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(keys[i])
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type rawPair struct {
	key string
	val json.RawMessage
}

func decodeOrdered(data []byte) ([]rawPair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}
	var out []rawPair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, rawPair{key: key, val: v})
	}
	return out, nil
}
