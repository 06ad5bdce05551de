package app

import (
	"math"
	"sort"

	"booking_rag/internal/domain"
)

const topN = 5

// Summarize computes the analytics view over records. It is a pure function
// of its input; an empty input yields the zero summary.
func Summarize(records []domain.Booking, names domain.CountryResolver) domain.Summary {
	if len(records) == 0 {
		return domain.Summary{
			AveragePrice:     0,
			CancellationRate: "0%",
			TopCountries:     domain.CountryCounts{},
			TopRevenueMonths: domain.MonthRevenues{},
		}
	}

	var canceled int
	var priceSum float64
	var order []string // first-seen country order
	counts := map[string]int{}
	byMonth := map[string]float64{}
	for _, r := range records {
		if r.IsCanceled {
			canceled++
		}
		priceSum += r.ADR
		if _, ok := counts[r.Country]; !ok {
			order = append(order, r.Country)
		}
		counts[r.Country]++
		byMonth[r.ArrivalMonth] += r.Revenue()
	}
	n := float64(len(records))

	return domain.Summary{
		AveragePrice:     round2(priceSum / n),
		CancellationRate: domain.FormatFloat(round2(float64(canceled)/n*100)) + "%",
		TopCountries:     topCountries(order, counts, names),
		TopRevenueMonths: topMonths(byMonth),
	}
}

// topCountries ranks by display name, so codes that resolve to the same
// country ("prt", "PRT") are counted together.
func topCountries(order []string, counts map[string]int, names domain.CountryResolver) domain.CountryCounts {
	var byName []string // first-seen name order
	merged := map[string]int{}
	for _, code := range order {
		name := resolve(names, code)
		if _, ok := merged[name]; !ok {
			byName = append(byName, name)
		}
		merged[name] += counts[code]
	}
	// stable: equal counts keep first-seen order
	sort.SliceStable(byName, func(a, b int) bool { return merged[byName[a]] > merged[byName[b]] })
	if len(byName) > topN {
		byName = byName[:topN]
	}
	out := make(domain.CountryCounts, 0, len(byName))
	for _, name := range byName {
		out = append(out, domain.CountryCount{Country: name, Count: merged[name]})
	}
	return out
}

func topMonths(byMonth map[string]float64) domain.MonthRevenues {
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	// groups iterate in label order; equal revenue keeps that order
	sort.Strings(months)
	sort.SliceStable(months, func(a, b int) bool { return byMonth[months[a]] > byMonth[months[b]] })
	if len(months) > topN {
		months = months[:topN]
	}
	out := make(domain.MonthRevenues, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthRevenue{Month: m, Revenue: byMonth[m]})
	}
	return out
}

func resolve(names domain.CountryResolver, code string) string {
	if names == nil {
		return code
	}
	return names.Resolve(code)
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
