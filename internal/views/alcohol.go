package views

import (
	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
)

// DaySeries is one 24-slot hourly count series for a single day name.
// Hours with no matching records hold zero.
type DaySeries struct {
	Day    string  `json:"day"`
	Counts [24]int `json:"counts"`
}

// AlcoholResult is the weekend alcohol-incidence view. Empty marks either an
// empty day selection or a selection matching no records.
type AlcoholResult struct {
	Empty  bool        `json:"empty"`
	Series []DaySeries `json:"series"`
}

// AlcoholByHour counts positive-alcohol records per (hour, day) for the
// selected weekend days. Series come back in chronological day order
// regardless of selection order; records without a derived hour are
// excluded.
func AlcoholByHour(t *dataset.Table, days []string) AlcoholResult {
	selected := make(map[string]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}

	counts := make(map[string]*[24]int)
	var order []string
	for _, d := range domain.WeekendDays() {
		if selected[d] {
			counts[d] = new([24]int)
			order = append(order, d)
		}
	}
	if len(order) == 0 {
		return AlcoholResult{Empty: true}
	}

	total := 0
	for _, r := range t.Records() {
		if !r.Alcohol || r.Hour < 0 {
			continue
		}
		c, ok := counts[r.Weekday]
		if !ok {
			continue
		}
		c[r.Hour]++
		total++
	}
	if total == 0 {
		return AlcoholResult{Empty: true}
	}

	series := make([]DaySeries, 0, len(order))
	for _, d := range order {
		series = append(series, DaySeries{Day: d, Counts: *counts[d]})
	}
	return AlcoholResult{Series: series}
}
