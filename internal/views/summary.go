package views

import (
	"time"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
)

// SummaryResult holds the year's headline figures.
type SummaryResult struct {
	Empty        bool   `json:"empty"`
	Year         int    `json:"year"`
	TotalPersons int    `json:"total_persons"`
	DailyMean    int    `json:"daily_mean"`
	TopDistrict  string `json:"top_district"`
	SevereCount  int    `json:"severe_count"`
}

// Summary computes the KPI figures: persons involved, mean per calendar day,
// the district with the most rows, and the severe-or-fatal count. District
// ties break alphabetically so the result is deterministic.
func Summary(t *dataset.Table) SummaryResult {
	if t.Len() == 0 {
		return SummaryResult{Empty: true}
	}

	year := t.Year()
	severe := 0
	districts := make(map[string]int)
	for _, r := range t.Records() {
		if r.Severity.SevereOrFatal() {
			severe++
		}
		if r.District != "" {
			districts[r.District]++
		}
	}

	top := ""
	topN := 0
	for d, n := range districts {
		if n > topN || (n == topN && (top == "" || d < top)) {
			top, topN = d, n
		}
	}

	return SummaryResult{
		Year:         year,
		TotalPersons: t.Len(),
		DailyMean:    t.Len() / daysInYear(year),
		TopDistrict:  top,
		SevereCount:  severe,
	}
}

func daysInYear(year int) int {
	if year == 0 {
		return 365
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
