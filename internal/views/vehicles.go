package views

import (
	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
)

// VehicleSeverityRow is the severity distribution for one vehicle type.
// Counts and Percent are positionally aligned with the result's Severities;
// Percent carries full precision and sums to 100 across the row. Rounding
// for display is the caller's concern.
type VehicleSeverityRow struct {
	VehicleType string    `json:"vehicle_type"`
	Total       int       `json:"total"`
	Counts      []int     `json:"counts"`
	Percent     []float64 `json:"percent"`
}

// VehicleSeverityResult is the vehicle vulnerability view. Vehicle types not
// selected, and selected types with no records, do not appear; they are
// excluded rather than zero-filled.
type VehicleSeverityResult struct {
	Empty      bool                 `json:"empty"`
	Severities []string             `json:"severities"`
	Rows       []VehicleSeverityRow `json:"rows"`
}

// VehicleSeverity computes, for each selected vehicle type, its percentage
// distribution across the fixed severity vocabulary. Rows keep the
// selection's order; duplicate selections collapse to the first occurrence.
func VehicleSeverity(t *dataset.Table, vehicles []string) VehicleSeverityResult {
	severities := domain.Severities()
	labels := make([]string, len(severities))
	for i, s := range severities {
		labels[i] = s.Label()
	}

	counts := make(map[string][]int, len(vehicles))
	var order []string
	for _, v := range vehicles {
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			counts[v] = make([]int, len(severities))
			order = append(order, v)
		}
	}
	if len(order) == 0 {
		return VehicleSeverityResult{Empty: true, Severities: labels}
	}

	for _, r := range t.Records() {
		if c, ok := counts[r.VehicleType]; ok {
			c[r.Severity]++
		}
	}

	rows := make([]VehicleSeverityRow, 0, len(order))
	for _, v := range order {
		c := counts[v]
		total := 0
		for _, n := range c {
			total += n
		}
		if total == 0 {
			continue
		}
		percent := make([]float64, len(c))
		for i, n := range c {
			percent[i] = float64(n) * 100 / float64(total)
		}
		rows = append(rows, VehicleSeverityRow{
			VehicleType: v,
			Total:       total,
			Counts:      c,
			Percent:     percent,
		})
	}

	return VehicleSeverityResult{
		Empty:      len(rows) == 0,
		Severities: labels,
		Rows:       rows,
	}
}
