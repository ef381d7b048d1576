// Command validate runs integrity checks over a yearly accidents CSV before
// it is promoted to the serving path. It loads the file through the real
// dataset pipeline and reports row coverage, derived-column sanity, and
// category vocabulary drift.
//
// Usage:
//
//	go run ./cmd/validate -csv data/2024_Accidentalidad.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
	"github.com/afgalvez/madrid-accidents/internal/geo"
	"github.com/afgalvez/madrid-accidents/internal/observability"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the accidents CSV to validate")
	maxSkippedPct := flag.Float64("max-skipped-pct", 1.0, "maximum tolerated share of skipped rows, in percent")
	minCoordPct := flag.Float64("min-coord-pct", 90.0, "minimum share of rows with usable coordinates, in percent")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *maxSkippedPct, *minCoordPct); code != 0 {
		os.Exit(code)
	}
}

func run(path string, maxSkippedPct, minCoordPct float64) int {
	fmt.Println("=== Accident Dataset Integrity Validation ===")
	fmt.Println()

	dataRows, err := countDataRows(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: count rows: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := dataset.NewLoader(geo.NewProjector(), logger, observability.NewMetricsForTesting())
	table, err := loader.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkCoverage(table, dataRows, maxSkippedPct),
		checkHours(table),
		checkCoordinates(table, minCoordPct),
		checkSeverity(table),
		checkWeekdays(table),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	fmt.Printf("rows in file: %d, loaded: %d, year: %d\n", dataRows, table.Len(), table.Year())
	fmt.Printf("districts: %d, vehicle types: %d, age brackets: %d\n",
		len(table.Districts()), len(table.VehicleTypes()), len(table.AgeBrackets()))

	if failed > 0 {
		fmt.Printf("\n%d phase(s) failed\n", failed)
		return 1
	}
	fmt.Println("\nall phases passed")
	return 0
}

// countDataRows counts the non-header rows in the raw file, so skipped rows
// can be measured against what the loader reported.
func countDataRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	n := -1 // header doesn't count
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			n++ // structurally broken lines still occupy a row
			continue
		}
		n++
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func checkCoverage(t *dataset.Table, dataRows int, maxSkippedPct float64) *phase {
	p := &phase{name: "row coverage"}
	if dataRows == 0 {
		p.errorf("file has no data rows")
		return p
	}
	skipped := dataRows - t.Len()
	pct := float64(skipped) * 100 / float64(dataRows)
	if pct > maxSkippedPct {
		p.errorf("%d of %d rows skipped (%.2f%% > %.2f%%)", skipped, dataRows, pct, maxSkippedPct)
	}
	return p
}

func checkHours(t *dataset.Table) *phase {
	p := &phase{name: "derived hours"}
	missing := 0
	for _, r := range t.Records() {
		switch {
		case r.Hour == -1:
			missing++
		case r.Hour < 0 || r.Hour > 23:
			p.errorf("record %s has out-of-range hour %d", r.Expediente, r.Hour)
		}
	}
	if t.Len() > 0 && missing == t.Len() {
		p.errorf("no row has a parsable time")
	}
	return p
}

func checkCoordinates(t *dataset.Table, minCoordPct float64) *phase {
	p := &phase{name: "coordinates"}
	if t.Len() == 0 {
		return p
	}
	located := 0
	for _, r := range t.Records() {
		if !r.HasCoordinates() {
			continue
		}
		located++
		// The municipality fits in a narrow lon/lat box; anything outside
		// means a projection or axis problem, not an odd accident site.
		if r.Lon < -4.6 || r.Lon > -3.0 || r.Lat < 40.0 || r.Lat > 41.0 {
			p.errorf("record %s projects outside the metro area: (%.4f, %.4f)", r.Expediente, r.Lon, r.Lat)
		}
	}
	pct := float64(located) * 100 / float64(t.Len())
	if pct < minCoordPct {
		p.errorf("only %.2f%% of rows have usable coordinates (< %.2f%%)", pct, minCoordPct)
	}
	return p
}

func checkSeverity(t *dataset.Table) *phase {
	p := &phase{name: "severity vocabulary"}
	unknown := 0
	for _, r := range t.Records() {
		if r.Severity == domain.SeverityUnknown {
			unknown++
		}
	}
	if t.Len() > 0 && unknown == t.Len() {
		p.errorf("every row mapped to the unknown severity; vocabulary drift likely")
	}
	return p
}

func checkWeekdays(t *dataset.Table) *phase {
	p := &phase{name: "weekday vocabulary"}
	valid := make(map[string]bool)
	for _, d := range domain.Weekdays() {
		valid[d] = true
	}
	for _, r := range t.Records() {
		if r.Weekday != "" && !valid[r.Weekday] {
			p.errorf("record %s has out-of-vocabulary weekday %q", r.Expediente, r.Weekday)
		}
	}
	return p
}
