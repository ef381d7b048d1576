package dataset

import (
	"sort"
	"time"

	"github.com/afgalvez/madrid-accidents/internal/domain"
)

// Table is the prepared, immutable analysis table: every person row of one
// yearly export with all derived columns present. It is built once per load
// and never mutated afterwards, so any number of concurrent readers may
// share one instance without locking.
type Table struct {
	records []domain.Record

	vehicleTypes []string
	ageBrackets  []string
	districts    []string

	sourcePath string
	loadedAt   time.Time
}

// NewTable freezes a record slice into a Table, precomputing the distinct
// sorted vocabularies the views and controls need. The caller hands over
// ownership of records.
func NewTable(records []domain.Record, sourcePath string) *Table {
	return &Table{
		records:      records,
		vehicleTypes: distinct(records, func(r domain.Record) string { return r.VehicleType }),
		ageBrackets:  distinct(records, func(r domain.Record) string { return r.AgeBracket }),
		districts:    distinct(records, func(r domain.Record) string { return r.District }),
		sourcePath:   sourcePath,
		loadedAt:     clock.Now(),
	}
}

// Len returns the number of person rows.
func (t *Table) Len() int { return len(t.records) }

// Records returns the underlying row slice. It is shared, not copied;
// callers must treat it as read-only.
func (t *Table) Records() []domain.Record { return t.records }

// VehicleTypes returns the distinct vehicle-type labels observed in the
// data, sorted. The multi-choice vehicle selector is populated from this.
func (t *Table) VehicleTypes() []string { return copyStrings(t.vehicleTypes) }

// AgeBrackets returns the distinct age-bracket labels observed, sorted.
func (t *Table) AgeBrackets() []string { return copyStrings(t.ageBrackets) }

// Districts returns the distinct district names observed, sorted.
func (t *Table) Districts() []string { return copyStrings(t.districts) }

// SourcePath returns the file the table was built from.
func (t *Table) SourcePath() string { return t.sourcePath }

// LoadedAt returns when the table was constructed.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Year returns the calendar year of the dataset, taken from the first dated
// record. Zero when the table is empty.
func (t *Table) Year() int {
	for _, r := range t.records {
		if !r.Date.IsZero() {
			return r.Date.Year()
		}
	}
	return 0
}

func distinct(records []domain.Record, key func(domain.Record) string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if k := key(r); k != "" {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
