// Package dataset turns the raw yearly export into the prepared analysis
// table and memoizes it for the process lifetime.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/afgalvez/madrid-accidents/internal/domain"
	"github.com/afgalvez/madrid-accidents/internal/geo"
	"github.com/afgalvez/madrid-accidents/internal/observability"
)

// ErrDataUnavailable means the dataset file exists at none of the configured
// paths. Fatal to startup; there is nothing to serve without it.
var ErrDataUnavailable = errors.New("accident dataset not found")

// requiredColumns are the header names the loader resolves by position.
var requiredColumns = []string{
	"num_expediente",
	"fecha",
	"hora",
	"distrito",
	"tipo_vehiculo",
	"tipo_persona",
	"rango_edad",
	"sexo",
	"lesividad",
	"coordenada_x_utm",
	"coordenada_y_utm",
	"positiva_alcohol",
}

// Loader reads the semicolon-delimited export, coerces each row through the
// domain transforms, and reprojects the coordinate columns in one batch.
type Loader struct {
	projector *geo.Projector
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewLoader creates a Loader.
func NewLoader(projector *geo.Projector, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		projector: projector,
		logger:    logger,
		metrics:   metrics,
	}
}

// Resolve probes the primary then the fallback path and returns the first
// that exists. Wraps ErrDataUnavailable when neither does.
func (l *Loader) Resolve(primary, fallback string) (string, fs.FileInfo, error) {
	for _, path := range []string{primary, fallback} {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err == nil {
			return path, info, nil
		}
	}
	return "", nil, fmt.Errorf("%w: tried %q and %q", ErrDataUnavailable, primary, fallback)
}

// Load resolves the dataset path and builds the prepared table.
func (l *Loader) Load(primary, fallback string) (*Table, error) {
	path, _, err := l.Resolve(primary, fallback)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile builds the prepared table from one file. Malformed rows are
// skipped and counted; malformed fields degrade to sentinels inside
// domain.ParseRawRecord. The result is deterministic for identical input
// bytes.
func (l *Loader) LoadFile(path string) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, skipped, err := l.readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	l.reproject(records)

	l.metrics.RowsLoaded.Add(float64(len(records)))
	l.metrics.RowsSkipped.Add(float64(skipped))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.DatasetReady.Set(1)

	l.logger.Info("dataset loaded",
		"path", path,
		"rows", len(records),
		"skipped", skipped,
		"duration", time.Since(start),
	)

	return NewTable(records, path), nil
}

func (l *Loader) readRecords(r io.Reader) ([]domain.Record, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var records []domain.Record
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A structurally broken line degrades like a malformed row.
			l.logger.Debug("skipping unreadable row", "error", err)
			skipped++
			continue
		}

		rec, err := domain.ParseRawRecord(cols.raw(row))
		if err != nil {
			l.logger.Debug("skipping malformed row", "error", err)
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// reproject converts the projected coordinate columns to lon/lat in one
// batch. Invalid pairs stay NaN.
func (l *Loader) reproject(records []domain.Record) {
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.UTMX
		ys[i] = r.UTMY
	}

	lons, lats := l.projector.ToLonLatColumns(xs, ys)
	for i := range records {
		records[i].Lon = lons[i]
		records[i].Lat = lats[i]
	}
}

// columnIndex maps required column names to their header positions.
type columnIndex map[string]int

func resolveColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) raw(row []string) domain.RawRecord {
	field := func(name string) string {
		i := c[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	return domain.RawRecord{
		Expediente:  field("num_expediente"),
		Date:        field("fecha"),
		Time:        field("hora"),
		District:    field("distrito"),
		VehicleType: field("tipo_vehiculo"),
		PersonRole:  field("tipo_persona"),
		AgeBracket:  field("rango_edad"),
		Sex:         field("sexo"),
		Severity:    field("lesividad"),
		UTMX:        field("coordenada_x_utm"),
		UTMY:        field("coordenada_y_utm"),
		Alcohol:     field("positiva_alcohol"),
	}
}
