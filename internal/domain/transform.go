package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts seen in the municipal export. Day-first is the documented
// format; the ISO variant appeared in a few mid-year revisions.
var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseRawRecord coerces one raw CSV row into a Record. Individual fields
// degrade to sentinels on bad input; only an unparsable date fails the whole
// row, because a person row without a date cannot join any chronological
// view.
func ParseRawRecord(raw RawRecord) (Record, error) {
	date, err := parseDate(raw.Date)
	if err != nil {
		return Record{}, fmt.Errorf("parse record %q: %w", raw.Expediente, err)
	}

	return Record{
		Expediente:  strings.TrimSpace(raw.Expediente),
		District:    strings.TrimSpace(raw.District),
		Date:        date,
		Hour:        parseHour(raw.Time),
		Weekday:     WeekdayName(date),
		VehicleType: strings.TrimSpace(raw.VehicleType),
		PersonRole:  strings.TrimSpace(raw.PersonRole),
		AgeBracket:  normalizeAgeBracket(raw.AgeBracket),
		Sex:         strings.TrimSpace(raw.Sex),
		Severity:    ParseSeverity(strings.TrimSpace(raw.Severity)),
		Alcohol:     strings.TrimSpace(raw.Alcohol) == "S",
		UTMX:        parseCoordinate(raw.UTMX),
		UTMY:        parseCoordinate(raw.UTMY),
		Lon:         math.NaN(),
		Lat:         math.NaN(),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// parseHour derives the hour of day from an "H:MM:SS" or "HH:MM:SS" time
// string. Returns -1 when the value is missing or malformed.
func parseHour(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return -1
	}
	hour, errH := strconv.Atoi(parts[0])
	mins, errM := strconv.Atoi(parts[1])
	secs, errS := strconv.Atoi(parts[2])
	if errH != nil || errM != nil || errS != nil {
		return -1
	}
	if hour < 0 || hour > 23 || mins < 0 || mins > 59 || secs < 0 || secs > 59 {
		return -1
	}
	return hour
}

// parseCoordinate parses a projected UTM coordinate, accepting both dot and
// comma decimal separators. The export has shipped both over the years.
// Missing or malformed values become NaN, never an error.
func parseCoordinate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// normalizeAgeBracket rewrites the one verbose source label to its display
// form. All other labels pass through unchanged.
func normalizeAgeBracket(s string) string {
	s = strings.TrimSpace(s)
	if s == "Más de 74 años" {
		return "> 74"
	}
	return s
}
