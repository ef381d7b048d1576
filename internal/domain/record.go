package domain

import (
	"math"
	"time"
)

// Severity is the clinical-outcome category recorded for one person in one
// accident. The municipal export uses a fixed vocabulary of eight outcomes
// ordered from lightest to worst; anything missing or unrecognized maps to
// SeverityUnknown.
type Severity int

const (
	SeverityNoAssistance Severity = iota
	SeverityOnSiteOnly
	SeverityLaterOutpatient
	SeverityImmediateHealthCenter
	SeverityERNoAdmission
	SeverityAdmissionUnder24h
	SeverityAdmissionOver24h
	SeverityDeceased24h
	SeverityUnknown
)

// severityLabels holds the source-data labels in display order.
var severityLabels = [...]string{
	SeverityNoAssistance:          "Sin asistencia sanitaria",
	SeverityOnSiteOnly:            "Asistencia sanitaria sólo en el lugar del accidente",
	SeverityLaterOutpatient:       "Asistencia sanitaria ambulatoria con posterioridad",
	SeverityImmediateHealthCenter: "Asistencia sanitaria inmediata en centro de salud o mutua",
	SeverityERNoAdmission:         "Atención en urgencias sin posterior ingreso",
	SeverityAdmissionUnder24h:     "Ingreso inferior o igual a 24 horas",
	SeverityAdmissionOver24h:      "Ingreso superior a 24 horas",
	SeverityDeceased24h:           "Fallecido 24 horas",
	SeverityUnknown:               "Se desconoce",
}

// Label returns the source-data label for the severity.
func (s Severity) Label() string {
	if s < 0 || int(s) >= len(severityLabels) {
		return severityLabels[SeverityUnknown]
	}
	return severityLabels[s]
}

// Hospitalized reports whether the outcome involved a hospital admission or
// death, the subset used for severe-outcome breakdowns.
func (s Severity) Hospitalized() bool {
	switch s {
	case SeverityAdmissionUnder24h, SeverityAdmissionOver24h, SeverityDeceased24h:
		return true
	}
	return false
}

// SevereOrFatal reports whether the outcome is an admission above 24 hours or
// a death, the subset shown by the "severe only" map scenario.
func (s Severity) SevereOrFatal() bool {
	return s == SeverityAdmissionOver24h || s == SeverityDeceased24h
}

// Severities returns all severity categories in display order, unknown last.
func Severities() []Severity {
	out := make([]Severity, len(severityLabels))
	for i := range out {
		out[i] = Severity(i)
	}
	return out
}

// ParseSeverity maps a raw label to its Severity. Empty and unrecognized
// labels resolve to SeverityUnknown; a record never ends up without one.
func ParseSeverity(label string) Severity {
	for i, l := range severityLabels {
		if l == label {
			return Severity(i)
		}
	}
	return SeverityUnknown
}

// Person roles as they appear in the tipo_persona column.
const (
	RoleDriver     = "Conductor"
	RolePassenger  = "Pasajero"
	RolePedestrian = "Peatón"
)

// Sexes recognized by the sex-based views. Rows with any other value are
// excluded from those views, not errored.
const (
	SexMale   = "Hombre"
	SexFemale = "Mujer"
)

// Weekdays returns the Spanish day names in chronological display order,
// Monday first.
func Weekdays() []string {
	return []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}
}

// WeekendDays returns the subset of Weekdays selectable in the weekend
// alcohol view.
func WeekendDays() []string {
	return []string{"Viernes", "Sábado", "Domingo"}
}

// weekdayNames maps Go weekdays onto the Spanish vocabulary.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// WeekdayName returns the Spanish name for t's day of week, or "" for a zero
// time.
func WeekdayName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

// RawRecord holds one person-level row of the municipal CSV as raw strings,
// before any coercion.
type RawRecord struct {
	Expediente  string
	Date        string
	Time        string
	District    string
	VehicleType string
	PersonRole  string
	AgeBracket  string
	Sex         string
	Severity    string
	UTMX        string
	UTMY        string
	Alcohol     string
}

// Record is the analysis-ready representation of one person in one accident.
// Missing values use in-band sentinels: Hour is -1 when the time string was
// unparsable, Weekday is "" when the date was missing, and coordinates are
// NaN when invalid or not yet derivable.
type Record struct {
	Expediente  string
	District    string
	Date        time.Time
	Hour        int
	Weekday     string
	VehicleType string
	PersonRole  string
	AgeBracket  string
	Sex         string
	Severity    Severity
	Alcohol     bool

	// Projected ETRS89 / UTM zone 30N coordinates and their derived WGS84
	// counterparts. Lon/Lat stay NaN until reprojection runs.
	UTMX float64
	UTMY float64
	Lon  float64
	Lat  float64
}

// HasCoordinates reports whether the record carries derived geographic
// coordinates. Records without them are excluded from spatially-filtered
// views.
func (r Record) HasCoordinates() bool {
	return !math.IsNaN(r.Lon) && !math.IsNaN(r.Lat)
}
