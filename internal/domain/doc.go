// Package domain models person-level rows of the Madrid traffic-accident
// open-data export.
//
// # Data Source
//
// The Ayuntamiento de Madrid publishes a yearly accident file on its open
// data portal (https://datos.madrid.es). The file is semicolon-delimited,
// UTF-8 with a byte-order mark, one header row, and one row per person
// involved in an accident (an accident with three people appears three
// times under the same num_expediente).
//
// # Source Conventions
//
// Dates and times:
//
//	fecha is day-first, "02/01/2024" = January 2nd. A few mid-year file
//	revisions switched to ISO "2024-01-02"; both are accepted.
//	hora is "H:MM:SS" or "HH:MM:SS" local time. The derived hour of day is
//	-1 when the value is missing or malformed.
//
// Coordinates:
//
//	coordenada_x_utm / coordenada_y_utm are ETRS89 / UTM zone 30N
//	(EPSG:25830) metres. Some yearly files use the comma as decimal
//	separator; both "440123.45" and "440123,45" parse. Invalid values
//	become NaN and the row is excluded from spatially-filtered views.
//
// Severity:
//
//	lesividad is one of eight clinical-outcome labels ordered from "Sin
//	asistencia sanitaria" to "Fallecido 24 horas". Blank cells mean the
//	outcome was never recorded; they map to the explicit "Se desconoce"
//	category so every record carries exactly one severity.
//
// Alcohol:
//
//	positiva_alcohol is "S" for a positive test. Any other value,
//	including blank, means no positive test on record and maps to false.
//
// Age brackets:
//
//	rango_edad is a closed vocabulary of ranges ("De 25 a 29 años", ...).
//	The one open-ended label "Más de 74 años" is shortened to "> 74" for
//	display; everything else passes through unchanged.
package domain
