// Command genmock writes a synthetic accidents CSV with the same shape and
// quirks as the municipal export: semicolon delimiter, UTF-8 BOM, day-first
// dates, and the occasional blank severity or missing coordinate. Output is
// deterministic for a given seed, so fixtures stay byte-stable.
//
// Usage:
//
//	go run ./cmd/genmock -out data/2024_Accidentalidad.csv -rows 5000
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/afgalvez/madrid-accidents/internal/domain"
)

var header = []string{
	"num_expediente", "fecha", "hora", "distrito", "tipo_vehiculo",
	"tipo_persona", "rango_edad", "sexo", "lesividad",
	"coordenada_x_utm", "coordenada_y_utm", "positiva_alcohol",
}

var (
	districts = []string{"Centro", "Chamberí", "Salamanca", "Carabanchel", "Puente de Vallecas", "Moncloa-Aravaca"}
	vehicles  = []string{"Turismo", "Motocicleta > 125cc", "Bicicleta", "Furgoneta", "Autobús", "VMU eléctrico"}
	roles     = []string{domain.RoleDriver, domain.RolePassenger, domain.RolePedestrian}
	sexes     = []string{domain.SexMale, domain.SexFemale, "Desconocido"}
	brackets  = []string{
		"De 18 a 20 años", "De 21 a 24 años", "De 25 a 29 años", "De 30 a 34 años",
		"De 40 a 44 años", "De 50 a 54 años", "De 65 a 69 años", "Más de 74 años",
	}
)

func main() {
	out := flag.String("out", "", "output CSV path")
	rows := flag.Int("rows", 5000, "number of person rows to generate")
	seed := flag.Int64("seed", 20240101, "random seed")
	year := flag.Int("year", 2024, "dataset year")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		log.Fatal("missing required flag: -out")
	}

	if err := run(*out, *rows, *seed, *year); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
}

func run(path string, rows int, seed int64, year int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	rng := rand.New(rand.NewSource(seed))

	// BOM plus semicolons, matching the portal export byte for byte.
	if _, err := w.WriteString("\uFEFF"); err != nil {
		return err
	}
	writeRow(w, header)

	severities := domain.Severities()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()

	for i := 0; i < rows; i++ {
		date := start.AddDate(0, 0, rng.Intn(days))

		severity := severities[rng.Intn(len(severities))].Label()
		if rng.Intn(50) == 0 {
			severity = "" // blank cells exist in the real file
		}

		hora := fmt.Sprintf("%d:%02d:%02d", rng.Intn(24), rng.Intn(60), rng.Intn(60))
		if rng.Intn(200) == 0 {
			hora = ""
		}

		x := fmt.Sprintf("%.2f", 430000+rng.Float64()*20000)
		y := fmt.Sprintf("%.2f", 4462000+rng.Float64()*28000)
		if rng.Intn(100) == 0 {
			x, y = "", ""
		}

		alcohol := "N"
		if rng.Intn(20) == 0 {
			alcohol = "S"
		}

		writeRow(w, []string{
			fmt.Sprintf("%d%06dS", year, i/3+1), // ~3 people per accident
			date.Format("02/01/2006"),
			hora,
			districts[rng.Intn(len(districts))],
			vehicles[rng.Intn(len(vehicles))],
			roles[rng.Intn(len(roles))],
			brackets[rng.Intn(len(brackets))],
			sexes[rng.Intn(len(sexes))],
			severity,
			x,
			y,
			alcohol,
		})
	}

	return w.Flush()
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(';')
		}
		w.WriteString(f)
	}
	w.WriteByte('\n')
}
