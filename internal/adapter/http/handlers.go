package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
	"github.com/afgalvez/madrid-accidents/internal/observability"
	"github.com/afgalvez/madrid-accidents/internal/views"
)

type handlers struct {
	provider DatasetProvider
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.provider.CheckReadiness(ctx); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ready"})
}

// table fetches the prepared table, answering 503 itself when the dataset
// has become unavailable mid-flight (file removed after startup).
func (h *handlers) table(w http.ResponseWriter, r *http.Request) (*dataset.Table, bool) {
	t, err := h.provider.Table(r.Context())
	if err != nil {
		h.logger.Error("dataset unavailable", "error", err)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"error": "dataset unavailable"})
		return nil, false
	}
	return t, true
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	t, ok := h.table(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, views.Summary(t))
}

// metaResponse describes the dataset and the control vocabularies the
// frontend populates its selectors from.
type metaResponse struct {
	SourcePath   string    `json:"source_path"`
	LoadedAt     time.Time `json:"loaded_at"`
	Rows         int       `json:"rows"`
	Year         int       `json:"year"`
	VehicleTypes []string  `json:"vehicle_types"`
	AgeBrackets  []string  `json:"age_brackets"`
	Districts    []string  `json:"districts"`
	WeekendDays  []string  `json:"weekend_days"`
	Severities   []string  `json:"severities"`
}

func (h *handlers) meta(w http.ResponseWriter, r *http.Request) {
	t, ok := h.table(w, r)
	if !ok {
		return
	}

	severities := domain.Severities()
	labels := make([]string, len(severities))
	for i, s := range severities {
		labels[i] = s.Label()
	}

	render.JSON(w, r, metaResponse{
		SourcePath:   t.SourcePath(),
		LoadedAt:     t.LoadedAt(),
		Rows:         t.Len(),
		Year:         t.Year(),
		VehicleTypes: t.VehicleTypes(),
		AgeBrackets:  t.AgeBrackets(),
		Districts:    t.Districts(),
		WeekendDays:  domain.WeekendDays(),
		Severities:   labels,
	})
}

func (h *handlers) spatial(w http.ResponseWriter, r *http.Request) {
	const view = "spatial"

	hour, err := strconv.Atoi(r.URL.Query().Get("hour"))
	if err != nil || hour < 0 || hour > 23 {
		h.badRequest(w, r, view, "hour must be an integer between 0 and 23")
		return
	}

	scenario := views.ScenarioAll
	if s := r.URL.Query().Get("scenario"); s != "" {
		scenario, err = views.ParseScenario(s)
		if err != nil {
			h.badRequest(w, r, view, err.Error())
			return
		}
	}

	t, ok := h.table(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := views.SpatialDensity(t, hour, scenario)
	h.observe(view, start, result.Empty)
	render.JSON(w, r, result)
}

func (h *handlers) alcohol(w http.ResponseWriter, r *http.Request) {
	const view = "alcohol"

	days := splitParam(r.URL.Query().Get("days"))
	weekend := make(map[string]bool)
	for _, d := range domain.WeekendDays() {
		weekend[d] = true
	}
	for _, d := range days {
		if !weekend[d] {
			h.badRequest(w, r, view, "days must be weekend day names")
			return
		}
	}

	t, ok := h.table(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := views.AlcoholByHour(t, days)
	h.observe(view, start, result.Empty)
	render.JSON(w, r, result)
}

func (h *handlers) vehicleSeverity(w http.ResponseWriter, r *http.Request) {
	const view = "vehicle_severity"

	t, ok := h.table(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := views.VehicleSeverity(t, splitParam(r.URL.Query().Get("vehicles")))
	h.observe(view, start, result.Empty)
	render.JSON(w, r, result)
}

func (h *handlers) sexRole(w http.ResponseWriter, r *http.Request) {
	const view = "sex_role"

	t, ok := h.table(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := views.SexRoleSplit(t)
	h.observe(view, start, result.Empty)
	render.JSON(w, r, result)
}

func (h *handlers) agePyramid(w http.ResponseWriter, r *http.Request) {
	const view = "age_pyramid"

	t, ok := h.table(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := views.AgePyramid(t)
	h.observe(view, start, result.Empty)
	render.JSON(w, r, result)
}

func (h *handlers) badRequest(w http.ResponseWriter, r *http.Request, view, msg string) {
	h.metrics.ViewRequests.WithLabelValues(view, "bad_request").Inc()
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"error": msg})
}

func (h *handlers) observe(view string, start time.Time, empty bool) {
	outcome := "ok"
	if empty {
		outcome = "empty"
	}
	h.metrics.ViewRequests.WithLabelValues(view, outcome).Inc()
	h.metrics.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// splitParam splits a comma-separated query value, trimming blanks. An empty
// value is an empty selection, not an error.
func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
