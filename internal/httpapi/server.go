package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/availcheck/internal/availability"
	"github.com/hamed0406/availcheck/internal/domain"
	"github.com/hamed0406/availcheck/internal/report"
	"github.com/hamed0406/availcheck/internal/scheduler"
)

// StateFunc reports the current loop state.
type StateFunc func() scheduler.State

type Server struct {
	Logger    *zap.Logger
	Tracker   *availability.Tracker
	Endpoints []domain.Endpoint
	State     StateFunc
	Metrics   http.Handler
}

func NewServer(l *zap.Logger, tr *availability.Tracker, eps []domain.Endpoint, state StateFunc, metrics http.Handler) *Server {
	return &Server{Logger: l, Tracker: tr, Endpoints: eps, State: state, Metrics: metrics}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/endpoints", s.handleEndpoints)
	r.Get("/api/availability", s.handleAvailability)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := scheduler.StateIdle
	if s.State != nil {
		st = s.State()
	}
	code := http.StatusOK
	if st != scheduler.StateRunning {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"state": st.String()})
}

type endpointView struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Method string `json:"method"`
	Domain string `json:"domain"`
}

// handleEndpoints lists configured endpoints. Headers and bodies are left out
// since they may carry credentials.
func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	out := make([]endpointView, 0, len(s.Endpoints))
	for _, ep := range s.Endpoints {
		d, _ := domain.DomainOf(ep.URL)
		out = append(out, endpointView{Name: ep.Name, URL: ep.URL, Method: ep.Method, Domain: d})
	}
	writeJSON(w, http.StatusOK, out)
}

type availabilityView struct {
	Domain  string `json:"domain"`
	Percent int    `json:"percent"`
	Total   int    `json:"total"`
	Up      int    `json:"up"`
	Line    string `json:"line"`
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	entries := s.Tracker.Entries()
	out := make([]availabilityView, 0, len(entries))
	for _, e := range entries {
		row := domain.Availability{Domain: e.Domain, Percent: availability.Percent(e.DomainStats)}
		out = append(out, availabilityView{
			Domain:  row.Domain,
			Percent: row.Percent,
			Total:   e.Total,
			Up:      e.Up,
			Line:    report.Line(row),
		})
	}
	s.Logger.Debug("availability_served", zap.Int("domains", len(out)))
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
