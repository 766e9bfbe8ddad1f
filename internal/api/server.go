// Package api exposes stored corridor analysis runs over HTTP: JSON
// endpoints for run summaries, stations, obstacles and envelopes, plus
// rendered chart pages for quick visual inspection of a run.
package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/convoi-data/corridor.report/internal/db"
	"github.com/convoi-data/corridor.report/internal/httputil"
	"github.com/convoi-data/corridor.report/internal/units"
	"github.com/convoi-data/corridor.report/internal/vehicle"
	"github.com/convoi-data/corridor.report/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	units string
}

func NewServer(database *db.DB, distanceUnits string) *Server {
	if !units.IsValid(distanceUnits) {
		distanceUnits = units.Metres
	}
	return &Server{
		db:    database,
		units: distanceUnits,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/runs", s.listRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.showRun)
	mux.HandleFunc("DELETE /api/runs/{id}", s.deleteRun)
	mux.HandleFunc("GET /api/runs/{id}/envelope", s.showEnvelope)
	mux.HandleFunc("GET /api/profiles", s.showProfiles)
	mux.HandleFunc("GET /api/config", s.showConfig)
	mux.HandleFunc("GET /charts/clearance/{id}", s.clearanceChart)
	mux.HandleFunc("GET /charts/width/{id}", s.widthChart)
	return mux
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			httputil.BadRequest(w, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("Failed to list runs: %v", err))
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	httputil.WriteJSONOK(w, runs)
}

func (s *Server) showRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	httputil.WriteJSONOK(w, run)
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.db.DeleteRun(r.Context(), id)
	if errors.Is(err, db.ErrRunNotFound) {
		httputil.NotFound(w, "Run not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("Failed to delete run: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": id})
}

func (s *Server) showEnvelope(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	if run.EnvelopeGeoJSON == "" {
		httputil.NotFound(w, "Run has no stored envelope")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	fmt.Fprint(w, run.EnvelopeGeoJSON)
}

func (s *Server) showProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := make([]vehicle.Profile, 0, len(vehicle.Profiles))
	for _, name := range []string{"E82", "N117", "N131", "N149"} {
		if p, err := vehicle.Lookup(name); err == nil {
			profiles = append(profiles, p)
		}
	}
	httputil.WriteJSONOK(w, profiles)
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]interface{}{
		"units":   s.units,
		"version": version.String(),
	})
}

// loadRun fetches the run named by the path, writing the error response
// itself when the run cannot be served.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*db.Run, bool) {
	id := r.PathValue("id")
	run, err := s.db.GetRun(r.Context(), id)
	if errors.Is(err, db.ErrRunNotFound) {
		httputil.NotFound(w, "Run not found")
		return nil, false
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("Failed to load run: %v", err))
		return nil, false
	}
	return run, true
}
