package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
	"github.com/Photon1c/pulselinestudio/pkg/tracing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server exposes the simulator over a JSON HTTP API
type Server struct {
	cfg    config.Config
	sim    *simulation.Simulator
	logger *zap.Logger
	mux    *http.ServeMux
}

// New creates a server and registers its routes
func New(cfg config.Config, sim *simulation.Simulator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		sim:    sim,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/config.json", s.handleConfig)
	s.mux.HandleFunc("/api/scenarios", s.handleScenarios)
	s.mux.HandleFunc("/api/simulate", s.handleSimulate)
	return s
}

// Handler returns the routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	return s.loggingMiddleware(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.cfg)
}

type scenarioMeta struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	profiles := s.sim.Registry().Profiles()
	meta := make(map[string]scenarioMeta, len(profiles))
	for _, p := range profiles {
		meta[p.Key] = scenarioMeta{Label: p.Label, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   s.sim.Registry().Default().Key,
		"scenarios": meta,
		"profiles":  profiles,
	})
}

type simulateRequest struct {
	NumAgents      *int   `json:"num_agents"`
	NumTasks       *int   `json:"num_tasks"`
	MaxMinutes     *int   `json:"max_minutes"`
	Mode           string `json:"mode"`
	BeltMultiplier any    `json:"belt_multiplier"`
	Seed           *int64 `json:"seed"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	// An empty body runs the configured defaults
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid json body: %w", err))
		return
	}

	params, err := s.params(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := tracing.Simulate(r.Context(), s.sim, params)
	s.logger.Info("simulation served",
		zap.String("run_id", res.RunID),
		zap.String("scenario", res.Scenario.Key),
		zap.Bool("feasible", res.Feasible),
		zap.Int("backlog", res.Backlog.Count))
	writeJSON(w, http.StatusOK, res)
}

// params fills missing request fields from the configured defaults
func (s *Server) params(req simulateRequest) (simulation.Params, error) {
	defaults := s.cfg.Defaults
	p := simulation.Params{
		Agents:      intOrDefault(req.NumAgents, defaults.NumAgents),
		Tasks:       intOrDefault(req.NumTasks, defaults.NumTasks),
		MaxMinutes:  intOrDefault(req.MaxMinutes, defaults.MaxMinutes),
		ScenarioKey: firstNonEmpty(req.Mode, defaults.Mode),
		Seed:        req.Seed,
	}
	if p.Agents < 0 || p.Tasks < 0 {
		return p, fmt.Errorf("num_agents and num_tasks must not be negative")
	}

	belt := req.BeltMultiplier
	if belt == nil {
		belt = s.cfg.UI.BeltDefault
	}
	p.BeltMultiplier = simulation.ParseBeltMultiplier(belt)
	return p, nil
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed, use %s", allowed))
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
