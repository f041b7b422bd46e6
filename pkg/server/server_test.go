package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

func newTestServer() *Server {
	return New(config.Default(), simulation.NewSimulator(nil), nil)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	chk := require.New(t)

	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	chk.Equal(http.StatusOK, rec.Code)
	chk.Contains(rec.Body.String(), `"status":"ok"`)
}

func TestConfigEndpoint(t *testing.T) {
	chk := require.New(t)
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/config.json", "")
	chk.Equal(http.StatusOK, rec.Code)
	chk.Equal("application/json", rec.Header().Get("Content-Type"))

	var cfg config.Config
	chk.NoError(json.Unmarshal(rec.Body.Bytes(), &cfg))
	chk.Equal(config.Default().Defaults, cfg.Defaults)
	chk.Equal(1.0, cfg.UI.BeltDefault)
}

func TestMethodNotAllowed(t *testing.T) {
	chk := require.New(t)
	s := newTestServer()

	cases := []struct {
		method, target, allow string
	}{
		{http.MethodPost, "/config.json", http.MethodGet},
		{http.MethodDelete, "/api/scenarios", http.MethodGet},
		{http.MethodGet, "/api/simulate", http.MethodPost},
	}
	for _, tc := range cases {
		rec := do(t, s, tc.method, tc.target, "")
		chk.Equal(http.StatusMethodNotAllowed, rec.Code, tc.target)
		chk.Equal(tc.allow, rec.Header().Get("Allow"), tc.target)
		chk.Equal("application/json", rec.Header().Get("Content-Type"), tc.target)

		var body map[string]string
		chk.NoError(json.Unmarshal(rec.Body.Bytes(), &body), tc.target)
		chk.Contains(body["error"], "method not allowed", tc.target)
	}
}

func TestScenariosEndpoint(t *testing.T) {
	chk := require.New(t)

	rec := do(t, newTestServer(), http.MethodGet, "/api/scenarios", "")
	chk.Equal(http.StatusOK, rec.Code)

	var body struct {
		Default   string                  `json:"default"`
		Scenarios map[string]scenarioMeta `json:"scenarios"`
	}
	chk.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	chk.Equal("standard", body.Default)
	chk.Len(body.Scenarios, 3)
	chk.Equal("Workload Spike", body.Scenarios["lucy"].Label)
	chk.Equal("Deep Work Pods", body.Scenarios["focus"].Label)
}

func TestSimulateEndpoint(t *testing.T) {
	chk := require.New(t)

	rec := do(t, newTestServer(), http.MethodPost, "/api/simulate",
		`{"num_agents": 4, "num_tasks": 40, "max_minutes": 60, "mode": "focus", "belt_multiplier": "0.5", "seed": 11}`)
	chk.Equal(http.StatusOK, rec.Code)

	var res simulation.Result
	chk.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	chk.NotEmpty(res.RunID)
	chk.Equal("focus", res.Scenario.Key)
	chk.Equal(0.5, res.Parameters.BeltMultiplier)
	chk.Equal(13, res.Parameters.AdjustedTasks)
	chk.Len(res.Agents, 4)
	chk.Len(res.AgentTimes, 4)
	chk.Equal(2, res.OfficeLayout.Rows)
	chk.Equal(2, res.OfficeLayout.Cols)
	chk.NotNil(res.Parameters.Seed)
	chk.Equal(int64(11), *res.Parameters.Seed)
}

func TestSimulateUsesConfiguredDefaults(t *testing.T) {
	chk := require.New(t)

	rec := do(t, newTestServer(), http.MethodPost, "/api/simulate", "")
	chk.Equal(http.StatusOK, rec.Code)

	var res simulation.Result
	chk.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	chk.Equal(6, res.Parameters.RequestedAgents)
	chk.Equal(120, res.Parameters.RequestedTasks)
	chk.Equal(480, res.Parameters.MaxMinutes)
	chk.Equal("standard", res.Parameters.ScenarioKey)
	chk.Equal(1.0, res.Parameters.BeltMultiplier)
	chk.Equal(120, res.Parameters.AdjustedTasks)
}

func TestSimulateUnknownModeFallsBack(t *testing.T) {
	chk := require.New(t)

	rec := do(t, newTestServer(), http.MethodPost, "/api/simulate", `{"mode": "chaos", "belt_multiplier": "fast"}`)
	chk.Equal(http.StatusOK, rec.Code)

	var res simulation.Result
	chk.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	chk.Equal("standard", res.Scenario.Key)
	chk.Equal(1.0, res.Metrics.BeltMultiplier)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	chk := require.New(t)
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/simulate", `{"num_agents": -1}`)
	chk.Equal(http.StatusBadRequest, rec.Code)
	chk.Contains(rec.Body.String(), "must not be negative")

	rec = do(t, s, http.MethodPost, "/api/simulate", `{"num_agents": `)
	chk.Equal(http.StatusBadRequest, rec.Code)
	chk.Contains(rec.Body.String(), "invalid json body")
}
