package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sundial"
	"sundial/internal/service"
)

func testService(ctrl *mockController, log *mockEventLog) *service.Service {
	return &service.Service{
		Controller: ctrl,
		EventLog:   log,
		Daemon:     mockDaemon{},
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(testService(&mockController{}, &mockEventLog{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestDisplayHandlers_StatusNowPauseResume(t *testing.T) {
	ctrl := &mockController{state: sundial.RuntimeState{
		CurrentTemp: 5000,
		TargetTemp:  6500,
		Phase:       sundial.PhaseToDay,
		Progress:    0.5,
	}}
	r := newTestRouter(testService(ctrl, &mockEventLog{}))

	// GET status → full runtime state
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/display/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var st sundial.RuntimeState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st.CurrentTemp != 5000 || st.Phase != sundial.PhaseToDay {
		t.Fatalf("unexpected state: %+v", st)
	}

	// GET now → compact status-file view
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/display/now", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("now status=%d", w.Code)
	}
	var now struct {
		Temp     int     `json:"temp"`
		Phase    string  `json:"phase"`
		Target   int     `json:"target"`
		Progress float64 `json:"progress"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &now)
	if now.Temp != 5000 || now.Phase != "transitioning_to_day" || now.Target != 6500 || now.Progress != 0.5 {
		t.Fatalf("bad now response: %+v", now)
	}

	// POST pause → 200, controller called, state included
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/display/pause", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("pause status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctrl.pauseCalls != 1 {
		t.Fatalf("pause calls=%d", ctrl.pauseCalls)
	}
	var resp struct {
		Status string               `json:"status"`
		State  sundial.RuntimeState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusPaused || resp.State.CurrentTemp != 5000 {
		t.Fatalf("bad pause response: %+v", resp)
	}

	// POST resume → 200
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/display/resume", nil))
	if w.Code != http.StatusOK || ctrl.resumeCalls != 1 {
		t.Fatalf("resume status=%d calls=%d", w.Code, ctrl.resumeCalls)
	}
}

func TestDisplayHandlers_Override(t *testing.T) {
	ctrl := &mockController{}
	r := newTestRouter(testService(ctrl, &mockEventLog{}))

	// Valid body → 200 with echoed temperature
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/display/override", bytes.NewBufferString(`{"temperature":4000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("override status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctrl.lastOverride != 4000 {
		t.Fatalf("override value=%d", ctrl.lastOverride)
	}

	// Missing field → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/display/override", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty body status=%d", w.Code)
	}

	// Service validation failure → 400
	ctrl.overrideErr = service.ErrInvalidTemperature
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/display/override", bytes.NewBufferString(`{"temperature":-5}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid temp status=%d", w.Code)
	}

	// Unexpected failure → 500
	ctrl.overrideErr = errors.New("boom")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/display/override", bytes.NewBufferString(`{"temperature":4000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("internal error status=%d", w.Code)
	}
}

func TestDisplayHandlers_PauseFailureReturns500(t *testing.T) {
	ctrl := &mockController{pauseErr: errors.New("db gone")}
	r := newTestRouter(testService(ctrl, &mockEventLog{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/display/pause", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestDisplayHandlers_ConfigReturnsResolvedConfig(t *testing.T) {
	r := newTestRouter(testService(&mockController{}, &mockEventLog{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/display/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("config status=%d", w.Code)
	}
	var cfg struct {
		Mode        string `json:"Mode"`
		Temperature struct {
			Day int `json:"Day"`
		} `json:"Temperature"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if cfg.Mode != "auto" || cfg.Temperature.Day != 6500 {
		t.Fatalf("bad config response: %+v", cfg)
	}
}
