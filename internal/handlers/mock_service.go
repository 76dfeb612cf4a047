package handlers

import (
	"context"
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockController struct {
	state        sundial.RuntimeState
	pauseErr     error
	resumeErr    error
	overrideErr  error
	pauseCalls   int
	resumeCalls  int
	lastOverride int
}

func (m *mockController) Pause(ctx context.Context) error {
	m.pauseCalls++
	return m.pauseErr
}
func (m *mockController) Resume(ctx context.Context) error {
	m.resumeCalls++
	return m.resumeErr
}
func (m *mockController) SetOverride(ctx context.Context, kelvin int) error {
	m.lastOverride = kelvin
	return m.overrideErr
}
func (m *mockController) Snapshot() sundial.RuntimeState { return m.state }
func (m *mockController) Tick(ctx context.Context, now time.Time) sundial.RuntimeState {
	return m.state
}
func (m *mockController) MarkApplied(ctx context.Context, kelvin int) {}

type mockEventLog struct {
	resp     []sundial.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]sundial.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockDaemon struct{}

func (mockDaemon) Run(ctx context.Context) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, config.Default(), nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
