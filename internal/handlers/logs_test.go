package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sundial"
)

func TestGetLogs_FiltersAndNormalizes(t *testing.T) {
	eventLog := &mockEventLog{resp: []sundial.Event{
		{EventID: "evt-1", Type: sundial.EventPause, Description: "paused"},
		{EventID: "evt-2", Type: sundial.EventPause, Description: "paused again"},
	}}
	r := newTestRouter(testService(&mockController{}, eventLog))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2025-03-01&to=2025-03-31&type=pause", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count  int             `json:"count"`
		Events []sundial.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Events) != 2 {
		t.Fatalf("bad response: %+v", resp)
	}

	if eventLog.lastType != "PAUSE" {
		t.Fatalf("type = %q, want PAUSE", eventLog.lastType)
	}
	wantFrom := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !eventLog.lastFrom.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", eventLog.lastFrom, wantFrom)
	}
	// Date-only 'to' becomes end-of-day inclusive.
	wantTo := time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC)
	if !eventLog.lastTo.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", eventLog.lastTo, wantTo)
	}
}

func TestGetLogs_BadTimesRejected(t *testing.T) {
	r := newTestRouter(testService(&mockController{}, &mockEventLog{}))

	for _, query := range []string{
		"?from=yesterday",
		"?to=whenever",
		"?from=2025-03-31&to=2025-03-01",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/"+query, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d, want 400", query, w.Code)
		}
	}
}

func TestGetLogs_ServiceErrorReturns500(t *testing.T) {
	r := newTestRouter(testService(&mockController{}, &mockEventLog{err: errors.New("db gone")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
}
