package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sundial"
)

// listRecorderStub captures the arguments List was called with.
type listRecorderStub struct {
	eventRepoStub
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	resp     []sundial.Event
}

func (s *listRecorderStub) List(ctx context.Context, from, to time.Time, typ string) ([]sundial.Event, error) {
	s.lastFrom, s.lastTo, s.lastType = from, to, typ
	return s.resp, nil
}

func TestEventLogList_RejectsInvertedRange(t *testing.T) {
	svc := NewEventLogService(&listRecorderStub{})

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("got %v, want errInvalidTimeRange", err)
	}
}

func TestEventLogList_NormalizesFilter(t *testing.T) {
	repo := &listRecorderStub{resp: []sundial.Event{{Type: sundial.EventPause}}}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("CEST", 2*60*60)
	from := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)

	events, err := svc.List(context.Background(), LogFilter{From: from, Type: " pause "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	if repo.lastType != "PAUSE" {
		t.Fatalf("type = %q, want PAUSE", repo.lastType)
	}
	if repo.lastFrom.Location() != time.UTC {
		t.Fatalf("from not normalized to UTC: %v", repo.lastFrom)
	}
	if !repo.lastTo.IsZero() {
		t.Fatalf("zero To should stay zero, got %v", repo.lastTo)
	}
}
