package store

import (
	"context"
	"testing"
	"time"

	"github.com/insightdrift/insightdrift/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func seedExperiment(t *testing.T, s *SQLiteStore, id string, status domain.ExperimentStatus) *domain.Experiment {
	t.Helper()
	exp := &domain.Experiment{
		ID:   id,
		Name: "Checkout button color",
		Variants: []domain.Variant{
			{Label: "A", Weight: 1},
			{Label: "B", Weight: 1},
		},
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := s.CreateExperiment(context.Background(), exp); err != nil {
		t.Fatalf("CreateExperiment failed: %v", err)
	}
	return exp
}

func TestSQLiteStoreExperiments(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusDraft)

	got, err := store.GetExperiment(ctx, "e1")
	if err != nil {
		t.Fatalf("GetExperiment failed: %v", err)
	}
	if got == nil || got.Name != "Checkout button color" {
		t.Fatalf("unexpected experiment: %+v", got)
	}
	if len(got.Variants) != 2 || got.Variants[0].Label != "A" || got.Variants[1].Label != "B" {
		t.Fatalf("variant order not preserved: %+v", got.Variants)
	}

	missing, err := store.GetExperiment(ctx, "nope")
	if err != nil {
		t.Fatalf("GetExperiment failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown experiment, got %+v", missing)
	}

	if err := store.UpdateExperimentStatus(ctx, "e1", domain.ExperimentStatusRunning); err != nil {
		t.Fatalf("UpdateExperimentStatus failed: %v", err)
	}
	got, err = store.GetExperiment(ctx, "e1")
	if err != nil {
		t.Fatalf("GetExperiment failed: %v", err)
	}
	if got.Status != domain.ExperimentStatusRunning {
		t.Fatalf("expected RUNNING, got %s", got.Status)
	}

	experiments, err := store.ListExperiments(ctx)
	if err != nil {
		t.Fatalf("ListExperiments failed: %v", err)
	}
	if len(experiments) != 1 {
		t.Fatalf("expected 1 experiment, got %d", len(experiments))
	}
}

func TestSQLiteStoreAssignmentCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusRunning)

	first := &domain.Assignment{ExperimentID: "e1", UserID: "u1", Variant: "A", AssignedAt: time.Now()}
	created, err := store.CreateAssignment(ctx, first)
	if err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}
	if !created {
		t.Fatal("expected first insert to create a row")
	}

	// A second insert for the same pair must be ignored, keeping the first
	// writer's variant.
	second := &domain.Assignment{ExperimentID: "e1", UserID: "u1", Variant: "B", AssignedAt: time.Now()}
	created, err = store.CreateAssignment(ctx, second)
	if err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}
	if created {
		t.Fatal("expected duplicate insert to be ignored")
	}

	got, err := store.GetAssignment(ctx, "e1", "u1")
	if err != nil {
		t.Fatalf("GetAssignment failed: %v", err)
	}
	if got == nil || got.Variant != "A" {
		t.Fatalf("unexpected assignment: %+v", got)
	}

	missing, err := store.GetAssignment(ctx, "e1", "u2")
	if err != nil {
		t.Fatalf("GetAssignment failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unassigned user, got %+v", missing)
	}
}

func TestSQLiteStoreEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusRunning)

	e := &domain.Event{
		ExperimentID: "e1",
		UserID:       "u1",
		Variant:      "A",
		EventType:    "click",
		OccurredAt:   time.Now(),
	}
	if err := store.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected store to generate an event ID")
	}

	events, err := store.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != "click" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestSQLiteStoreListEventsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusRunning)

	base := time.Now()
	for i, typ := range []string{"view", "click", "purchase"} {
		e := &domain.Event{
			ExperimentID: "e1",
			UserID:       "u1",
			Variant:      "A",
			EventType:    typ,
			OccurredAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := store.CreateEvent(ctx, e); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	events, err := store.ListEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventType != "purchase" || events[1].EventType != "click" {
		t.Fatalf("expected most-recent-first order, got %s then %s", events[0].EventType, events[1].EventType)
	}
}

func TestSQLiteStoreCountEventsByVariant(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusRunning)

	now := time.Now()
	fixtures := []struct {
		variant   string
		eventType string
	}{
		{"A", "click"},
		{"A", "click"},
		{"B", "click"},
		{"A", "view"},
	}
	for _, f := range fixtures {
		e := &domain.Event{
			ExperimentID: "e1",
			UserID:       "u1",
			Variant:      f.variant,
			EventType:    f.eventType,
			OccurredAt:   now,
		}
		if err := store.CreateEvent(ctx, e); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	counts, err := store.CountEventsByVariant(ctx, "e1", "click")
	if err != nil {
		t.Fatalf("CountEventsByVariant failed: %v", err)
	}
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Fatalf("unexpected click counts: %+v", counts)
	}

	all, err := store.CountEventsByVariant(ctx, "e1", "")
	if err != nil {
		t.Fatalf("CountEventsByVariant failed: %v", err)
	}
	if all["A"] != 3 || all["B"] != 1 {
		t.Fatalf("unexpected total counts: %+v", all)
	}
}

func TestSQLiteStoreIdempotencyKeyLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	seedExperiment(t, store, "e1", domain.ExperimentStatusRunning)

	now := time.Now()
	e := &domain.Event{
		ExperimentID:   "e1",
		UserID:         "u1",
		Variant:        "A",
		EventType:      "click",
		OccurredAt:     now,
		IdempotencyKey: "k1",
	}
	if err := store.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	got, err := store.GetEventByIdempotencyKey(ctx, "e1", "u1", "k1", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetEventByIdempotencyKey failed: %v", err)
	}
	if got == nil || got.ID != e.ID {
		t.Fatalf("unexpected event: %+v", got)
	}

	// A window starting after the event must not match.
	aged, err := store.GetEventByIdempotencyKey(ctx, "e1", "u1", "k1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetEventByIdempotencyKey failed: %v", err)
	}
	if aged != nil {
		t.Fatalf("expected aged-out key to miss, got %+v", aged)
	}

	other, err := store.GetEventByIdempotencyKey(ctx, "e1", "u2", "k1", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetEventByIdempotencyKey failed: %v", err)
	}
	if other != nil {
		t.Fatalf("expected other user's key to miss, got %+v", other)
	}
}
