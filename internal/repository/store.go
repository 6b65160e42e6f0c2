// Package store provides durable persistence for experiments, assignments
// and events.
package store

import (
	"context"
	"time"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// Store is the persistence interface for the experimentation backend. All
// mutation goes through atomic create-if-absent (assignments) or append
// (events) operations; nothing is ever updated in place except the
// experiment lifecycle status.
type Store interface {
	// Experiments
	CreateExperiment(ctx context.Context, exp *domain.Experiment) error
	GetExperiment(ctx context.Context, experimentID string) (*domain.Experiment, error)
	ListExperiments(ctx context.Context) ([]domain.Experiment, error)
	UpdateExperimentStatus(ctx context.Context, experimentID string, status domain.ExperimentStatus) error

	// Assignments. CreateAssignment reports whether the row was inserted;
	// false means a concurrent writer won the race and the stored row must
	// be re-read.
	CreateAssignment(ctx context.Context, a *domain.Assignment) (bool, error)
	GetAssignment(ctx context.Context, experimentID, userID string) (*domain.Assignment, error)

	// Events. CreateEvent fills in the event ID when empty.
	CreateEvent(ctx context.Context, e *domain.Event) error
	GetEventByIdempotencyKey(ctx context.Context, experimentID, userID, key string, since time.Time) (*domain.Event, error)
	ListEvents(ctx context.Context, limit int) ([]domain.Event, error)
	CountEventsByVariant(ctx context.Context, experimentID, eventType string) (map[string]int64, error)

	Close() error
}
