package service

import (
	"context"
	"strings"
	"time"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// Assign buckets a user into a variant of the experiment, persisting the
// decision exactly once. Repeated calls for the same pair return the stored
// assignment unchanged, regardless of the experiment's current status.
func (s *Service) Assign(ctx context.Context, experimentID, userID string) (*domain.Assignment, error) {
	if strings.TrimSpace(experimentID) == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "experiment id must not be empty")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "user id must not be empty")
	}

	// Idempotent read: an existing assignment wins over everything,
	// including a later status change of the experiment.
	existing, err := s.store.GetAssignment(ctx, experimentID, userID)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to read assignment", err)
	}
	if existing != nil {
		return existing, nil
	}

	exp, err := s.store.GetExperiment(ctx, experimentID)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to read experiment", err)
	}
	if exp == nil {
		return nil, domain.NewError(domain.CodeNotFound, "experiment not found: "+experimentID)
	}
	if exp.Status != domain.ExperimentStatusRunning {
		return nil, domain.NewError(domain.CodeInvalidState, "experiment is not running: "+experimentID)
	}

	candidate := &domain.Assignment{
		ExperimentID: experimentID,
		UserID:       userID,
		Variant:      pickVariant(experimentID, userID, exp.Variants),
		AssignedAt:   time.Now(),
	}

	created, err := s.store.CreateAssignment(ctx, candidate)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to persist assignment", err)
	}
	if !created {
		// Lost the race to a concurrent first-time request. The stored row
		// is the single source of truth; discard the local candidate.
		winner, err := s.store.GetAssignment(ctx, experimentID, userID)
		if err != nil {
			return nil, domain.WrapError(domain.CodeUnavailable, "failed to re-read assignment", err)
		}
		if winner == nil {
			return nil, domain.NewError(domain.CodeUnavailable, "assignment vanished after conflict")
		}
		return winner, nil
	}
	return candidate, nil
}
