package service

import (
	"context"
	"strings"
	"time"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// Record appends an interaction event attributed to the user's assigned
// variant. The user must already be assigned; there is no implicit lazy
// assignment, so attribution stays unambiguous.
//
// Repeated submissions are not deduplicated unless the caller supplies an
// idempotency key, in which case a matching event within the configured
// retention window is returned with duplicate=true instead of a new append.
func (s *Service) Record(ctx context.Context, experimentID, userID, eventType, idempotencyKey string) (*domain.Event, bool, error) {
	if strings.TrimSpace(experimentID) == "" {
		return nil, false, domain.NewError(domain.CodeInvalidArgument, "experiment id must not be empty")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, false, domain.NewError(domain.CodeInvalidArgument, "user id must not be empty")
	}
	if strings.TrimSpace(eventType) == "" {
		return nil, false, domain.NewError(domain.CodeInvalidArgument, "event type must not be empty")
	}

	assignment, err := s.store.GetAssignment(ctx, experimentID, userID)
	if err != nil {
		return nil, false, domain.WrapError(domain.CodeUnavailable, "failed to read assignment", err)
	}
	if assignment == nil {
		return nil, false, domain.NewError(domain.CodeUnassignedUser, "no assignment for user "+userID+" in experiment "+experimentID)
	}

	now := time.Now()

	if idempotencyKey != "" {
		since := now.Add(-s.config.DedupeWindow())
		prior, err := s.store.GetEventByIdempotencyKey(ctx, experimentID, userID, idempotencyKey, since)
		if err != nil {
			return nil, false, domain.WrapError(domain.CodeUnavailable, "failed to check idempotency key", err)
		}
		if prior != nil {
			return prior, true, nil
		}
	}

	event := &domain.Event{
		ExperimentID:   experimentID,
		UserID:         userID,
		Variant:        assignment.Variant,
		EventType:      eventType,
		OccurredAt:     now,
		IdempotencyKey: idempotencyKey,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, false, domain.WrapError(domain.CodeUnavailable, "failed to persist event", err)
	}
	return event, false, nil
}
