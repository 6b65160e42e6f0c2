package service

import (
	"context"
	"strings"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// defaultEventFeedLimit caps the dashboard event feed when the caller does
// not ask for a specific limit.
const defaultEventFeedLimit = 100

// Results computes per-variant event counts for an experiment. Every variant
// appears in the result, zero-filled when no events match, in variant order.
// An empty eventType counts events of all types.
func (s *Service) Results(ctx context.Context, experimentID, eventType string) ([]domain.VariantCount, error) {
	if strings.TrimSpace(experimentID) == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "experiment id must not be empty")
	}

	exp, err := s.store.GetExperiment(ctx, experimentID)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to read experiment", err)
	}
	if exp == nil {
		return nil, domain.NewError(domain.CodeNotFound, "experiment not found: "+experimentID)
	}

	counts, err := s.store.CountEventsByVariant(ctx, experimentID, eventType)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to count events", err)
	}

	results := make([]domain.VariantCount, 0, len(exp.Variants))
	for _, v := range exp.Variants {
		results = append(results, domain.VariantCount{Variant: v.Label, Count: counts[v.Label]})
	}
	return results, nil
}

// ListEvents returns recent events across all experiments, most recent
// first. The result is never nil.
func (s *Service) ListEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = defaultEventFeedLimit
	}
	events, err := s.store.ListEvents(ctx, limit)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to list events", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}
