package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// CreateExperiment validates and persists a new experiment in Draft state.
// The variant set is fixed at creation; there is no update operation.
func (s *Service) CreateExperiment(ctx context.Context, req domain.CreateExperimentRequest) (*domain.Experiment, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "experiment name must not be empty")
	}
	if len(req.Variants) < 2 {
		return nil, domain.NewError(domain.CodeInvalidArgument, "experiment needs at least two variants")
	}
	seen := make(map[string]bool, len(req.Variants))
	for _, v := range req.Variants {
		if strings.TrimSpace(v.Label) == "" {
			return nil, domain.NewError(domain.CodeInvalidArgument, "variant label must not be empty")
		}
		if seen[v.Label] {
			return nil, domain.NewError(domain.CodeInvalidArgument, "duplicate variant label: "+v.Label)
		}
		seen[v.Label] = true
		if v.Weight <= 0 {
			return nil, domain.NewError(domain.CodeInvalidArgument, "variant weight must be positive: "+v.Label)
		}
	}

	exp := &domain.Experiment{
		ID:          "exp_" + uuid.New().String()[:8],
		Name:        req.Name,
		Description: req.Description,
		Variants:    req.Variants,
		Status:      domain.ExperimentStatusDraft,
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateExperiment(ctx, exp); err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to persist experiment", err)
	}
	return exp, nil
}

// GetExperiment retrieves an experiment by ID.
func (s *Service) GetExperiment(ctx context.Context, experimentID string) (*domain.Experiment, error) {
	exp, err := s.store.GetExperiment(ctx, experimentID)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to read experiment", err)
	}
	if exp == nil {
		return nil, domain.NewError(domain.CodeNotFound, "experiment not found: "+experimentID)
	}
	return exp, nil
}

// ListExperiments lists all experiments in creation order.
func (s *Service) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	experiments, err := s.store.ListExperiments(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to list experiments", err)
	}
	if experiments == nil {
		experiments = []domain.Experiment{}
	}
	return experiments, nil
}

// UpdateExperimentStatus performs a lifecycle transition. Only
// Draft -> Running -> Stopped is allowed; anything else is rejected.
// Existing assignments and event ingest are unaffected by stopping.
func (s *Service) UpdateExperimentStatus(ctx context.Context, experimentID string, status domain.ExperimentStatus) (*domain.Experiment, error) {
	if !status.Valid() {
		return nil, domain.NewError(domain.CodeInvalidArgument, "unknown status: "+string(status))
	}

	exp, err := s.GetExperiment(ctx, experimentID)
	if err != nil {
		return nil, err
	}
	if !exp.Status.CanTransitionTo(status) {
		return nil, domain.NewError(domain.CodeInvalidState,
			"cannot transition experiment from "+string(exp.Status)+" to "+string(status))
	}

	if err := s.store.UpdateExperimentStatus(ctx, experimentID, status); err != nil {
		return nil, domain.WrapError(domain.CodeUnavailable, "failed to update experiment status", err)
	}
	exp.Status = status
	return exp, nil
}

// EnsureDemoExperiment seeds a running two-variant experiment with a fixed ID
// so a fresh deployment serves the demo dashboard without manual setup.
func (s *Service) EnsureDemoExperiment(ctx context.Context) error {
	existing, err := s.store.GetExperiment(ctx, "1")
	if err != nil {
		return domain.WrapError(domain.CodeUnavailable, "failed to read demo experiment", err)
	}
	if existing != nil {
		return nil
	}

	exp := &domain.Experiment{
		ID:          "1",
		Name:        "Landing page CTA",
		Description: "Demo experiment seeded at startup",
		Variants: []domain.Variant{
			{Label: "A", Weight: 1},
			{Label: "B", Weight: 1},
		},
		Status:    domain.ExperimentStatusRunning,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateExperiment(ctx, exp); err != nil {
		return domain.WrapError(domain.CodeUnavailable, "failed to seed demo experiment", err)
	}
	return nil
}
