package service

import (
	"context"
	"testing"
	"time"

	"github.com/insightdrift/insightdrift/internal/config"
	"github.com/insightdrift/insightdrift/internal/domain"
	store "github.com/insightdrift/insightdrift/internal/repository"
	"github.com/insightdrift/insightdrift/tests/helpers"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	cfg := &config.Config{EventDedupeWindowMs: 86400000}
	db := helpers.NewTestSQLiteStore(t)
	return New(db, cfg), db
}

func seedRunningExperiment(t *testing.T, db store.Store, id string) *domain.Experiment {
	t.Helper()
	exp := &domain.Experiment{
		ID:   id,
		Name: "Landing page CTA",
		Variants: []domain.Variant{
			{Label: "A", Weight: 1},
			{Label: "B", Weight: 1},
		},
		Status:    domain.ExperimentStatusRunning,
		CreatedAt: time.Now(),
	}
	if err := db.CreateExperiment(context.Background(), exp); err != nil {
		t.Fatalf("CreateExperiment failed: %v", err)
	}
	return exp
}
