package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdrift/insightdrift/internal/domain"
)

func TestAssignIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	seedRunningExperiment(t, db, "e1")

	first, err := svc.Assign(ctx, "e1", "u1")
	require.NoError(t, err)
	require.NotNil(t, first)

	for i := 0; i < 10; i++ {
		again, err := svc.Assign(ctx, "e1", "u1")
		require.NoError(t, err)
		assert.Equal(t, first.Variant, again.Variant)
		assert.Equal(t, first.AssignedAt.Unix(), again.AssignedAt.Unix())
	}
}

func TestAssignUnknownExperiment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Assign(ctx, "nope", "u1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "expected not_found, got %v", err)
}

func TestAssignValidation(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	seedRunningExperiment(t, db, "e1")

	_, err := svc.Assign(ctx, "e1", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = svc.Assign(ctx, "e1", "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = svc.Assign(ctx, "", "u1")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestAssignExperimentNotRunning(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)

	exp := seedRunningExperiment(t, db, "e1")
	require.NoError(t, db.UpdateExperimentStatus(ctx, exp.ID, domain.ExperimentStatusStopped))

	_, err := svc.Assign(ctx, "e1", "u1")
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "expected invalid_state, got %v", err)
}

func TestAssignSurvivesStop(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	seedRunningExperiment(t, db, "e1")

	before, err := svc.Assign(ctx, "e1", "u1")
	require.NoError(t, err)

	require.NoError(t, db.UpdateExperimentStatus(ctx, "e1", domain.ExperimentStatusStopped))

	// Already-assigned users keep their variant after the experiment stops.
	after, err := svc.Assign(ctx, "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, before.Variant, after.Variant)
}

func TestAssignEvenSplitDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping distribution test in short mode")
	}

	ctx := context.Background()
	svc, db := newTestService(t)
	seedRunningExperiment(t, db, "e1")

	const n = 10000
	countA := 0
	for i := 0; i < n; i++ {
		a, err := svc.Assign(ctx, "e1", fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		if a.Variant == "A" {
			countA++
		}
	}

	frac := float64(countA) / float64(n)
	assert.Greater(t, frac, 0.45, "A share too low: %.3f", frac)
	assert.Less(t, frac, 0.55, "A share too high: %.3f", frac)
}
