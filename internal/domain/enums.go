// Package domain defines the core domain models for the experimentation backend.
package domain

// ExperimentStatus represents the lifecycle state of an experiment.
type ExperimentStatus string

const (
	ExperimentStatusDraft   ExperimentStatus = "DRAFT"
	ExperimentStatusRunning ExperimentStatus = "RUNNING"
	ExperimentStatusStopped ExperimentStatus = "STOPPED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ExperimentStatus) Valid() bool {
	switch s {
	case ExperimentStatusDraft, ExperimentStatusRunning, ExperimentStatusStopped:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Allowed transitions: DRAFT -> RUNNING -> STOPPED.
func (s ExperimentStatus) CanTransitionTo(next ExperimentStatus) bool {
	switch s {
	case ExperimentStatusDraft:
		return next == ExperimentStatusRunning
	case ExperimentStatusRunning:
		return next == ExperimentStatusStopped
	}
	return false
}
