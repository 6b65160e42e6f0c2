package domain

import "time"

// Variant is one arm of an experiment. Order within an experiment is
// significant: bucketing walks the cumulative weights in variant order.
type Variant struct {
	Label  string `json:"label"`
	Weight int64  `json:"weight"`
}

// Experiment is a named comparison between two or more variants.
type Experiment struct {
	ID          string           `json:"experiment_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Variants    []Variant        `json:"variants"`
	Status      ExperimentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TotalWeight returns the sum of all variant weights.
func (e *Experiment) TotalWeight() int64 {
	var total int64
	for _, v := range e.Variants {
		total += v.Weight
	}
	return total
}

// HasVariant reports whether label names one of the experiment's variants.
func (e *Experiment) HasVariant(label string) bool {
	for _, v := range e.Variants {
		if v.Label == label {
			return true
		}
	}
	return false
}

// Assignment is the durable, one-time binding of a user to a variant within
// an experiment. At most one exists per (experiment, user) pair and it is
// never mutated or deleted.
type Assignment struct {
	ExperimentID string    `json:"experiment_id"`
	UserID       string    `json:"user_id"`
	Variant      string    `json:"variant"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// Event is a timestamped record of a user action attributed to a variant.
// Events are append-only; Variant is copied from the user's assignment at
// ingest time so attribution survives later experiment changes.
type Event struct {
	ID             string    `json:"id"`
	ExperimentID   string    `json:"experiment_id"`
	UserID         string    `json:"user_id"`
	Variant        string    `json:"variant"`
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"timestamp"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

// VariantCount is one row of an aggregation result, in variant order.
type VariantCount struct {
	Variant string `json:"variant"`
	Count   int64  `json:"count"`
}
