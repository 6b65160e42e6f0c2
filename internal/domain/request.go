package domain

// LogResultRequest is the body of POST /log-ab-test-result.
type LogResultRequest struct {
	TestID         string `json:"test_id"`
	UserID         string `json:"user_id"`
	EventType      string `json:"event_type"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// LogResultResponse acknowledges a recorded event. Duplicate is true when an
// idempotency key matched an event already stored within the dedupe window.
type LogResultResponse struct {
	Message   string `json:"message"`
	EventID   string `json:"event_id"`
	Variant   string `json:"variant"`
	Duplicate bool   `json:"duplicate"`
}

// AssignResponse is returned by POST /assign-user/:experiment_id/:user_id.
// Variant carries the assigned label explicitly; Message embeds it for
// clients that render the text directly.
type AssignResponse struct {
	Message      string `json:"message"`
	ExperimentID string `json:"experiment_id"`
	UserID       string `json:"user_id"`
	Variant      string `json:"variant"`
}

// EventRecord is one entry of the GET /events feed.
type EventRecord struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

// EventsResponse wraps the event feed. Results is always non-nil.
type EventsResponse struct {
	Results []EventRecord `json:"results"`
}

// CreateExperimentRequest is the internal API body for creating an experiment.
type CreateExperimentRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Variants    []Variant `json:"variants"`
}

// UpdateStatusRequest is the internal API body for a lifecycle transition.
type UpdateStatusRequest struct {
	Status ExperimentStatus `json:"status"`
}
