package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS experiments (
			experiment_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			variants TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			experiment_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (experiment_id, user_id),
			FOREIGN KEY (experiment_id) REFERENCES experiments(experiment_id)
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			experiment_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			event_type TEXT NOT NULL,
			occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			idempotency_key TEXT,
			FOREIGN KEY (experiment_id) REFERENCES experiments(experiment_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_experiment_type ON events(experiment_id, event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_occurred ON events(occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_events_idempotency ON events(experiment_id, user_id, idempotency_key, occurred_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExperiment creates a new experiment.
func (s *SQLiteStore) CreateExperiment(ctx context.Context, exp *domain.Experiment) error {
	variants, err := json.Marshal(exp.Variants)
	if err != nil {
		return fmt.Errorf("failed to marshal variants: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO experiments (experiment_id, name, description, variants, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.Name, nullString(exp.Description), string(variants), exp.Status, exp.CreatedAt)
	return err
}

// GetExperiment retrieves an experiment by ID. Returns nil when absent.
func (s *SQLiteStore) GetExperiment(ctx context.Context, experimentID string) (*domain.Experiment, error) {
	var exp domain.Experiment
	var description sql.NullString
	var variants string
	err := s.db.QueryRowContext(ctx,
		`SELECT experiment_id, name, description, variants, status, created_at FROM experiments WHERE experiment_id = ?`,
		experimentID).Scan(&exp.ID, &exp.Name, &description, &variants, &exp.Status, &exp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		exp.Description = description.String
	}
	if err := json.Unmarshal([]byte(variants), &exp.Variants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
	}
	return &exp, nil
}

// ListExperiments lists all experiments in creation order.
func (s *SQLiteStore) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT experiment_id, name, description, variants, status, created_at FROM experiments ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var experiments []domain.Experiment
	for rows.Next() {
		var exp domain.Experiment
		var description sql.NullString
		var variants string
		if err := rows.Scan(&exp.ID, &exp.Name, &description, &variants, &exp.Status, &exp.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			exp.Description = description.String
		}
		if err := json.Unmarshal([]byte(variants), &exp.Variants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
		}
		experiments = append(experiments, exp)
	}
	return experiments, rows.Err()
}

// UpdateExperimentStatus updates the lifecycle status of an experiment.
func (s *SQLiteStore) UpdateExperimentStatus(ctx context.Context, experimentID string, status domain.ExperimentStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE experiments SET status = ? WHERE experiment_id = ?`,
		status, experimentID)
	return err
}

// CreateAssignment inserts an assignment with create-if-absent semantics.
// Returns false when a row for the (experiment, user) pair already exists,
// in which case the caller must re-read the stored row.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, a *domain.Assignment) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO assignments (experiment_id, user_id, variant, assigned_at) VALUES (?, ?, ?, ?)`,
		a.ExperimentID, a.UserID, a.Variant, a.AssignedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetAssignment retrieves the assignment for a (experiment, user) pair.
// Returns nil when the user has never been assigned.
func (s *SQLiteStore) GetAssignment(ctx context.Context, experimentID, userID string) (*domain.Assignment, error) {
	var a domain.Assignment
	err := s.db.QueryRowContext(ctx,
		`SELECT experiment_id, user_id, variant, assigned_at FROM assignments WHERE experiment_id = ? AND user_id = ?`,
		experimentID, userID).Scan(&a.ExperimentID, &a.UserID, &a.Variant, &a.AssignedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateEvent appends a new event. Generates the event ID when empty.
func (s *SQLiteStore) CreateEvent(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = "evt_" + uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, experiment_id, user_id, variant, event_type, occurred_at, idempotency_key) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ExperimentID, e.UserID, e.Variant, e.EventType, e.OccurredAt, nullString(e.IdempotencyKey))
	return err
}

// GetEventByIdempotencyKey retrieves the most recent event for the key within
// the window starting at since. Returns nil when no match exists.
func (s *SQLiteStore) GetEventByIdempotencyKey(ctx context.Context, experimentID, userID, key string, since time.Time) (*domain.Event, error) {
	var e domain.Event
	var idemKey sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT event_id, experiment_id, user_id, variant, event_type, occurred_at, idempotency_key
		 FROM events
		 WHERE experiment_id = ? AND user_id = ? AND idempotency_key = ? AND occurred_at >= ?
		 ORDER BY occurred_at DESC
		 LIMIT 1`,
		experimentID, userID, key, since).Scan(&e.ID, &e.ExperimentID, &e.UserID, &e.Variant, &e.EventType, &e.OccurredAt, &idemKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if idemKey.Valid {
		e.IdempotencyKey = idemKey.String
	}
	return &e, nil
}

// ListEvents retrieves events across all experiments, most recent first.
func (s *SQLiteStore) ListEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	query := `SELECT event_id, experiment_id, user_id, variant, event_type, occurred_at, idempotency_key
	          FROM events ORDER BY occurred_at DESC, event_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var idemKey sql.NullString
		if err := rows.Scan(&e.ID, &e.ExperimentID, &e.UserID, &e.Variant, &e.EventType, &e.OccurredAt, &idemKey); err != nil {
			return nil, err
		}
		if idemKey.Valid {
			e.IdempotencyKey = idemKey.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEventsByVariant counts events for an experiment grouped by variant.
// An empty eventType counts all event types. The scan takes no locks; events
// are append-only so successive counts never decrease.
func (s *SQLiteStore) CountEventsByVariant(ctx context.Context, experimentID, eventType string) (map[string]int64, error) {
	query := `SELECT variant, COUNT(*) FROM events WHERE experiment_id = ?`
	args := []interface{}{experimentID}
	if eventType != "" {
		query += ` AND event_type = ?`
		args = append(args, eventType)
	}
	query += ` GROUP BY variant`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var variant string
		var count int64
		if err := rows.Scan(&variant, &count); err != nil {
			return nil, err
		}
		counts[variant] = count
	}
	return counts, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
