// Package sqlite provides a SQLite-backed data source. It serves the same
// read-only patient history the embedded fixtures do, for deployments where
// the history is loaded out of band rather than compiled in.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/carelens/carelens/internal/core/domain"
	"github.com/carelens/carelens/internal/core/ports"
)

// Store implements ports.DataSource over a SQLite database.
type Store struct {
	db *sqlx.DB
}

var _ ports.DataSource = (*Store)(nil)

var pragmaStatements = []string{
	`PRAGMA journal_mode = WAL`,
	`PRAGMA foreign_keys = ON`,
	`PRAGMA busy_timeout = 5000`,
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
id TEXT PRIMARY KEY,
name TEXT NOT NULL,
birth_year INTEGER NOT NULL,
created_at TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS patient_medications (
patient_id TEXT NOT NULL,
position INTEGER NOT NULL,
medication TEXT NOT NULL,
PRIMARY KEY (patient_id, position),
FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS patient_conditions (
patient_id TEXT NOT NULL,
position INTEGER NOT NULL,
condition TEXT NOT NULL,
PRIMARY KEY (patient_id, position),
FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS timeline_events (
id INTEGER PRIMARY KEY AUTOINCREMENT,
patient_id TEXT NOT NULL,
event_date TIMESTAMP NOT NULL,
kind TEXT NOT NULL,
title TEXT NOT NULL,
summary TEXT NOT NULL,
FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_events_patient ON timeline_events(patient_id, event_date)`,
}

// Open opens (or creates) a SQLite database at the given DSN and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	for _, stmt := range pragmaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: execute pragma: %w", err)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// DB returns the underlying sqlx.DB for advanced operations.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: execute schema statement: %w", err)
		}
	}
	return nil
}

type patientRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	BirthYear int    `db:"birth_year"`
}

type eventRow struct {
	Date    time.Time `db:"event_date"`
	Kind    string    `db:"kind"`
	Title   string    `db:"title"`
	Summary string    `db:"summary"`
}

// Timeline returns the dated event history for a patient, oldest first.
func (s *Store) Timeline(ctx context.Context, patientID string) (domain.Timeline, error) {
	var exists int
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM patients WHERE id = ?`, patientID)
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("sqlite: look up patient: %w", err)
	}
	if exists == 0 {
		return domain.Timeline{}, fmt.Errorf("sqlite: unknown patient %q", patientID)
	}

	var rows []eventRow
	err = s.db.SelectContext(ctx, &rows,
		`SELECT event_date, kind, title, summary FROM timeline_events
		 WHERE patient_id = ? ORDER BY event_date ASC, id ASC`, patientID)
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("sqlite: query timeline: %w", err)
	}

	timeline := domain.Timeline{PatientID: patientID}
	for _, row := range rows {
		timeline.Events = append(timeline.Events, domain.TimelineEvent{
			Date:    row.Date.UTC(),
			Kind:    domain.EventKind(row.Kind),
			Title:   row.Title,
			Summary: row.Summary,
		})
	}

	return timeline, nil
}

// PatientContext returns demographics, medications, and conditions.
func (s *Store) PatientContext(ctx context.Context, patientID string) (domain.PatientContext, error) {
	var row patientRow
	err := s.db.GetContext(ctx, &row, `SELECT id, name, birth_year FROM patients WHERE id = ?`, patientID)
	if err != nil {
		return domain.PatientContext{}, fmt.Errorf("sqlite: unknown patient %q: %w", patientID, err)
	}

	pc := domain.PatientContext{
		PatientID: row.ID,
		Name:      row.Name,
		BirthYear: row.BirthYear,
	}

	err = s.db.SelectContext(ctx, &pc.Medications,
		`SELECT medication FROM patient_medications WHERE patient_id = ? ORDER BY position ASC`, patientID)
	if err != nil {
		return domain.PatientContext{}, fmt.Errorf("sqlite: query medications: %w", err)
	}

	err = s.db.SelectContext(ctx, &pc.Conditions,
		`SELECT condition FROM patient_conditions WHERE patient_id = ? ORDER BY position ASC`, patientID)
	if err != nil {
		return domain.PatientContext{}, fmt.Errorf("sqlite: query conditions: %w", err)
	}

	return pc, nil
}

// SeedPatient inserts a patient profile and timeline in one transaction.
// It is used to load fixture data into a fresh database.
func (s *Store) SeedPatient(ctx context.Context, patient domain.PatientContext, timeline domain.Timeline) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO patients (id, name, birth_year, created_at) VALUES (?, ?, ?, ?)`,
		patient.PatientID, patient.Name, patient.BirthYear, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: insert patient: %w", err)
	}

	for i, med := range patient.Medications {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO patient_medications (patient_id, position, medication) VALUES (?, ?, ?)`,
			patient.PatientID, i, med)
		if err != nil {
			return fmt.Errorf("sqlite: insert medication: %w", err)
		}
	}

	for i, cond := range patient.Conditions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO patient_conditions (patient_id, position, condition) VALUES (?, ?, ?)`,
			patient.PatientID, i, cond)
		if err != nil {
			return fmt.Errorf("sqlite: insert condition: %w", err)
		}
	}

	for _, ev := range timeline.Events {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO timeline_events (patient_id, event_date, kind, title, summary) VALUES (?, ?, ?, ?, ?)`,
			patient.PatientID, ev.Date.UTC(), ev.Kind, ev.Title, ev.Summary)
		if err != nil {
			return fmt.Errorf("sqlite: insert timeline event: %w", err)
		}
	}

	return tx.Commit()
}
