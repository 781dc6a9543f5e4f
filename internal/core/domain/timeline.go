// Package domain defines the closed data model of the reasoning core.
// Every type here is created fresh per reasoning pass, carries no identity
// beyond that pass, and is never written back into the timeline or patient
// context.
package domain

import "time"

// EventKind identifies the kind of a timeline event.
type EventKind string

const (
	EventKindVisit EventKind = "visit"
	EventKindNote  EventKind = "note"
	EventKindEvent EventKind = "event"
)

// TimelineEvent is one dated entry in a patient's history. Events are
// immutable and externally supplied; storage order carries no meaning, only
// the Date field does.
type TimelineEvent struct {
	Date    time.Time `json:"date"`
	Kind    EventKind `json:"kind"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
}

// Timeline is the ordered-by-date collection of events for one patient.
type Timeline struct {
	PatientID string          `json:"patient_id"`
	Events    []TimelineEvent `json:"events"`
}

// PatientContext carries the static demographic and clinical background the
// core consumes as an opaque read-only input.
type PatientContext struct {
	PatientID   string   `json:"patient_id"`
	Name        string   `json:"name"`
	BirthYear   int      `json:"birth_year"`
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions"`
}
