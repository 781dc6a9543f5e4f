// Package ports defines the interfaces between the reasoning core and its
// external collaborators. The core never chooses or fetches its inputs; a
// caller selects a DataSource and hands the core immutable values.
package ports

import (
	"context"

	"github.com/carelens/carelens/internal/core/domain"
)

// DataSource supplies the static patient history the core reasons over.
// Implementations must return data the caller can treat as immutable.
type DataSource interface {
	// Timeline returns the dated event history for a patient.
	Timeline(ctx context.Context, patientID string) (domain.Timeline, error)
	// PatientContext returns demographics, medications, and conditions.
	PatientContext(ctx context.Context, patientID string) (domain.PatientContext, error)
}

// SourceMode selects which fixture set a data source serves.
type SourceMode string

const (
	// ModeLive serves the primary fixture set.
	ModeLive SourceMode = "live"
	// ModeShadow serves the alternate fixture set used for side-by-side
	// comparison during development.
	ModeShadow SourceMode = "shadow"
)
