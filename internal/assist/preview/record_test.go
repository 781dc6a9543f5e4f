package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelens/carelens/internal/assist/safety"
	"github.com/carelens/carelens/internal/core/domain"
)

var referenceNow = time.Date(2025, 8, 20, 10, 30, 0, 0, time.UTC)

func sampleConfirmation() domain.HumanConfirmationResult {
	return domain.HumanConfirmationResult{
		RequiredActor:  domain.ActorPatient,
		DecisionType:   domain.DecisionConfirm,
		PreviewOptions: []string{"Accept proposed time", "Request alternative", "Decline"},
		Rationale:      "Scheduling decisions rest with the patient. No action has been taken.",
	}
}

func samplePlan() *domain.ExecutionPlanResult {
	return &domain.ExecutionPlanResult{
		PlanID:  "plan-scheduling-20250820",
		Summary: "Propose an appointment time and hold it pending patient confirmation.",
		ProposedActions: []string{
			"Identify a suitable appointment slot from the practice calendar",
			"Draft a proposed time for the patient to review",
		},
	}
}

func TestCreateRecord(t *testing.T) {
	rec := CreateRecord(CreateInput{
		Confirmation: sampleConfirmation(),
		Plan:         samplePlan(),
		Now:          referenceNow,
	})

	assert.Equal(t, "preview-patient-20250820103000", rec.PreviewID)
	assert.Equal(t, domain.StateProposalCreated, rec.State)
	assert.Equal(t, domain.ActorPatient, rec.Actor)
	assert.Equal(t, samplePlan().Summary, rec.IntentSummary)
	assert.Equal(t, DefaultSessionRole, rec.SessionRole)

	require.Len(t, rec.WouldNormallyHappen, 2)
	for _, line := range rec.WouldNormallyHappen {
		assert.True(t, safety.HasConditionalLanguage(line), "line: %q", line)
		assert.True(t, safety.ValidateLanguageSafety(line).IsValid, "line: %q", line)
	}
}

func TestCreateRecordWithoutPlan(t *testing.T) {
	rec := CreateRecord(CreateInput{
		Confirmation: domain.HumanConfirmationResult{RequiredActor: domain.ActorNone},
		Now:          referenceNow,
	})

	assert.Equal(t, "A preview of what this request would normally involve.", rec.IntentSummary)
	assert.Equal(t, []string{"Nothing would happen: this request carries no executable steps."}, rec.WouldNormallyHappen)
	assert.Equal(t, "No confirming decision would normally be needed; no action has been taken.", rec.ConfirmationRationale)
}

func TestCreateRecordCustomSessionRole(t *testing.T) {
	rec := CreateRecord(CreateInput{
		Confirmation: sampleConfirmation(),
		SessionRole:  "clinician-session",
		Now:          referenceNow,
	})
	assert.Equal(t, "clinician-session", rec.SessionRole)
}

func TestTransitionLifecycle(t *testing.T) {
	rec := CreateRecord(CreateInput{Confirmation: sampleConfirmation(), Plan: samplePlan(), Now: referenceNow})
	later := referenceNow.Add(5 * time.Minute)

	ack, err := Transition(rec, domain.StatePreviewAcknowledged, later)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePreviewAcknowledged, ack.State)
	assert.Equal(t, later, ack.Timestamp)

	// Every other field is unchanged.
	ack.State = rec.State
	ack.Timestamp = rec.Timestamp
	assert.Equal(t, rec, ack)

	// The input record was not mutated.
	assert.Equal(t, domain.StateProposalCreated, rec.State)
}

func TestTransitionClosure(t *testing.T) {
	rec := CreateRecord(CreateInput{Confirmation: sampleConfirmation(), Now: referenceNow})

	tests := []struct {
		name   string
		from   domain.PreviewState
		target domain.PreviewState
		valid  bool
	}{
		{"created to acknowledged", domain.StateProposalCreated, domain.StatePreviewAcknowledged, true},
		{"created to denied", domain.StateProposalCreated, domain.StatePreviewDenied, true},
		{"self transition is invalid", domain.StateProposalCreated, domain.StateProposalCreated, false},
		{"acknowledged is absorbing", domain.StatePreviewAcknowledged, domain.StatePreviewDenied, false},
		{"denied is absorbing", domain.StatePreviewDenied, domain.StatePreviewAcknowledged, false},
		{"terminal back to created is invalid", domain.StatePreviewAcknowledged, domain.StateProposalCreated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := rec
			in.State = tt.from
			got, err := Transition(in, tt.target, referenceNow)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.target, got.State)
			} else {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, domain.PreviewConfirmationRecord{}, got)
			}
		})
	}
}
