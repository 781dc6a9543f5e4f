package confirmation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelens/carelens/internal/assist/safety"
	"github.com/carelens/carelens/internal/core/domain"
)

func TestEvaluateLookupTable(t *testing.T) {
	tests := []struct {
		name         string
		readiness    domain.ReadinessCategory
		wantActor    domain.RequiredActor
		wantDecision domain.DecisionType
	}{
		{"patient confirmation", domain.ReadinessRequiresPatient, domain.ActorPatient, domain.DecisionConfirm},
		{"clinician review", domain.ReadinessRequiresClinician, domain.ActorClinician, domain.DecisionReview},
		{"additional data", domain.ReadinessRequiresData, domain.ActorOperator, domain.DecisionProvideData},
		{"informational", domain.ReadinessInformationalOnly, domain.ActorNone, domain.DecisionNotApplicable},
		{"not actionable", domain.ReadinessNotActionable, domain.ActorNone, domain.DecisionNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(domain.IntentScheduling, tt.readiness, domain.ConfidenceHigh)
			assert.Equal(t, tt.wantActor, got.RequiredActor)
			assert.Equal(t, tt.wantDecision, got.DecisionType)
		})
	}
}

func TestEvaluatePreviewOptions(t *testing.T) {
	got := Evaluate(domain.IntentScheduling, domain.ReadinessRequiresPatient, domain.ConfidenceHigh)
	assert.Equal(t, []string{"Accept proposed time", "Request alternative", "Decline"}, got.PreviewOptions)

	// NOT_APPLICABLE yields an empty list regardless of intent.
	none := Evaluate(domain.IntentScheduling, domain.ReadinessInformationalOnly, domain.ConfidenceHigh)
	assert.Empty(t, none.PreviewOptions)
}

func TestEvaluateOptionsEmptyIffNotApplicable(t *testing.T) {
	for _, readiness := range []domain.ReadinessCategory{
		domain.ReadinessRequiresPatient,
		domain.ReadinessRequiresClinician,
		domain.ReadinessRequiresData,
		domain.ReadinessInformationalOnly,
		domain.ReadinessNotActionable,
	} {
		got := Evaluate(domain.IntentClinicalDrafting, readiness, domain.ConfidenceMedium)
		if got.DecisionType == domain.DecisionNotApplicable {
			assert.Empty(t, got.PreviewOptions)
		} else {
			assert.NotEmpty(t, got.PreviewOptions)
		}
	}
}

func TestEvaluateLowConfidenceAddendum(t *testing.T) {
	low := Evaluate(domain.IntentScheduling, domain.ReadinessRequiresPatient, domain.ConfidenceLow)
	assert.Contains(t, low.Rationale, "Confidence in this interpretation is low")

	high := Evaluate(domain.IntentScheduling, domain.ReadinessRequiresPatient, domain.ConfidenceHigh)
	assert.NotContains(t, high.Rationale, "Confidence in this interpretation is low")
}

func TestEvaluateNoneActorText(t *testing.T) {
	got := Evaluate(domain.IntentRecordSummary, domain.ReadinessInformationalOnly, domain.ConfidenceHigh)
	assert.Contains(t, got.Explanation, "would not normally require")
	assert.NotContains(t, got.Rationale, "No action has been taken")
}

func TestEvaluateTextPassesSafetyValidator(t *testing.T) {
	intents := []domain.IntentBucket{
		domain.IntentScheduling, domain.IntentClinicalDrafting,
		domain.IntentRecordSummary, domain.IntentBillingExplanation, domain.IntentUnknown,
	}
	readinesses := []domain.ReadinessCategory{
		domain.ReadinessRequiresPatient, domain.ReadinessRequiresClinician,
		domain.ReadinessRequiresData, domain.ReadinessInformationalOnly, domain.ReadinessNotActionable,
	}
	levels := []domain.ConfidenceLevel{domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow}

	for _, intent := range intents {
		for _, readiness := range readinesses {
			for _, level := range levels {
				got := Evaluate(intent, readiness, level)
				require.True(t, safety.ValidateLanguageSafety(got.Explanation).IsValid, "explanation: %q", got.Explanation)
				require.True(t, safety.ValidateLanguageSafety(got.Rationale).IsValid, "rationale: %q", got.Rationale)
				require.True(t, safety.HasConditionalLanguage(got.Explanation), "explanation: %q", got.Explanation)
			}
		}
	}
}
