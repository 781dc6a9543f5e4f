package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelens/carelens/internal/core/domain"
)

var relevanceWithEvidence = domain.RelevanceResult{
	Intent:      domain.IntentScheduling,
	HasEvidence: true,
	SelectedItems: []domain.ScoredTimelineItem{
		{Event: domain.TimelineEvent{Title: "Follow-up visit"}, Score: 5},
	},
}

var uncertain = domain.ConfidenceAnnotation{
	Statement:  "Care gap detected",
	Category:   domain.CategoryUncertain,
	Confidence: domain.ConfidenceLow,
}

func TestEvaluatePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		intent      domain.IntentBucket
		rel         domain.RelevanceResult
		annotations []domain.ConfidenceAnnotation
		want        domain.ReadinessCategory
	}{
		{
			name:   "unknown intent is not actionable",
			intent: domain.IntentUnknown,
			rel:    relevanceWithEvidence,
			want:   domain.ReadinessNotActionable,
		},
		{
			name:   "no evidence is not actionable even for scheduling",
			intent: domain.IntentScheduling,
			rel:    domain.RelevanceResult{Intent: domain.IntentScheduling},
			want:   domain.ReadinessNotActionable,
		},
		{
			name:        "uncertainty overrides the per-intent mapping",
			intent:      domain.IntentScheduling,
			rel:         relevanceWithEvidence,
			annotations: []domain.ConfidenceAnnotation{uncertain},
			want:        domain.ReadinessRequiresData,
		},
		{
			name:   "scheduling requires patient confirmation",
			intent: domain.IntentScheduling,
			rel:    relevanceWithEvidence,
			want:   domain.ReadinessRequiresPatient,
		},
		{
			name:   "drafting requires clinician review",
			intent: domain.IntentClinicalDrafting,
			rel:    relevanceWithEvidence,
			want:   domain.ReadinessRequiresClinician,
		},
		{
			name:   "record summary is informational",
			intent: domain.IntentRecordSummary,
			rel:    relevanceWithEvidence,
			want:   domain.ReadinessInformationalOnly,
		},
		{
			name:   "billing explanation is informational",
			intent: domain.IntentBillingExplanation,
			rel:    relevanceWithEvidence,
			want:   domain.ReadinessInformationalOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.intent, tt.rel, tt.annotations)
			assert.Equal(t, tt.want, got.Category)
			assert.Contains(t, got.Explanation, "No action has been taken")
		})
	}
}
