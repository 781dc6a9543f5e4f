package confidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelens/carelens/internal/core/domain"
)

func relevanceWithEvidence() domain.RelevanceResult {
	d, _ := time.Parse("2006-01-02", "2025-08-15")
	return domain.RelevanceResult{
		Intent: domain.IntentScheduling,
		SelectedItems: []domain.ScoredTimelineItem{
			{Event: domain.TimelineEvent{Date: d, Kind: domain.EventKindVisit, Title: "Follow-up visit"}, Score: 5},
		},
		HasEvidence: true,
	}
}

func TestAnnotateFullSet(t *testing.T) {
	insights := domain.ComparativeInsights{
		Trends:                     []string{`Repeated mention of "knee" across the record (3 times)`},
		DifferencesVsLastEncounter: []string{`New in this request: "imaging" was not discussed at the last encounter`},
		Gaps:                       []string{"Care gap: 2025-05-10 to 2025-08-15 (97 days)"},
	}

	got := Annotate(relevanceWithEvidence(), insights)

	require.Len(t, got, 4)
	assert.Equal(t, domain.CategoryObserved, got[0].Category)
	assert.Equal(t, domain.ConfidenceHigh, got[0].Confidence)
	assert.Contains(t, got[0].Statement, "Follow-up visit")

	assert.Equal(t, domain.CategoryPattern, got[1].Category)
	assert.Equal(t, insights.Trends[0], got[1].Statement)

	assert.Equal(t, domain.CategoryComparative, got[2].Category)
	assert.Equal(t, insights.DifferencesVsLastEncounter[0], got[2].Statement)

	assert.Equal(t, domain.CategoryUncertain, got[3].Category)
	assert.Equal(t, insights.Gaps[0], got[3].Statement)
}

func TestAnnotateNoEvidenceEmitsGenericUncertain(t *testing.T) {
	rel := domain.RelevanceResult{Intent: domain.IntentScheduling}
	got := Annotate(rel, domain.ComparativeInsights{})

	require.Len(t, got, 1)
	assert.Equal(t, domain.CategoryUncertain, got[0].Category)
	assert.Equal(t, "No relevant evidence was found in the record for this request", got[0].Statement)
}

func TestAnnotateGapSuppressesNoEvidenceAnnotation(t *testing.T) {
	rel := domain.RelevanceResult{Intent: domain.IntentScheduling}
	insights := domain.ComparativeInsights{Gaps: []string{"Care gap: 2025-01-01 to 2025-06-01 (151 days)"}}

	got := Annotate(rel, insights)

	require.Len(t, got, 1)
	assert.Equal(t, insights.Gaps[0], got[0].Statement)
}

func TestAnnotateUnknownIntentAppendsSecondUncertain(t *testing.T) {
	rel := domain.RelevanceResult{Intent: domain.IntentUnknown}
	got := Annotate(rel, domain.ComparativeInsights{})

	require.Len(t, got, 2)
	assert.Equal(t, domain.CategoryUncertain, got[0].Category)
	assert.Equal(t, domain.CategoryUncertain, got[1].Category)
	assert.Equal(t, "The intent of this request is ambiguous", got[1].Statement)
}

func TestAnnotateNeverExceedsFive(t *testing.T) {
	insights := domain.ComparativeInsights{
		Trends:                     []string{"t1", "t2"},
		DifferencesVsLastEncounter: []string{"d1"},
		Gaps:                       []string{"g1"},
	}
	rel := relevanceWithEvidence()
	rel.Intent = domain.IntentUnknown

	got := Annotate(rel, insights)
	assert.LessOrEqual(t, len(got), 5)
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		anns []domain.ConfidenceAnnotation
		want domain.ConfidenceLevel
	}{
		{"uncertain forces low", []domain.ConfidenceAnnotation{
			{Category: domain.CategoryObserved},
			{Category: domain.CategoryUncertain},
		}, domain.ConfidenceLow},
		{"observed without uncertain is high", []domain.ConfidenceAnnotation{
			{Category: domain.CategoryObserved},
			{Category: domain.CategoryPattern},
		}, domain.ConfidenceHigh},
		{"pattern only is medium", []domain.ConfidenceAnnotation{
			{Category: domain.CategoryPattern},
		}, domain.ConfidenceMedium},
		{"empty is low", nil, domain.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overall(tt.anns))
		})
	}
}
