package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelens/carelens/internal/core/domain"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

var referenceNow = date("2025-08-20")

func sampleTimeline() domain.Timeline {
	return domain.Timeline{
		PatientID: "p-100",
		Events: []domain.TimelineEvent{
			{Date: date("2025-05-10"), Kind: domain.EventKindVisit, Title: "Annual physical", Summary: "Routine exam, mild knee pain reported"},
			{Date: date("2025-08-15"), Kind: domain.EventKindVisit, Title: "Follow-up visit", Summary: "Knee pain improving, discussed imaging"},
			{Date: date("2025-08-16"), Kind: domain.EventKindEvent, Title: "Referral: Physical Therapy", Summary: "Referral issued for knee rehabilitation"},
		},
	}
}

func TestBuildInsightsLastEncounterAndDays(t *testing.T) {
	in := Input{
		Intent:   domain.IntentScheduling,
		Message:  "schedule an appointment for my knee",
		Timeline: sampleTimeline(),
		Now:      referenceNow,
	}

	got := BuildInsights(in)

	require.NotNil(t, got.LastEncounter)
	assert.Equal(t, "Follow-up visit", got.LastEncounter.Title)
	assert.Equal(t, 5, got.TimeSinceLastEncounterDays)
}

func TestBuildInsightsCareGap(t *testing.T) {
	got := BuildInsights(Input{
		Intent:   domain.IntentRecordSummary,
		Message:  "what happened recently",
		Timeline: sampleTimeline(),
		Now:      referenceNow,
	})

	assert.Contains(t, got.Gaps, "Care gap: 2025-05-10 to 2025-08-15 (97 days)")
}

func TestBuildInsightsReferralGap(t *testing.T) {
	// The referral on 2025-08-16 has no visit within the next 90 days.
	got := BuildInsights(Input{
		Intent:   domain.IntentScheduling,
		Message:  "book physical therapy",
		Timeline: sampleTimeline(),
		Now:      referenceNow,
	})

	require.NotEmpty(t, got.Gaps)
	referralGap := got.Gaps[0] // referral gaps come before chronological gaps
	assert.Contains(t, referralGap, "Referral with no follow-up")
	assert.Contains(t, referralGap, "Physical Therapy")
}

func TestBuildInsightsReferralWithFollowUpIsNotAGap(t *testing.T) {
	timeline := sampleTimeline()
	timeline.Events = append(timeline.Events, domain.TimelineEvent{
		Date: date("2025-09-10"), Kind: domain.EventKindVisit,
		Title: "PT intake", Summary: "Initial physical therapy session",
	})

	got := BuildInsights(Input{
		Intent:   domain.IntentScheduling,
		Message:  "book physical therapy",
		Timeline: timeline,
		Now:      referenceNow,
	})

	for _, gap := range got.Gaps {
		assert.NotContains(t, gap, "Referral with no follow-up")
	}
}

func TestBuildInsightsDifferences(t *testing.T) {
	timeline := domain.Timeline{
		PatientID: "p-100",
		Events: []domain.TimelineEvent{
			{Date: date("2025-08-15"), Kind: domain.EventKindVisit, Title: "Visit", Summary: "knee"},
		},
	}

	got := BuildInsights(Input{
		Intent:   domain.IntentScheduling,
		Message:  "schedule shoulder",
		Timeline: timeline,
		Now:      referenceNow,
	})

	// All "new" entries first, then all "previously mentioned" entries,
	// each in keyword extraction order.
	assert.Equal(t, []string{
		`New in this request: "schedule" was not discussed at the last encounter`,
		`New in this request: "shoulder" was not discussed at the last encounter`,
		`Previously mentioned but not in this request: "visit"`,
		`Previously mentioned but not in this request: "knee"`,
	}, got.DifferencesVsLastEncounter)
}

func TestBuildInsightsDifferencesCap(t *testing.T) {
	timeline := domain.Timeline{
		PatientID: "p-100",
		Events: []domain.TimelineEvent{
			{Date: date("2025-08-15"), Kind: domain.EventKindVisit, Title: "Visit", Summary: "knee hip ankle wrist elbow"},
		},
	}

	got := BuildInsights(Input{
		Intent:   domain.IntentScheduling,
		Message:  "schedule shoulder neck spine jaw",
		Timeline: timeline,
		Now:      referenceNow,
	})

	assert.Len(t, got.DifferencesVsLastEncounter, 4)
}

func TestBuildInsightsTrends(t *testing.T) {
	items := []domain.ScoredTimelineItem{
		{Event: sampleTimeline().Events[2], Score: 6},
	}
	got := BuildInsights(Input{
		Intent:        domain.IntentScheduling,
		Message:       "my knee again",
		RelevantItems: items,
		Timeline:      sampleTimeline(),
		Now:           referenceNow,
	})

	require.NotEmpty(t, got.Trends)
	assert.Equal(t, `Repeated mention of "knee" across the record (3 times)`, got.Trends[0])
	assert.Equal(t, "Recent activity: at least one relevant record is from the last 30 days", got.Trends[len(got.Trends)-1])
	assert.LessOrEqual(t, len(got.Trends), 4)
}

func TestBuildInsightsEmptyTimeline(t *testing.T) {
	got := BuildInsights(Input{
		Intent:   domain.IntentUnknown,
		Message:  "hello",
		Timeline: domain.Timeline{PatientID: "p-100"},
		Now:      referenceNow,
	})

	assert.Nil(t, got.LastEncounter)
	assert.Zero(t, got.TimeSinceLastEncounterDays)
	assert.Empty(t, got.DifferencesVsLastEncounter)
	assert.Empty(t, got.Trends)
	assert.Empty(t, got.Gaps)
	assert.Empty(t, got.EvidenceAttribution)
}

func TestBuildInsightsAttributionDedupedByDate(t *testing.T) {
	timeline := sampleTimeline()
	items := []domain.ScoredTimelineItem{
		{Event: timeline.Events[1]}, // same date as last encounter
		{Event: timeline.Events[2]},
	}

	got := BuildInsights(Input{
		Intent:        domain.IntentScheduling,
		Message:       "knee",
		RelevantItems: items,
		Timeline:      timeline,
		Now:           referenceNow,
	})

	assert.Equal(t, []string{
		"2025-08-15: Follow-up visit",
		"2025-08-16: Referral: Physical Therapy",
	}, got.EvidenceAttribution)
}
