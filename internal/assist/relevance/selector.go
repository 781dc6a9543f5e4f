// Package relevance scores and ranks timeline events against a classified
// request. Selection keeps at most three positively scored events and emits a
// reproducible explanation of each score.
package relevance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/carelens/carelens/internal/core/domain"
)

const (
	typeMatchScore    = 3
	keywordMatchScore = 2
	recencyBonusScore = 1
	maxSelectedItems  = 3
)

// allowedKinds maps each intent to the event kinds that earn a type match.
// IntentUnknown has no allowed kinds.
var allowedKinds = map[domain.IntentBucket][]domain.EventKind{
	domain.IntentScheduling:         {domain.EventKindVisit, domain.EventKindEvent},
	domain.IntentClinicalDrafting:   {domain.EventKindVisit, domain.EventKindNote},
	domain.IntentRecordSummary:      {domain.EventKindVisit, domain.EventKindNote, domain.EventKindEvent},
	domain.IntentBillingExplanation: {domain.EventKindVisit, domain.EventKindEvent},
}

// billingTerms gate the type match for billing_explanation: the event text
// itself must mention billing for the kind alone to count.
var billingTerms = []string{"bill", "billing", "charge", "invoice", "insurance", "copay", "cost", "payment"}

// Select scores every timeline event against the classified intent and the
// message's content keywords, keeping the top three positively scored events.
// Recency alone never selects an event.
func Select(message string, intent domain.IntentClassification, timeline domain.Timeline) domain.RelevanceResult {
	keywords := ContentKeywords(message)
	mostRecent := mostRecentDate(timeline.Events)

	var scored []domain.ScoredTimelineItem
	for _, ev := range timeline.Events {
		item := scoreEvent(ev, intent.Intent, keywords, mostRecent)
		if item.Breakdown.TypeMatch > 0 || item.Breakdown.KeywordMatch > 0 {
			scored = append(scored, item)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Event.Date.After(scored[j].Event.Date)
	})
	if len(scored) > maxSelectedItems {
		scored = scored[:maxSelectedItems]
	}

	return domain.RelevanceResult{
		Intent:              intent.Intent,
		SelectedItems:       scored,
		Explanation:         explain(intent, scored),
		HasEvidence:         len(scored) > 0,
		EvidenceAttribution: attribution(scored),
	}
}

func scoreEvent(ev domain.TimelineEvent, intent domain.IntentBucket, keywords []string, mostRecent time.Time) domain.ScoredTimelineItem {
	text := strings.ToLower(ev.Title + " " + ev.Summary)

	var breakdown domain.ScoreBreakdown
	if kindAllowed(intent, ev.Kind) && passesBillingGate(intent, text) {
		breakdown.TypeMatch = typeMatchScore
	}

	// First keyword hit stops the scan; the score is not cumulative.
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			breakdown.KeywordMatch = keywordMatchScore
			break
		}
	}

	if !mostRecent.IsZero() && ev.Date.Equal(mostRecent) {
		breakdown.RecencyBonus = recencyBonusScore
	}

	return domain.ScoredTimelineItem{
		Event:     ev,
		Score:     breakdown.TypeMatch + breakdown.KeywordMatch + breakdown.RecencyBonus,
		Breakdown: breakdown,
	}
}

func kindAllowed(intent domain.IntentBucket, kind domain.EventKind) bool {
	for _, k := range allowedKinds[intent] {
		if k == kind {
			return true
		}
	}
	return false
}

func passesBillingGate(intent domain.IntentBucket, text string) bool {
	if intent != domain.IntentBillingExplanation {
		return true
	}
	for _, term := range billingTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func mostRecentDate(events []domain.TimelineEvent) time.Time {
	var latest time.Time
	for _, ev := range events {
		if ev.Date.After(latest) {
			latest = ev.Date
		}
	}
	return latest
}

// explain renders the selection rationale as reproducible bullet strings.
func explain(intent domain.IntentClassification, items []domain.ScoredTimelineItem) []string {
	bullets := []string{intentBullet(intent)}
	for _, item := range items {
		bullets = append(bullets, itemBullet(item))
	}
	if len(items) == 0 {
		bullets = append(bullets, "No timeline entries matched this request.")
	}
	return bullets
}

func intentBullet(intent domain.IntentClassification) string {
	if len(intent.MatchedKeywords) == 0 {
		return fmt.Sprintf("Interpreted request as: %s", intent.Intent)
	}
	return fmt.Sprintf("Interpreted request as: %s (matched: %s)", intent.Intent, strings.Join(intent.MatchedKeywords, ", "))
}

func itemBullet(item domain.ScoredTimelineItem) string {
	var tags []string
	if item.Breakdown.TypeMatch > 0 {
		tags = append(tags, "type match")
	}
	if item.Breakdown.KeywordMatch > 0 {
		tags = append(tags, "keyword match")
	}
	if item.Breakdown.RecencyBonus > 0 {
		tags = append(tags, "most recent")
	}
	return fmt.Sprintf("%s %s (score %d: %s)",
		item.Event.Date.Format("2006-01-02"), item.Event.Title, item.Score, strings.Join(tags, ", "))
}

func attribution(items []domain.ScoredTimelineItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%s: %s", item.Event.Date.Format("2006-01-02"), item.Event.Title))
	}
	return out
}
