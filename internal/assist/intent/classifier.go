// Package intent maps free-text requests onto the closed intent buckets via
// keyword matching. No natural-language understanding happens here; the
// classifier is a pure function over a fixed rule table.
package intent

import (
	"strings"

	"github.com/carelens/carelens/internal/core/domain"
)

// bucketRule pairs a bucket with its ordered keyword list. Declaration order
// is the tie-break priority: the first declared bucket wins a tied match
// count.
type bucketRule struct {
	bucket   domain.IntentBucket
	keywords []string
}

var rules = []bucketRule{
	{domain.IntentScheduling, []string{"schedule", "appointment", "book", "reschedule", "availability", "see the doctor"}},
	{domain.IntentClinicalDrafting, []string{"draft", "letter", "prescription", "refill", "write a note"}},
	{domain.IntentRecordSummary, []string{"summary", "summarize", "history", "records", "overview", "what happened"}},
	{domain.IntentBillingExplanation, []string{"bill", "billing", "charge", "invoice", "cost", "insurance", "copay"}},
}

// Classify buckets a message by substring keyword matching. The bucket with
// the most matches wins; no matches at all yields IntentUnknown. Confidence
// is high iff the winning bucket matched at least two keywords.
func Classify(message string) domain.IntentClassification {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return domain.IntentClassification{
			Intent:     domain.IntentUnknown,
			Confidence: domain.IntentConfidenceLow,
		}
	}

	best := domain.IntentClassification{
		Intent:     domain.IntentUnknown,
		Confidence: domain.IntentConfidenceLow,
	}
	bestCount := 0

	for _, rule := range rules {
		var matched []string
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > bestCount {
			bestCount = len(matched)
			best.Intent = rule.bucket
			best.MatchedKeywords = matched
		}
	}

	if bestCount >= 2 {
		best.Confidence = domain.IntentConfidenceHigh
	}
	return best
}
