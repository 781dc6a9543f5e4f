// Package readiness maps a classified, evidenced request onto the category
// of human action it would normally require. Precedence is strict and first
// match wins; uncertainty always overrides the per-intent mapping.
package readiness

import (
	"github.com/carelens/carelens/internal/core/domain"
)

// noActionAssertion terminates every explanation. Content contract, not style.
const noActionAssertion = "No action has been taken."

// Evaluate applies the precedence rules:
//  1. unknown intent or no evidence is not actionable;
//  2. any UNCERTAIN annotation requires additional data;
//  3. otherwise the fixed per-intent mapping applies.
func Evaluate(intent domain.IntentBucket, rel domain.RelevanceResult, annotations []domain.ConfidenceAnnotation) domain.ActionReadinessResult {
	if intent == domain.IntentUnknown || !rel.HasEvidence {
		return result(domain.ReadinessNotActionable,
			"This request could not be matched to a supported, evidenced action in this system.")
	}

	for _, ann := range annotations {
		if ann.Category == domain.CategoryUncertain {
			return result(domain.ReadinessRequiresData,
				"An uncertainty was flagged during reasoning, so additional data would normally be required before anything could proceed.")
		}
	}

	switch intent {
	case domain.IntentScheduling:
		return result(domain.ReadinessRequiresPatient,
			"A scheduling request would normally require the patient to confirm a proposed time.")
	case domain.IntentClinicalDrafting:
		return result(domain.ReadinessRequiresClinician,
			"A drafted clinical document would normally require clinician review before any use.")
	case domain.IntentRecordSummary, domain.IntentBillingExplanation:
		return result(domain.ReadinessInformationalOnly,
			"This request is informational: it reads the record and explains it.")
	default:
		return result(domain.ReadinessNotActionable,
			"This request does not map to an action this system can describe.")
	}
}

func result(category domain.ReadinessCategory, explanation string) domain.ActionReadinessResult {
	return domain.ActionReadinessResult{
		Category:    category,
		Explanation: explanation + " " + noActionAssertion,
	}
}
