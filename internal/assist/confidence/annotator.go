// Package confidence classifies pipeline findings into epistemic categories.
// Emission order is fixed: OBSERVED, PATTERN, COMPARATIVE, UNCERTAIN, plus a
// second UNCERTAIN entry when the intent itself is ambiguous.
package confidence

import (
	"fmt"

	"github.com/carelens/carelens/internal/core/domain"
)

// Annotate is a pure transform of the relevance and comparative outputs into
// at most five confidence annotations.
func Annotate(rel domain.RelevanceResult, insights domain.ComparativeInsights) []domain.ConfidenceAnnotation {
	var out []domain.ConfidenceAnnotation

	if len(rel.SelectedItems) > 0 {
		top := rel.SelectedItems[0]
		out = append(out, domain.ConfidenceAnnotation{
			Statement: fmt.Sprintf("The record shows %q on %s",
				top.Event.Title, top.Event.Date.Format("2006-01-02")),
			Category:   domain.CategoryObserved,
			Confidence: domain.ConfidenceHigh,
			Reason:     "Quoted directly from a selected timeline entry",
		})
	}

	if len(insights.Trends) > 0 {
		out = append(out, domain.ConfidenceAnnotation{
			Statement:  insights.Trends[0],
			Category:   domain.CategoryPattern,
			Confidence: domain.ConfidenceMedium,
			Reason:     "Derived from repetition across the timeline, not a single entry",
		})
	}

	if len(insights.DifferencesVsLastEncounter) > 0 {
		out = append(out, domain.ConfidenceAnnotation{
			Statement:  insights.DifferencesVsLastEncounter[0],
			Category:   domain.CategoryComparative,
			Confidence: domain.ConfidenceMedium,
			Reason:     "Compares this request with the last recorded encounter",
		})
	}

	// Gap and no-evidence annotations are mutually exclusive.
	switch {
	case len(insights.Gaps) > 0:
		out = append(out, domain.ConfidenceAnnotation{
			Statement:  insights.Gaps[0],
			Category:   domain.CategoryUncertain,
			Confidence: domain.ConfidenceLow,
			Reason:     "A gap in the record limits what can be concluded",
		})
	case !rel.HasEvidence:
		out = append(out, domain.ConfidenceAnnotation{
			Statement:  "No relevant evidence was found in the record for this request",
			Category:   domain.CategoryUncertain,
			Confidence: domain.ConfidenceLow,
			Reason:     "The relevance selection returned no items",
		})
	}

	if rel.Intent == domain.IntentUnknown {
		out = append(out, domain.ConfidenceAnnotation{
			Statement:  "The intent of this request is ambiguous",
			Category:   domain.CategoryUncertain,
			Confidence: domain.ConfidenceLow,
			Reason:     "No intent bucket matched the request text",
		})
	}

	return out
}

// Overall folds a set of annotations into the single confidence level the
// preview and planning stages consume. Any UNCERTAIN finding forces Low.
func Overall(annotations []domain.ConfidenceAnnotation) domain.ConfidenceLevel {
	hasObserved := false
	for _, ann := range annotations {
		if ann.Category == domain.CategoryUncertain {
			return domain.ConfidenceLow
		}
		if ann.Category == domain.CategoryObserved {
			hasObserved = true
		}
	}
	if hasObserved {
		return domain.ConfidenceHigh
	}
	if len(annotations) > 0 {
		return domain.ConfidenceMedium
	}
	return domain.ConfidenceLow
}
