// Package confirmation maps readiness onto the human decision that would
// normally be required, with fixed option lists per intent and strictly
// conditional language throughout.
package confirmation

import (
	"fmt"

	"github.com/carelens/carelens/internal/core/domain"
)

type actorDecision struct {
	actor    domain.RequiredActor
	decision domain.DecisionType
}

// readinessTable is the fixed readiness-category lookup.
var readinessTable = map[domain.ReadinessCategory]actorDecision{
	domain.ReadinessRequiresPatient:   {domain.ActorPatient, domain.DecisionConfirm},
	domain.ReadinessRequiresClinician: {domain.ActorClinician, domain.DecisionReview},
	domain.ReadinessRequiresData:      {domain.ActorOperator, domain.DecisionProvideData},
	domain.ReadinessInformationalOnly: {domain.ActorNone, domain.DecisionNotApplicable},
	domain.ReadinessNotActionable:     {domain.ActorNone, domain.DecisionNotApplicable},
}

// intentOptions are the fixed preview option lists per intent. A
// NOT_APPLICABLE decision yields no options regardless of intent.
var intentOptions = map[domain.IntentBucket][]string{
	domain.IntentScheduling:         {"Accept proposed time", "Request alternative", "Decline"},
	domain.IntentClinicalDrafting:   {"Approve draft", "Edit draft", "Reject draft"},
	domain.IntentRecordSummary:      {"Acknowledge summary"},
	domain.IntentBillingExplanation: {"Acknowledge explanation"},
}

var intentLabels = map[domain.IntentBucket]string{
	domain.IntentScheduling:         "a scheduling proposal",
	domain.IntentClinicalDrafting:   "a drafted clinical document",
	domain.IntentRecordSummary:      "a record summary",
	domain.IntentBillingExplanation: "a billing explanation",
	domain.IntentUnknown:            "this request",
}

const lowConfidenceAddendum = " Confidence in this interpretation is low, so additional clarification would usually be requested first."

// Evaluate looks up the required actor and decision type for a readiness
// category and renders actor- and intent-specific conditional text. The
// output always passes the language-safety validator.
func Evaluate(intent domain.IntentBucket, readiness domain.ReadinessCategory, overall domain.ConfidenceLevel) domain.HumanConfirmationResult {
	ad, ok := readinessTable[readiness]
	if !ok {
		ad = actorDecision{domain.ActorNone, domain.DecisionNotApplicable}
	}

	res := domain.HumanConfirmationResult{
		RequiredActor: ad.actor,
		DecisionType:  ad.decision,
	}

	if ad.decision != domain.DecisionNotApplicable {
		res.PreviewOptions = append([]string(nil), intentOptions[intent]...)
	}
	if res.PreviewOptions == nil {
		res.PreviewOptions = []string{}
	}

	res.Explanation = explanation(ad, intent)
	res.Rationale = rationale(ad, intent)
	if overall == domain.ConfidenceLow && ad.actor != domain.ActorNone {
		res.Rationale += lowConfidenceAddendum
	}
	return res
}

func explanation(ad actorDecision, intent domain.IntentBucket) string {
	label := intentLabels[intent]
	switch ad.actor {
	case domain.ActorPatient:
		return fmt.Sprintf("A patient would normally confirm %s before anything happened.", label)
	case domain.ActorClinician:
		return fmt.Sprintf("A clinician would normally review %s before any use.", label)
	case domain.ActorOperator:
		return fmt.Sprintf("An operator would normally provide the missing data before %s could proceed.", label)
	default:
		return fmt.Sprintf("This would not normally require a confirming decision: %s is preview only.", label)
	}
}

func rationale(ad actorDecision, intent domain.IntentBucket) string {
	label := intentLabels[intent]
	switch ad.actor {
	case domain.ActorPatient:
		return fmt.Sprintf("Scheduling decisions rest with the patient; %s would typically stay a proposal until confirmed by them. No action has been taken.", label)
	case domain.ActorClinician:
		return fmt.Sprintf("Clinical content requires professional judgment; %s would typically stay a draft until a clinician reviewed it. No action has been taken.", label)
	case domain.ActorOperator:
		return fmt.Sprintf("The record lacks data this request depends on; %s would usually wait for an operator to supply it. No action has been taken.", label)
	default:
		return fmt.Sprintf("Reading and explaining the record would not normally require confirmation; %s is preview only.", label)
	}
}
