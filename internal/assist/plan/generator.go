// Package plan builds the "what would happen" artifact for a request. Every
// plan is blocked: BlockedBy always opens with the universal execution-
// disabled entry and accumulates confidence, intent, and readiness blockers
// on top of it.
package plan

import (
	"fmt"
	"time"

	"github.com/carelens/carelens/internal/core/domain"
)

const executionDisabledBlocker = "Execution is disabled in this environment; every plan is preview only."

var disclaimers = []string{
	"This is a preview only. No action has been taken.",
	"This assistant does not provide medical advice.",
}

// intentTemplate is the fixed per-intent plan content.
type intentTemplate struct {
	summary       string
	actions       []string
	confirmations []domain.RequiredConfirmation
	requiredData  []string
	blocker       string
	risks         []string
}

var templates = map[domain.IntentBucket]intentTemplate{
	domain.IntentScheduling: {
		summary: "Propose an appointment time and hold it pending patient confirmation.",
		actions: []string{
			"Identify a suitable appointment slot from the practice calendar",
			"Draft a proposed time for the patient to review",
			"Hold the slot until the patient responds",
		},
		confirmations: []domain.RequiredConfirmation{
			{Actor: domain.ActorPatient, ConfirmationType: domain.DecisionConfirm},
		},
		requiredData: []string{"Patient availability preferences", "Practice calendar access"},
		blocker:      "No scheduling integration is connected.",
		risks:        []string{"A proposed time may conflict with patient availability"},
	},
	domain.IntentClinicalDrafting: {
		summary: "Draft a clinical document for clinician review.",
		actions: []string{
			"Assemble relevant history into a draft document",
			"Mark the draft for clinician review",
		},
		confirmations: []domain.RequiredConfirmation{
			{Actor: domain.ActorClinician, ConfirmationType: domain.DecisionReview},
		},
		requiredData: []string{"Destination of the drafted document"},
		blocker:      "Clinician review would normally be required before any draft is used.",
		risks:        []string{"A draft may omit context only the clinician knows"},
	},
	domain.IntentRecordSummary: {
		summary: "Summarize the relevant portion of the patient record.",
		actions: []string{
			"Collect the timeline entries relevant to the request",
			"Render a plain-language summary of them",
		},
		requiredData: nil,
		blocker:      "Summaries are informational only.",
		risks:        []string{"A summary may compress clinically relevant nuance"},
	},
	domain.IntentBillingExplanation: {
		summary: "Explain the billing entries the request refers to.",
		actions: []string{
			"Locate the billing-related timeline entries",
			"Explain each charge in plain language",
		},
		requiredData: nil,
		blocker:      "Billing explanations are informational only.",
		risks:        []string{"Charge details may require confirmation with the billing office"},
	},
}

var defaultRequiredData = []string{"A clarified request from the user"}

const unknownBlocker = "The request could not be mapped to a supported action."

// Generate builds the execution-plan preview. The plan ID is derived from the
// intent and the reference instant so identical inputs yield identical plans.
func Generate(intent domain.IntentBucket, rel domain.RelevanceResult, readiness domain.ReadinessCategory, overall domain.ConfidenceLevel, now time.Time) domain.ExecutionPlanResult {
	tmpl, known := templates[intent]

	res := domain.ExecutionPlanResult{
		PlanID:       fmt.Sprintf("plan-%s-%s", intent, now.Format("20060102")),
		IntentBucket: intent,
		BlockedBy:    []string{executionDisabledBlocker},
		Evidence:     evidence(rel),
		Disclaimers:  append([]string(nil), disclaimers...),
	}

	if known {
		res.Summary = tmpl.summary
		res.ProposedActions = append([]string(nil), tmpl.actions...)
		res.RequiredHumanConfirmations = append([]domain.RequiredConfirmation(nil), tmpl.confirmations...)
		res.RequiredData = append([]string(nil), tmpl.requiredData...)
	} else {
		res.Summary = "No supported action could be derived from this request."
		res.ProposedActions = []string{}
		res.RequiredData = append([]string(nil), defaultRequiredData...)
	}

	if overall == domain.ConfidenceLow {
		res.BlockedBy = append(res.BlockedBy, "Confidence in the interpretation is low; clarification would normally come first.")
		if len(res.RequiredData) == 0 {
			res.RequiredData = append([]string(nil), defaultRequiredData...)
		}
	}

	if known {
		res.BlockedBy = append(res.BlockedBy, tmpl.blocker)
	} else {
		res.BlockedBy = append(res.BlockedBy, unknownBlocker)
	}

	if readiness == domain.ReadinessRequiresData {
		res.BlockedBy = append(res.BlockedBy, "Additional data would normally be required before this plan could proceed.")
		if len(res.RequiredData) == 0 {
			res.RequiredData = append([]string(nil), defaultRequiredData...)
		}
	}

	if res.ProposedActions == nil {
		res.ProposedActions = []string{}
	}
	if res.RequiredHumanConfirmations == nil {
		res.RequiredHumanConfirmations = []domain.RequiredConfirmation{}
	}
	if res.RequiredData == nil {
		res.RequiredData = []string{}
	}
	res.Risks = append([]string(nil), tmpl.risks...)
	if res.Risks == nil {
		res.Risks = []string{}
	}

	return res
}

// evidence lists the date:title pairs of the relevance selection.
func evidence(rel domain.RelevanceResult) []string {
	out := make([]string, 0, len(rel.SelectedItems))
	for _, item := range rel.SelectedItems {
		out = append(out, fmt.Sprintf("%s: %s", item.Event.Date.Format("2006-01-02"), item.Event.Title))
	}
	return out
}
