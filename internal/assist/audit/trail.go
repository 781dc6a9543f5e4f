// Package audit renders one reasoning pass as a deterministic, privacy-
// filtered event list. Payloads carry structural metadata only; raw clinical
// text never appears here.
package audit

import (
	"fmt"
	"time"

	"github.com/carelens/carelens/internal/core/domain"
)

// Policy-basis tags. Rule evaluation order below is normative: dedup keeps
// first-seen order, so reordering the rules changes the output.
const (
	basisNonExecution   = "Non-Execution Principle"
	basisPreviewFirst   = "Preview-Before-Action"
	basisConsent        = "Patient Consent Required"
	basisSessionScoped  = "Session-Scoped Data"
	basisDraftOnly      = "Draft-Only Output"
	basisClinicalReview = "Clinical Review Required"
	basisProposalOnly   = "Proposal-Only Scheduling"
	basisHumanInLoop    = "Human-in-the-Loop"
	basisBlocked        = "Execution Blocked"
)

// TrailInput bundles one reasoning pass's artifacts. Intent and relevance are
// always present; the rest are optional stages.
type TrailInput struct {
	MessageID    string
	ActorRole    string
	Intent       domain.IntentClassification
	Relevance    domain.RelevanceResult
	Synthesis    string
	Annotations  []domain.ConfidenceAnnotation
	Readiness    *domain.ActionReadinessResult
	Confirmation *domain.HumanConfirmationResult
	Plan         *domain.ExecutionPlanResult
	Now          time.Time
}

// BuildTrail emits one event per present artifact in fixed phase order. All
// events share a single captured timestamp and carry IDs of the form
// "{messageID}-{index}" with a strictly increasing index.
func BuildTrail(in TrailInput) []domain.PreviewAuditEvent {
	basis := policyBasis(in)
	index := 0

	emit := func(evType domain.AuditEventType, phase, summary string, payload domain.AuditPayload) domain.PreviewAuditEvent {
		ev := domain.PreviewAuditEvent{
			ID:             fmt.Sprintf("%s-%d", in.MessageID, index),
			TS:             in.Now,
			Actor:          in.ActorRole,
			Type:           evType,
			SliceOrPhase:   phase,
			PolicyBasis:    basis,
			Summary:        summary,
			PayloadPreview: payload,
		}
		index++
		return ev
	}

	events := []domain.PreviewAuditEvent{
		emit(domain.AuditIntentClassified, "intent",
			fmt.Sprintf("Classified request as %s with %s confidence", in.Intent.Intent, in.Intent.Confidence),
			domain.IntentPayload{
				Intent:       in.Intent.Intent,
				KeywordCount: len(in.Intent.MatchedKeywords),
				Confidence:   in.Intent.Confidence,
			}),
	}

	if len(in.Relevance.SelectedItems) > 0 {
		events = append(events, emit(domain.AuditEvidenceSelected, "evidence",
			fmt.Sprintf("Selected %d timeline entries as evidence", len(in.Relevance.SelectedItems)),
			evidencePayload(in.Relevance)))
	}

	if in.Synthesis != "" {
		events = append(events, emit(domain.AuditSynthesisGenerated, "synthesis",
			"Generated a synthesis of the selected evidence",
			domain.SynthesisPayload{Length: len(in.Synthesis)}))
	}

	if len(in.Annotations) > 0 {
		events = append(events, emit(domain.AuditConfidenceAnnotated, "confidence",
			fmt.Sprintf("Attached %d confidence annotations", len(in.Annotations)),
			confidencePayload(in.Annotations)))
	}

	if in.Readiness != nil {
		events = append(events, emit(domain.AuditReadinessEvaluated, "readiness",
			fmt.Sprintf("Evaluated action readiness as %s", in.Readiness.Category),
			domain.ReadinessPayload{Category: in.Readiness.Category}))
	}

	if in.Plan != nil {
		events = append(events, emit(domain.AuditExecutionPlanPreviewed, "plan",
			"Previewed the execution plan; nothing was executed",
			domain.PlanPayload{
				PlanID:       in.Plan.PlanID,
				ActionCount:  len(in.Plan.ProposedActions),
				BlockerCount: len(in.Plan.BlockedBy),
			}))
	}

	return events
}

// CreateConfirmationEvent builds a confirmation-lifecycle event with the same
// ID scheme but an externally supplied index. Callers keep one running
// counter across both builders so IDs never collide.
func CreateConfirmationEvent(messageID string, index int, evType domain.AuditEventType, actorRole string, intent domain.IntentBucket, now time.Time) domain.PreviewAuditEvent {
	return domain.PreviewAuditEvent{
		ID:           fmt.Sprintf("%s-%d", messageID, index),
		TS:           now,
		Actor:        actorRole,
		Type:         evType,
		SliceOrPhase: "confirmation",
		PolicyBasis:  dedup([]string{basisNonExecution, basisPreviewFirst, basisHumanInLoop, basisBlocked}),
		Summary:      fmt.Sprintf("Confirmation lifecycle: %s", evType),
		PayloadPreview: domain.ConfirmationPayload{
			ActorRole: actorRole,
			Intent:    intent,
		},
	}
}

// policyBasis assembles the governance tags for this pass. Rule order is
// normative.
func policyBasis(in TrailInput) []string {
	tags := []string{basisNonExecution, basisPreviewFirst}

	if in.ActorRole == "patient" {
		tags = append(tags, basisConsent, basisSessionScoped)
	}
	switch in.Intent.Intent {
	case domain.IntentClinicalDrafting:
		tags = append(tags, basisDraftOnly, basisClinicalReview, basisBlocked)
	case domain.IntentScheduling:
		tags = append(tags, basisProposalOnly, basisHumanInLoop)
	}

	nonInformational := in.Readiness != nil && in.Readiness.Category != domain.ReadinessInformationalOnly
	actorRequired := in.Confirmation != nil && in.Confirmation.RequiredActor != domain.ActorNone
	if nonInformational || actorRequired {
		tags = append(tags, basisBlocked)
	}

	return dedup(tags)
}

func dedup(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func evidencePayload(rel domain.RelevanceResult) domain.EvidencePayload {
	p := domain.EvidencePayload{SelectedCount: len(rel.SelectedItems)}
	for _, item := range rel.SelectedItems {
		p.Dates = append(p.Dates, item.Event.Date.Format("2006-01-02"))
	}
	if len(rel.SelectedItems) > 0 {
		p.TopScore = rel.SelectedItems[0].Score
	}
	return p
}

func confidencePayload(annotations []domain.ConfidenceAnnotation) domain.ConfidencePayload {
	var p domain.ConfidencePayload
	for _, ann := range annotations {
		p.Categories = append(p.Categories, ann.Category)
		p.Levels = append(p.Levels, ann.Confidence)
	}
	return p
}
