package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AuditEventType identifies which pipeline phase an audit event records.
type AuditEventType string

const (
	AuditIntentClassified       AuditEventType = "INTENT_CLASSIFIED"
	AuditEvidenceSelected       AuditEventType = "EVIDENCE_SELECTED"
	AuditSynthesisGenerated     AuditEventType = "SYNTHESIS_GENERATED"
	AuditConfidenceAnnotated    AuditEventType = "CONFIDENCE_ANNOTATED"
	AuditReadinessEvaluated     AuditEventType = "READINESS_EVALUATED"
	AuditExecutionPlanPreviewed AuditEventType = "EXECUTION_PLAN_PREVIEWED"

	AuditConfirmationOpened       AuditEventType = "CONFIRMATION_OPENED"
	AuditConfirmationAcknowledged AuditEventType = "CONFIRMATION_ACKNOWLEDGED"
	AuditConfirmationDenied       AuditEventType = "CONFIRMATION_DENIED"
)

// AuditPayload is the closed set of structural payload shapes an audit event
// may carry. Payloads hold counts, dates, scores, and IDs only; raw clinical
// free text (titles, summaries) must never appear in them.
type AuditPayload interface {
	auditPayload()
}

// IntentPayload summarizes the classifier output.
type IntentPayload struct {
	Intent       IntentBucket     `json:"intent"`
	KeywordCount int              `json:"keyword_count"`
	Confidence   IntentConfidence `json:"confidence"`
}

// EvidencePayload summarizes the relevance selection.
type EvidencePayload struct {
	SelectedCount int      `json:"selected_count"`
	Dates         []string `json:"dates"`
	TopScore      int      `json:"top_score"`
}

// SynthesisPayload summarizes a generated synthesis without quoting it.
type SynthesisPayload struct {
	Length int `json:"length"`
}

// ConfidencePayload summarizes the emitted annotations.
type ConfidencePayload struct {
	Categories []EpistemicCategory `json:"categories"`
	Levels     []ConfidenceLevel   `json:"levels"`
}

// ReadinessPayload records the readiness decision.
type ReadinessPayload struct {
	Category ReadinessCategory `json:"category"`
}

// PlanPayload summarizes the execution-plan preview.
type PlanPayload struct {
	PlanID       string `json:"plan_id"`
	ActionCount  int    `json:"action_count"`
	BlockerCount int    `json:"blocker_count"`
}

// ConfirmationPayload records a confirmation-lifecycle event.
type ConfirmationPayload struct {
	ActorRole string       `json:"actor_role"`
	Intent    IntentBucket `json:"intent"`
}

func (IntentPayload) auditPayload()       {}
func (EvidencePayload) auditPayload()     {}
func (SynthesisPayload) auditPayload()    {}
func (ConfidencePayload) auditPayload()   {}
func (ReadinessPayload) auditPayload()    {}
func (PlanPayload) auditPayload()         {}
func (ConfirmationPayload) auditPayload() {}

// PreviewAuditEvent is one entry in the deterministic, privacy-filtered log
// of a reasoning pass. IDs follow the "{messageID}-{index}" scheme with a
// strictly increasing index.
type PreviewAuditEvent struct {
	ID             string         `json:"id"`
	TS             time.Time      `json:"ts"`
	Actor          string         `json:"actor"`
	Type           AuditEventType `json:"type"`
	SliceOrPhase   string         `json:"slice_or_phase"`
	PolicyBasis    []string       `json:"policy_basis"`
	Summary        string         `json:"summary"`
	PayloadPreview AuditPayload   `json:"payload_preview"`
}

// UnmarshalJSON decodes the payload into the variant the event type implies,
// keeping the payload set closed on the wire as well as in memory.
func (e *PreviewAuditEvent) UnmarshalJSON(data []byte) error {
	type alias PreviewAuditEvent
	raw := struct {
		*alias
		PayloadPreview json.RawMessage `json:"payload_preview"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.PayloadPreview) == 0 || string(raw.PayloadPreview) == "null" {
		e.PayloadPreview = nil
		return nil
	}

	var payload AuditPayload
	switch e.Type {
	case AuditIntentClassified:
		payload = &IntentPayload{}
	case AuditEvidenceSelected:
		payload = &EvidencePayload{}
	case AuditSynthesisGenerated:
		payload = &SynthesisPayload{}
	case AuditConfidenceAnnotated:
		payload = &ConfidencePayload{}
	case AuditReadinessEvaluated:
		payload = &ReadinessPayload{}
	case AuditExecutionPlanPreviewed:
		payload = &PlanPayload{}
	case AuditConfirmationOpened, AuditConfirmationAcknowledged, AuditConfirmationDenied:
		payload = &ConfirmationPayload{}
	default:
		return fmt.Errorf("unknown audit event type %q", e.Type)
	}

	if err := json.Unmarshal(raw.PayloadPreview, payload); err != nil {
		return err
	}
	e.PayloadPreview = payload
	return nil
}
