// Package assist is the public API of the reasoning core. It re-exports the
// stage operations so callers can drive individual stages or run a whole
// reasoning pass without importing internal packages.
package assist

import (
	"time"

	"github.com/carelens/carelens/internal/assist/audit"
	"github.com/carelens/carelens/internal/assist/confidence"
	"github.com/carelens/carelens/internal/assist/confirmation"
	"github.com/carelens/carelens/internal/assist/engine"
	"github.com/carelens/carelens/internal/assist/intent"
	"github.com/carelens/carelens/internal/assist/plan"
	"github.com/carelens/carelens/internal/assist/preview"
	"github.com/carelens/carelens/internal/assist/readiness"
	"github.com/carelens/carelens/internal/assist/relevance"
	"github.com/carelens/carelens/internal/assist/safety"
	"github.com/carelens/carelens/internal/assist/temporal"
	"github.com/carelens/carelens/internal/core/domain"
)

// Re-exported domain types for callers of the public surface.
type (
	Timeline                  = domain.Timeline
	TimelineEvent             = domain.TimelineEvent
	PatientContext            = domain.PatientContext
	IntentClassification      = domain.IntentClassification
	RelevanceResult           = domain.RelevanceResult
	ComparativeInsights       = domain.ComparativeInsights
	ConfidenceAnnotation      = domain.ConfidenceAnnotation
	ActionReadinessResult     = domain.ActionReadinessResult
	HumanConfirmationResult   = domain.HumanConfirmationResult
	ExecutionPlanResult       = domain.ExecutionPlanResult
	PreviewConfirmationRecord = domain.PreviewConfirmationRecord
	PreviewAuditEvent         = domain.PreviewAuditEvent
	SafetyResult              = safety.SafetyResult

	// Engine is the reasoning-pass orchestrator.
	Engine = engine.Engine
	// PassInput and PassResult frame one full reasoning pass.
	PassInput  = engine.PassInput
	PassResult = engine.PassResult
)

// ErrInvalidTransition signals a rejected preview state transition.
var ErrInvalidTransition = preview.ErrInvalidTransition

// NewEngine creates a reasoning-pass engine.
var NewEngine = engine.New

// ClassifyIntent buckets a free-text message.
func ClassifyIntent(message string) IntentClassification {
	return intent.Classify(message)
}

// SelectRelevantItems scores and ranks timeline events against a message.
func SelectRelevantItems(message string, timeline Timeline) RelevanceResult {
	return relevance.Select(message, intent.Classify(message), timeline)
}

// BuildComparativeInsights diffs the request against the encounter history.
func BuildComparativeInsights(in temporal.Input) ComparativeInsights {
	return temporal.BuildInsights(in)
}

// BuildConfidenceAnnotations classifies findings into epistemic categories.
func BuildConfidenceAnnotations(rel RelevanceResult, insights ComparativeInsights) []ConfidenceAnnotation {
	return confidence.Annotate(rel, insights)
}

// EvaluateActionReadiness maps intent, evidence, and uncertainty onto the
// action-readiness category.
func EvaluateActionReadiness(bucket domain.IntentBucket, rel RelevanceResult, annotations []ConfidenceAnnotation) ActionReadinessResult {
	return readiness.Evaluate(bucket, rel, annotations)
}

// EvaluateHumanConfirmation maps readiness onto the required human decision.
func EvaluateHumanConfirmation(bucket domain.IntentBucket, category domain.ReadinessCategory, overall domain.ConfidenceLevel) HumanConfirmationResult {
	return confirmation.Evaluate(bucket, category, overall)
}

// GenerateExecutionPlan builds the blocked "what would happen" artifact.
func GenerateExecutionPlan(bucket domain.IntentBucket, rel RelevanceResult, category domain.ReadinessCategory, overall domain.ConfidenceLevel, now time.Time) ExecutionPlanResult {
	return plan.Generate(bucket, rel, category, overall, now)
}

// CreatePreviewConfirmationRecord builds the initial ephemeral preview record.
func CreatePreviewConfirmationRecord(in preview.CreateInput) PreviewConfirmationRecord {
	return preview.CreateRecord(in)
}

// TransitionPreviewState moves a preview record to a terminal state, or
// returns ErrInvalidTransition leaving the input untouched.
func TransitionPreviewState(rec PreviewConfirmationRecord, target domain.PreviewState, now time.Time) (PreviewConfirmationRecord, error) {
	return preview.Transition(rec, target, now)
}

// ValidateLanguageSafety checks generated text for unsafe absolute claims.
func ValidateLanguageSafety(text string) SafetyResult {
	return safety.ValidateLanguageSafety(text)
}

// BuildPreviewAuditTrail renders one reasoning pass as an ordered event list.
func BuildPreviewAuditTrail(in audit.TrailInput) []PreviewAuditEvent {
	return audit.BuildTrail(in)
}

// CreateHumanConfirmationAuditEvent builds a confirmation-lifecycle audit
// event with a caller-supplied index.
func CreateHumanConfirmationAuditEvent(messageID string, index int, evType domain.AuditEventType, actorRole string, bucket domain.IntentBucket, now time.Time) PreviewAuditEvent {
	return audit.CreateConfirmationEvent(messageID, index, evType, actorRole, bucket, now)
}
