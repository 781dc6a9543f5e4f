// Package engine orchestrates one reasoning pass: the full classification,
// evidence, temporal, confidence, readiness, confirmation, plan, preview, and
// audit chain for a single message. A pass is synchronous, side-effect-free,
// and reads only immutable inputs, so concurrent passes need no locking.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carelens/carelens/internal/assist/audit"
	"github.com/carelens/carelens/internal/assist/confidence"
	"github.com/carelens/carelens/internal/assist/confirmation"
	"github.com/carelens/carelens/internal/assist/intent"
	"github.com/carelens/carelens/internal/assist/plan"
	"github.com/carelens/carelens/internal/assist/preview"
	"github.com/carelens/carelens/internal/assist/readiness"
	"github.com/carelens/carelens/internal/assist/relevance"
	"github.com/carelens/carelens/internal/assist/safety"
	"github.com/carelens/carelens/internal/assist/temporal"
	"github.com/carelens/carelens/internal/core/domain"
)

const tracerName = "carelens/assist"

// PassInput is one reasoning-pass request.
type PassInput struct {
	MessageID   string
	Message     string
	SessionRole string
	ActorRole   string
	Timeline    domain.Timeline
	Patient     domain.PatientContext
	Now         time.Time
}

// PassResult bundles every artifact one pass produced.
type PassResult struct {
	Intent        domain.IntentClassification      `json:"intent"`
	Relevance     domain.RelevanceResult           `json:"relevance"`
	Insights      domain.ComparativeInsights       `json:"insights"`
	Annotations   []domain.ConfidenceAnnotation    `json:"annotations"`
	Overall       domain.ConfidenceLevel           `json:"overall_confidence"`
	Readiness     domain.ActionReadinessResult     `json:"readiness"`
	Confirmation  domain.HumanConfirmationResult   `json:"confirmation"`
	Plan          domain.ExecutionPlanResult       `json:"plan"`
	Synthesis     string                           `json:"synthesis"`
	PreviewRecord domain.PreviewConfirmationRecord `json:"preview_record"`
	AuditTrail    []domain.PreviewAuditEvent       `json:"audit_trail"`
}

// Engine runs reasoning passes. It holds only a logger and the injected
// reference instant, never any per-pass state.
type Engine struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates an Engine. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Run executes the full chain for one message. The context is used only for
// tracing; no stage blocks or performs I/O.
func (e *Engine) Run(ctx context.Context, in PassInput) PassResult {
	var res PassResult

	e.stage(ctx, "intent", func(context.Context) {
		res.Intent = intent.Classify(in.Message)
	})
	e.logger.Debug("intent classified",
		slog.String("message_id", in.MessageID),
		slog.String("intent", string(res.Intent.Intent)),
		slog.String("confidence", string(res.Intent.Confidence)),
	)

	e.stage(ctx, "relevance", func(context.Context) {
		res.Relevance = relevance.Select(in.Message, res.Intent, in.Timeline)
	})

	e.stage(ctx, "temporal", func(context.Context) {
		res.Insights = temporal.BuildInsights(temporal.Input{
			Intent:        res.Intent.Intent,
			Message:       in.Message,
			RelevantItems: res.Relevance.SelectedItems,
			Timeline:      in.Timeline,
			Now:           in.Now,
		})
	})

	e.stage(ctx, "confidence", func(context.Context) {
		res.Annotations = confidence.Annotate(res.Relevance, res.Insights)
		res.Overall = confidence.Overall(res.Annotations)
	})

	e.stage(ctx, "readiness", func(context.Context) {
		res.Readiness = readiness.Evaluate(res.Intent.Intent, res.Relevance, res.Annotations)
	})

	// Confirmation and plan both consume readiness + intent.
	e.stage(ctx, "confirmation", func(context.Context) {
		res.Confirmation = confirmation.Evaluate(res.Intent.Intent, res.Readiness.Category, res.Overall)
	})
	e.stage(ctx, "plan", func(context.Context) {
		res.Plan = plan.Generate(res.Intent.Intent, res.Relevance, res.Readiness.Category, res.Overall, in.Now)
	})

	e.stage(ctx, "synthesis", func(context.Context) {
		res.Synthesis = synthesize(res.Relevance, res.Insights)
	})

	e.stage(ctx, "preview", func(context.Context) {
		res.PreviewRecord = preview.CreateRecord(preview.CreateInput{
			Confirmation: res.Confirmation,
			Plan:         &res.Plan,
			SessionRole:  in.SessionRole,
			Now:          in.Now,
		})
	})

	e.stage(ctx, "audit", func(context.Context) {
		res.AuditTrail = audit.BuildTrail(audit.TrailInput{
			MessageID:    in.MessageID,
			ActorRole:    in.ActorRole,
			Intent:       res.Intent,
			Relevance:    res.Relevance,
			Synthesis:    res.Synthesis,
			Annotations:  res.Annotations,
			Readiness:    &res.Readiness,
			Confirmation: &res.Confirmation,
			Plan:         &res.Plan,
			Now:          in.Now,
		})
	})

	// Post-condition: everything user-facing stays in conditional language.
	for _, text := range generatedText(res) {
		if check := safety.ValidateLanguageSafety(text); !check.IsValid {
			e.logger.Error("language safety violation in generated text",
				slog.String("message_id", in.MessageID),
				slog.String("text", text),
				slog.String("errors", strings.Join(check.Errors, "; ")),
			)
		}
	}

	e.logger.Info("reasoning pass complete",
		slog.String("message_id", in.MessageID),
		slog.String("intent", string(res.Intent.Intent)),
		slog.String("readiness", string(res.Readiness.Category)),
		slog.Int("audit_events", len(res.AuditTrail)),
	)

	return res
}

func (e *Engine) stage(ctx context.Context, name string, fn func(context.Context)) {
	ctx, span := e.tracer.Start(ctx, "assist."+name,
		trace.WithAttributes(attribute.String("assist.stage", name)))
	defer span.End()
	fn(ctx)
}

// synthesize composes the optional synthesis paragraph from the relevance
// explanation and comparative insights, in strictly conditional language.
func synthesize(rel domain.RelevanceResult, insights domain.ComparativeInsights) string {
	if !rel.HasEvidence {
		return "No relevant evidence was found for this request, so only a clarifying question would normally follow. No action has been taken."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on %d record entries, this request would normally be handled as %s.",
		len(rel.SelectedItems), rel.Intent)
	if insights.LastEncounter != nil {
		fmt.Fprintf(&b, " The last encounter was %d days ago.", insights.TimeSinceLastEncounterDays)
	}
	if len(insights.Gaps) > 0 {
		fmt.Fprintf(&b, " One caveat applies: %s.", strings.TrimSuffix(insights.Gaps[0], "."))
	}
	b.WriteString(" No action has been taken.")
	return b.String()
}

// generatedText collects every free-text string the pass produced for the
// safety post-condition.
func generatedText(res PassResult) []string {
	out := []string{
		res.Readiness.Explanation,
		res.Confirmation.Explanation,
		res.Confirmation.Rationale,
		res.Synthesis,
		res.PreviewRecord.ConfirmationRationale,
	}
	out = append(out, res.PreviewRecord.WouldNormallyHappen...)
	out = append(out, res.Plan.BlockedBy...)
	out = append(out, res.Plan.Disclaimers...)
	return out
}
