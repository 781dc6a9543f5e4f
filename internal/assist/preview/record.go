// Package preview owns the ephemeral confirmation record and its
// two-transition lifecycle. Records are replaced wholesale on transition,
// never mutated, and they never touch durable storage.
package preview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carelens/carelens/internal/core/domain"
)

// ErrInvalidTransition signals a rejected state transition. The input record
// is left untouched; callers branch on this without unwinding.
var ErrInvalidTransition = errors.New("preview: invalid state transition")

// DefaultSessionRole is used when the caller supplies none.
const DefaultSessionRole = "patient-session"

// CreateInput bundles the artifacts a preview record is derived from.
type CreateInput struct {
	Confirmation domain.HumanConfirmationResult
	Plan         *domain.ExecutionPlanResult
	SessionRole  string
	Now          time.Time
}

// CreateRecord builds the initial PROPOSAL_CREATED record. The intent summary
// comes from the execution plan when present; the would-normally-happen lines
// restate the plan's proposed actions in conditional language.
func CreateRecord(in CreateInput) domain.PreviewConfirmationRecord {
	sessionRole := in.SessionRole
	if sessionRole == "" {
		sessionRole = DefaultSessionRole
	}

	return domain.PreviewConfirmationRecord{
		PreviewID:             previewID(in.Confirmation.RequiredActor, in.Now),
		State:                 domain.StateProposalCreated,
		Actor:                 in.Confirmation.RequiredActor,
		IntentSummary:         intentSummary(in.Plan),
		WouldNormallyHappen:   wouldNormallyHappen(in.Plan),
		ConfirmationRationale: rationale(in.Confirmation),
		Timestamp:             in.Now,
		SessionRole:           sessionRole,
	}
}

// Transition returns a new record in the target state with a refreshed
// timestamp, or ErrInvalidTransition. The only valid transitions are
// PROPOSAL_CREATED to either terminal state.
func Transition(rec domain.PreviewConfirmationRecord, target domain.PreviewState, now time.Time) (domain.PreviewConfirmationRecord, error) {
	if rec.State != domain.StateProposalCreated {
		return domain.PreviewConfirmationRecord{}, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, rec.State)
	}
	if target != domain.StatePreviewAcknowledged && target != domain.StatePreviewDenied {
		return domain.PreviewConfirmationRecord{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.State, target)
	}

	next := rec
	next.State = target
	next.Timestamp = now
	return next, nil
}

func previewID(actor domain.RequiredActor, now time.Time) string {
	return fmt.Sprintf("preview-%s-%s", strings.ToLower(string(actor)), now.Format("20060102150405"))
}

func intentSummary(plan *domain.ExecutionPlanResult) string {
	if plan != nil && plan.Summary != "" {
		return plan.Summary
	}
	return "A preview of what this request would normally involve."
}

func wouldNormallyHappen(plan *domain.ExecutionPlanResult) []string {
	if plan == nil || len(plan.ProposedActions) == 0 {
		return []string{"Nothing would happen: this request carries no executable steps."}
	}
	out := make([]string, 0, len(plan.ProposedActions))
	for _, action := range plan.ProposedActions {
		out = append(out, fmt.Sprintf("This would normally %s.", lowerFirst(action)))
	}
	return out
}

func rationale(conf domain.HumanConfirmationResult) string {
	if conf.RequiredActor == domain.ActorNone {
		return "No confirming decision would normally be needed; no action has been taken."
	}
	if conf.Rationale != "" {
		return conf.Rationale
	}
	return fmt.Sprintf("A %s would normally decide whether this proceeds. No action has been taken.",
		strings.ToLower(string(conf.RequiredActor)))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
