package domain

import "time"

// PreviewState is the lifecycle stage of an ephemeral confirmation proposal.
type PreviewState string

const (
	// StateProposalCreated is the initial state of every preview record.
	StateProposalCreated PreviewState = "PROPOSAL_CREATED"
	// StatePreviewAcknowledged is terminal: the actor reviewed the preview.
	StatePreviewAcknowledged PreviewState = "PREVIEW_ACKNOWLEDGED"
	// StatePreviewDenied is terminal: the actor declined the preview.
	StatePreviewDenied PreviewState = "PREVIEW_DENIED"
)

// PreviewConfirmationRecord is the only mutable-looking object in the core,
// and even it is replaced wholesale on each state transition rather than
// mutated in place. It is session-scoped and never persisted.
type PreviewConfirmationRecord struct {
	PreviewID             string        `json:"preview_id"`
	State                 PreviewState  `json:"state"`
	Actor                 RequiredActor `json:"actor"`
	IntentSummary         string        `json:"intent_summary"`
	WouldNormallyHappen   []string      `json:"would_normally_happen"`
	ConfirmationRationale string        `json:"confirmation_rationale"`
	Timestamp             time.Time     `json:"timestamp"`
	SessionRole           string        `json:"session_role"`
}
