package domain

// RequiredConfirmation pairs an actor with the type of confirmation an
// execution plan would normally need from them.
type RequiredConfirmation struct {
	Actor            RequiredActor `json:"actor"`
	ConfirmationType DecisionType  `json:"confirmation_type"`
}

// ExecutionPlanResult is the "what would happen" artifact. It describes the
// steps a request would normally trigger while guaranteeing, through a
// never-empty BlockedBy list, that none of them run here.
type ExecutionPlanResult struct {
	PlanID                     string                 `json:"plan_id"`
	IntentBucket               IntentBucket           `json:"intent_bucket"`
	Summary                    string                 `json:"summary"`
	ProposedActions            []string               `json:"proposed_actions"`
	RequiredHumanConfirmations []RequiredConfirmation `json:"required_human_confirmations"`
	RequiredData               []string               `json:"required_data"`
	BlockedBy                  []string               `json:"blocked_by"`
	Evidence                   []string               `json:"evidence"`
	Risks                      []string               `json:"risks"`
	Disclaimers                []string               `json:"disclaimers"`
}
