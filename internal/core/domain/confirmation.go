package domain

// RequiredActor identifies who would normally make the confirming decision.
type RequiredActor string

const (
	ActorPatient   RequiredActor = "PATIENT"
	ActorClinician RequiredActor = "CLINICIAN"
	ActorOperator  RequiredActor = "OPERATOR"
	ActorNone      RequiredActor = "NONE"
)

// DecisionType is the kind of decision the required actor would make.
type DecisionType string

const (
	DecisionConfirm       DecisionType = "CONFIRM"
	DecisionReview        DecisionType = "REVIEW"
	DecisionProvideData   DecisionType = "PROVIDE_DATA"
	DecisionNotApplicable DecisionType = "NOT_APPLICABLE"
)

// HumanConfirmationResult describes the human decision a request would
// normally require. PreviewOptions is empty exactly when DecisionType is
// DecisionNotApplicable.
type HumanConfirmationResult struct {
	RequiredActor  RequiredActor `json:"required_actor"`
	DecisionType   DecisionType  `json:"decision_type"`
	PreviewOptions []string      `json:"preview_options"`
	Explanation    string        `json:"explanation"`
	Rationale      string        `json:"rationale"`
}
