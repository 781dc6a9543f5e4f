package domain

// ReadinessCategory is the kind of human or system action a request would
// normally require before anything could proceed.
type ReadinessCategory string

const (
	ReadinessNotActionable     ReadinessCategory = "NOT_ACTIONABLE_IN_SYSTEM"
	ReadinessRequiresData      ReadinessCategory = "REQUIRES_ADDITIONAL_DATA"
	ReadinessRequiresPatient   ReadinessCategory = "REQUIRES_PATIENT_CONFIRMATION"
	ReadinessRequiresClinician ReadinessCategory = "REQUIRES_CLINICIAN_REVIEW"
	ReadinessInformationalOnly ReadinessCategory = "INFORMATIONAL_ONLY"
)

// ActionReadinessResult carries the readiness category and a human-readable
// explanation. Every explanation ends with an explicit "No action has been
// taken" assertion; this is a content contract, not style.
type ActionReadinessResult struct {
	Category    ReadinessCategory `json:"category"`
	Explanation string            `json:"explanation"`
}
