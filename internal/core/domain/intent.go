package domain

// IntentBucket is the closed category of a user request's purpose.
type IntentBucket string

const (
	// IntentUnknown is the zero variant: no bucket matched.
	IntentUnknown            IntentBucket = "unknown"
	IntentScheduling         IntentBucket = "scheduling"
	IntentClinicalDrafting   IntentBucket = "clinical_drafting"
	IntentRecordSummary      IntentBucket = "record_summary"
	IntentBillingExplanation IntentBucket = "billing_explanation"
)

// IntentConfidence is the two-tier classifier confidence.
type IntentConfidence string

const (
	IntentConfidenceHigh IntentConfidence = "high"
	IntentConfidenceLow  IntentConfidence = "low"
)

// IntentClassification is the classifier output. MatchedKeywords preserves
// the order of the winning bucket's rule table, not the order of appearance
// in the message.
type IntentClassification struct {
	Intent          IntentBucket     `json:"intent"`
	MatchedKeywords []string         `json:"matched_keywords"`
	Confidence      IntentConfidence `json:"confidence"`
}
