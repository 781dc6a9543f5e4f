package domain

// EpistemicCategory classifies the evidential basis of a statement.
type EpistemicCategory string

const (
	// CategoryObserved statements quote evidence directly from the record.
	CategoryObserved EpistemicCategory = "OBSERVED"
	// CategoryPattern statements describe a repetition across the timeline.
	CategoryPattern EpistemicCategory = "PATTERN"
	// CategoryComparative statements contrast this request with a prior encounter.
	CategoryComparative EpistemicCategory = "COMPARATIVE"
	// CategoryUncertain statements flag missing or ambiguous evidence.
	CategoryUncertain EpistemicCategory = "UNCERTAIN"
)

// ConfidenceLevel is the three-tier confidence attached to a claim.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ConfidenceAnnotation tags one generated statement with its epistemic
// category and confidence. A reasoning pass produces at most five: one per
// category, except UNCERTAIN which may appear twice (missing evidence, and
// separately an ambiguous intent).
type ConfidenceAnnotation struct {
	Statement  string            `json:"statement"`
	Category   EpistemicCategory `json:"category"`
	Confidence ConfidenceLevel   `json:"confidence"`
	Reason     string            `json:"reason"`
}
