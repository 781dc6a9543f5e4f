package domain

// ScoreBreakdown explains how a timeline event earned its relevance score.
type ScoreBreakdown struct {
	TypeMatch    int `json:"type_match"`
	KeywordMatch int `json:"keyword_match"`
	RecencyBonus int `json:"recency_bonus"`
}

// ScoredTimelineItem is a timeline event extended with its relevance score.
// Instances are created fresh per selection call and never persisted.
type ScoredTimelineItem struct {
	Event     TimelineEvent  `json:"event"`
	Score     int            `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// RelevanceResult is the evidence-selection output for one message. At most
// three items are selected and every selected item has a positive score.
type RelevanceResult struct {
	Intent              IntentBucket         `json:"intent"`
	SelectedItems       []ScoredTimelineItem `json:"selected_items"`
	Explanation         []string             `json:"explanation"`
	HasEvidence         bool                 `json:"has_evidence"`
	EvidenceAttribution []string             `json:"evidence_attribution"`
}
