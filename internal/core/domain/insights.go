package domain

// ComparativeInsights diffs the current request against the patient's last
// encounter and surfaces repeated concerns and care gaps. All list fields are
// truncated in generation order, never resampled.
type ComparativeInsights struct {
	LastEncounter              *TimelineEvent `json:"last_encounter,omitempty"`
	TimeSinceLastEncounterDays int            `json:"time_since_last_encounter_days,omitempty"`
	DifferencesVsLastEncounter []string       `json:"differences_vs_last_encounter"`
	Trends                     []string       `json:"trends"`
	Gaps                       []string       `json:"gaps"`
	EvidenceAttribution        []string       `json:"evidence_attribution"`
}
