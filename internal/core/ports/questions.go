package ports

import "context"

// QuestionCategory is the fixed routing bucket for the simpler question
// feature that shares vocabulary with the assistant but has no governance,
// confidence, or audit layer.
type QuestionCategory string

const (
	QuestionVisits      QuestionCategory = "visits"
	QuestionMedications QuestionCategory = "medications"
	QuestionBilling     QuestionCategory = "billing"
	QuestionGeneral     QuestionCategory = "general"
)

// QuestionAnswer is a templated answer with the evidence it was read from.
type QuestionAnswer struct {
	Category QuestionCategory `json:"category"`
	Answer   string           `json:"answer"`
	Sources  []string         `json:"sources"`
}

// QuestionRouter routes a free-text question to a fixed category and builds
// a templated answer from timeline evidence. The reasoning core does not
// implement this; it is an external collaborator.
type QuestionRouter interface {
	Route(ctx context.Context, patientID, question string) (QuestionAnswer, error)
}
