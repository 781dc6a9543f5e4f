// Package questions implements the lightweight question feature: free-text
// questions routed to a fixed category and answered from timeline evidence
// with templated text. Unlike the assist chain it carries no governance,
// confidence, or audit layer; answers are read-only restatements of the
// record.
package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/carelens/carelens/internal/core/domain"
	"github.com/carelens/carelens/internal/core/ports"
)

// Router answers questions from a data source. It implements
// ports.QuestionRouter.
type Router struct {
	source ports.DataSource
}

var _ ports.QuestionRouter = (*Router)(nil)

func New(source ports.DataSource) *Router {
	return &Router{source: source}
}

var categoryTerms = []struct {
	category ports.QuestionCategory
	terms    []string
}{
	{ports.QuestionVisits, []string{"visit", "appointment", "seen", "encounter", "last time"}},
	{ports.QuestionMedications, []string{"medication", "medicine", "prescription", "taking", "dose"}},
	{ports.QuestionBilling, []string{"bill", "billing", "charge", "cost", "insurance", "copay"}},
}

// Route categorizes the question by keyword and builds a templated answer
// from the patient's record. Questions matching no category fall through to
// general with a pointer at the most recent entry.
func (r *Router) Route(ctx context.Context, patientID, question string) (ports.QuestionAnswer, error) {
	timeline, err := r.source.Timeline(ctx, patientID)
	if err != nil {
		return ports.QuestionAnswer{}, fmt.Errorf("questions: load timeline: %w", err)
	}
	patient, err := r.source.PatientContext(ctx, patientID)
	if err != nil {
		return ports.QuestionAnswer{}, fmt.Errorf("questions: load patient context: %w", err)
	}

	category := categorize(question)
	switch category {
	case ports.QuestionVisits:
		return answerVisits(timeline), nil
	case ports.QuestionMedications:
		return answerMedications(patient), nil
	case ports.QuestionBilling:
		return answerBilling(timeline), nil
	default:
		return answerGeneral(timeline), nil
	}
}

func categorize(question string) ports.QuestionCategory {
	lowered := strings.ToLower(question)
	for _, entry := range categoryTerms {
		for _, term := range entry.terms {
			if strings.Contains(lowered, term) {
				return entry.category
			}
		}
	}
	return ports.QuestionGeneral
}

func answerVisits(timeline domain.Timeline) ports.QuestionAnswer {
	var latest *domain.TimelineEvent
	for i := range timeline.Events {
		ev := &timeline.Events[i]
		if ev.Kind != domain.EventKindVisit {
			continue
		}
		if latest == nil || ev.Date.After(latest.Date) {
			latest = ev
		}
	}
	if latest == nil {
		return ports.QuestionAnswer{
			Category: ports.QuestionVisits,
			Answer:   "The record shows no visits.",
		}
	}
	return ports.QuestionAnswer{
		Category: ports.QuestionVisits,
		Answer:   fmt.Sprintf("The most recent visit on record is %q on %s.", latest.Title, latest.Date.Format("2006-01-02")),
		Sources:  []string{attribution(*latest)},
	}
}

func answerMedications(patient domain.PatientContext) ports.QuestionAnswer {
	if len(patient.Medications) == 0 {
		return ports.QuestionAnswer{
			Category: ports.QuestionMedications,
			Answer:   "The record lists no current medications.",
		}
	}
	return ports.QuestionAnswer{
		Category: ports.QuestionMedications,
		Answer:   fmt.Sprintf("The record lists %d current medications: %s.", len(patient.Medications), strings.Join(patient.Medications, ", ")),
		Sources:  []string{"patient profile"},
	}
}

func answerBilling(timeline domain.Timeline) ports.QuestionAnswer {
	var sources []string
	for _, ev := range timeline.Events {
		if ev.Kind != domain.EventKindEvent {
			continue
		}
		lowered := strings.ToLower(ev.Title + " " + ev.Summary)
		if strings.Contains(lowered, "bill") || strings.Contains(lowered, "charge") || strings.Contains(lowered, "insurance") {
			sources = append(sources, attribution(ev))
		}
	}
	if len(sources) == 0 {
		return ports.QuestionAnswer{
			Category: ports.QuestionBilling,
			Answer:   "The record contains no billing entries to explain.",
		}
	}
	return ports.QuestionAnswer{
		Category: ports.QuestionBilling,
		Answer:   fmt.Sprintf("The record contains %d billing-related entries; the details come from the entries listed as sources.", len(sources)),
		Sources:  sources,
	}
}

func answerGeneral(timeline domain.Timeline) ports.QuestionAnswer {
	if len(timeline.Events) == 0 {
		return ports.QuestionAnswer{
			Category: ports.QuestionGeneral,
			Answer:   "The record is empty.",
		}
	}
	latest := timeline.Events[0]
	for _, ev := range timeline.Events[1:] {
		if ev.Date.After(latest.Date) {
			latest = ev
		}
	}
	return ports.QuestionAnswer{
		Category: ports.QuestionGeneral,
		Answer:   fmt.Sprintf("The record holds %d entries; the most recent is %q on %s.", len(timeline.Events), latest.Title, latest.Date.Format("2006-01-02")),
		Sources:  []string{attribution(latest)},
	}
}

func attribution(ev domain.TimelineEvent) string {
	return fmt.Sprintf("%s: %s", ev.Date.Format("2006-01-02"), ev.Title)
}
