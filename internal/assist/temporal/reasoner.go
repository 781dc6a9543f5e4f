// Package temporal compares the current request against the patient's
// encounter history: what changed since the last encounter, which concerns
// repeat, and where follow-up gaps sit. All day arithmetic is calendar-date
// subtraction against an injected reference instant; nothing here reads the
// wall clock.
package temporal

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/carelens/carelens/internal/assist/relevance"
	"github.com/carelens/carelens/internal/core/domain"
)

const (
	maxDifferences = 4
	maxTrends      = 4
	maxGaps        = 4

	recencyWindowDays  = 30
	followUpWindowDays = 90
	encounterGapDays   = 90
)

// Input bundles one comparative-reasoning request.
type Input struct {
	Intent        domain.IntentBucket
	Message       string
	RelevantItems []domain.ScoredTimelineItem
	Timeline      domain.Timeline
	Now           time.Time
}

// BuildInsights produces the comparative view of the request: last encounter,
// keyword differences, repeated-mention trends, and care gaps. Every list is
// capped by truncation in generation order.
func BuildInsights(in Input) domain.ComparativeInsights {
	insights := domain.ComparativeInsights{
		DifferencesVsLastEncounter: []string{},
		Trends:                     []string{},
		Gaps:                       []string{},
	}

	keywords := relevance.ContentKeywords(in.Message)

	if last := lastEncounter(in.Timeline.Events); last != nil {
		insights.LastEncounter = last
		insights.TimeSinceLastEncounterDays = daysBetween(last.Date, in.Now)
		insights.DifferencesVsLastEncounter = truncate(differences(keywords, *last), maxDifferences)
	}

	insights.Trends = truncate(trends(keywords, in.RelevantItems, in.Timeline.Events, in.Now), maxTrends)
	insights.Gaps = truncate(gaps(in.Timeline.Events), maxGaps)
	insights.EvidenceAttribution = attribution(insights.LastEncounter, in.RelevantItems)

	return insights
}

// lastEncounter returns the most recent visit or note by date.
func lastEncounter(events []domain.TimelineEvent) *domain.TimelineEvent {
	var last *domain.TimelineEvent
	for i := range events {
		ev := events[i]
		if ev.Kind != domain.EventKindVisit && ev.Kind != domain.EventKindNote {
			continue
		}
		if last == nil || ev.Date.After(last.Date) {
			last = &events[i]
		}
	}
	if last == nil {
		return nil
	}
	clone := *last
	return &clone
}

// daysBetween is ceil(|b-a| / 1 day) over calendar dates.
func daysBetween(a, b time.Time) int {
	diff := b.Sub(a).Hours() / 24
	return int(math.Ceil(math.Abs(diff)))
}

// differences is the symmetric keyword set difference between the message and
// the last encounter text: all "new" keywords first, then all "missing" ones,
// each in extraction order.
func differences(messageKeywords []string, last domain.TimelineEvent) []string {
	encounterKeywords := relevance.ContentKeywords(last.Title + " " + last.Summary)
	encounterSet := toSet(encounterKeywords)
	messageSet := toSet(messageKeywords)

	var out []string
	for _, kw := range messageKeywords {
		if !encounterSet[kw] {
			out = append(out, fmt.Sprintf("New in this request: %q was not discussed at the last encounter", kw))
		}
	}
	for _, kw := range encounterKeywords {
		if !messageSet[kw] {
			out = append(out, fmt.Sprintf("Previously mentioned but not in this request: %q", kw))
		}
	}
	return out
}

// trends emits one entry per message keyword seen on two or more distinct
// timeline dates, plus a single recency trend when any relevant item falls
// within the last 30 days.
func trends(messageKeywords []string, relevant []domain.ScoredTimelineItem, events []domain.TimelineEvent, now time.Time) []string {
	var out []string
	for _, kw := range messageKeywords {
		dates := make(map[string]bool)
		for _, ev := range events {
			text := strings.ToLower(ev.Title + " " + ev.Summary)
			if strings.Contains(text, kw) {
				dates[ev.Date.Format("2006-01-02")] = true
			}
		}
		if len(dates) >= 2 {
			out = append(out, fmt.Sprintf("Repeated mention of %q across the record (%d times)", kw, len(dates)))
		}
	}

	for _, item := range relevant {
		if daysBetween(item.Event.Date, now) <= recencyWindowDays {
			out = append(out, "Recent activity: at least one relevant record is from the last 30 days")
			break
		}
	}
	return out
}

// gaps flags referrals with no follow-up visit strictly within the next 90
// days, then chronological gaps of more than 90 days between consecutive
// encounters. Referral gaps come first.
func gaps(events []domain.TimelineEvent) []string {
	var out []string

	for _, ev := range events {
		text := strings.ToLower(ev.Title + " " + ev.Summary)
		if !strings.Contains(text, "referral") {
			continue
		}
		if !hasFollowUpVisit(ev, events) {
			out = append(out, fmt.Sprintf("Referral with no follow-up visit within %d days (%s)", followUpWindowDays, ev.Title))
		}
	}

	encounters := encountersByDate(events)
	for i := 1; i < len(encounters); i++ {
		prev, next := encounters[i-1], encounters[i]
		days := daysBetween(prev.Date, next.Date)
		if days > encounterGapDays {
			out = append(out, fmt.Sprintf("Care gap: %s to %s (%d days)",
				prev.Date.Format("2006-01-02"), next.Date.Format("2006-01-02"), days))
		}
	}
	return out
}

func hasFollowUpVisit(referral domain.TimelineEvent, events []domain.TimelineEvent) bool {
	deadline := referral.Date.AddDate(0, 0, followUpWindowDays)
	for _, ev := range events {
		if ev.Kind != domain.EventKindVisit {
			continue
		}
		if ev.Date.After(referral.Date) && !ev.Date.After(deadline) {
			return true
		}
	}
	return false
}

func encountersByDate(events []domain.TimelineEvent) []domain.TimelineEvent {
	var encounters []domain.TimelineEvent
	for _, ev := range events {
		if ev.Kind == domain.EventKindVisit || ev.Kind == domain.EventKindNote {
			encounters = append(encounters, ev)
		}
	}
	sort.SliceStable(encounters, func(i, j int) bool {
		return encounters[i].Date.Before(encounters[j].Date)
	})
	return encounters
}

// attribution lists the last encounter first, then each relevant item not
// already attributed, deduplicated by date in insertion order.
func attribution(last *domain.TimelineEvent, relevant []domain.ScoredTimelineItem) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(ev domain.TimelineEvent) {
		key := ev.Date.Format("2006-01-02")
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, fmt.Sprintf("%s: %s", key, ev.Title))
	}

	if last != nil {
		add(*last)
	}
	for _, item := range relevant {
		add(item.Event)
	}
	return out
}

func toSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[kw] = true
	}
	return set
}

func truncate(list []string, max int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > max {
		return list[:max]
	}
	return list
}
