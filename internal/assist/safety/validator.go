// Package safety scans generated text for unsafe absolute claims. Every
// text-generating component calls it as a post-condition; a failure is an
// engine bug, not a user-facing error.
package safety

import "strings"

// forbiddenWords are action-implying words that must never appear in
// generated text without a conditional qualifier somewhere in the same text.
var forbiddenWords = []string{
	"submit",
	"submitted",
	"confirmed",
	"booked",
	"scheduled",
	"sent",
	"saved",
	"approved",
	"completed",
	"executed",
	"charged",
	"billed",
	"filed",
}

// qualifyingPhrases exempt forbidden words. Context is evaluated over the
// whole input string: any qualifier anywhere exempts every match in the text.
var qualifyingPhrases = []string{
	"would normally",
	"would typically",
	"would usually",
	"would not",
	"no action",
	"not been",
	"preview only",
}

// conditionalPatterns are the modal markers the engine self-checks for when
// it generates preview text.
var conditionalPatterns = []string{
	"would normally",
	"would typically",
	"would usually",
	"preview only",
	"no action has been taken",
	"a patient would",
	"a clinician would",
	"an operator would",
}

// ForbiddenWordResult enumerates unexempted action-implying words in a text.
type ForbiddenWordResult struct {
	HasForbidden bool     `json:"has_forbidden"`
	FoundWords   []string `json:"found_words"`
}

// SafetyResult is the combined validator output.
type SafetyResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ContainsForbiddenStandaloneWord reports action-implying words that occur
// as standalone tokens without any qualifying phrase in the text. Matching is
// on word boundaries so that, say, "consent" never trips on "sent".
func ContainsForbiddenStandaloneWord(text string) ForbiddenWordResult {
	lowered := strings.ToLower(text)

	for _, phrase := range qualifyingPhrases {
		if strings.Contains(lowered, phrase) {
			return ForbiddenWordResult{}
		}
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		tokens[tok] = true
	}

	var found []string
	for _, word := range forbiddenWords {
		if tokens[word] {
			found = append(found, word)
		}
	}

	return ForbiddenWordResult{
		HasForbidden: len(found) > 0,
		FoundWords:   found,
	}
}

// HasConditionalLanguage reports whether the text carries at least one of the
// fixed modal patterns.
func HasConditionalLanguage(text string) bool {
	lowered := strings.ToLower(text)
	for _, pattern := range conditionalPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// ValidateLanguageSafety runs the forbidden-word check and surfaces each
// violation as an enumerable finding. It never fails for well-qualified text.
func ValidateLanguageSafety(text string) SafetyResult {
	res := ContainsForbiddenStandaloneWord(text)
	if !res.HasForbidden {
		return SafetyResult{IsValid: true}
	}

	errs := make([]string, 0, len(res.FoundWords))
	for _, word := range res.FoundWords {
		errs = append(errs, "action-implying term \""+word+"\" appears without a conditional qualifier")
	}
	return SafetyResult{IsValid: false, Errors: errs}
}
