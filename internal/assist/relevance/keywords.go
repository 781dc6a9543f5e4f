package relevance

import "strings"

// stopWords are filtered out of content-keyword extraction. The list is
// intentionally small; the goal is noise reduction, not linguistics.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "you": true, "your": true,
	"can": true, "could": true, "would": true, "should": true, "with": true,
	"about": true, "what": true, "when": true, "where": true, "which": true,
	"this": true, "that": true, "these": true, "those": true, "have": true,
	"has": true, "had": true, "was": true, "were": true, "are": true,
	"been": true, "being": true, "not": true, "but": true, "all": true,
	"any": true, "get": true, "got": true, "how": true, "why": true,
	"who": true, "his": true, "her": true, "him": true, "she": true,
	"our": true, "out": true, "they": true, "them": true, "their": true,
	"there": true, "here": true, "from": true, "into": true, "onto": true,
	"did": true, "does": true, "will": true, "please": true, "need": true,
	"want": true, "like": true, "just": true, "some": true, "more": true,
}

// ContentKeywords extracts the deduplicated, case-folded content tokens of a
// message: runs of letters and digits at least three characters long that are
// not stop words, in order of first appearance.
func ContentKeywords(message string) []string {
	lowered := strings.ToLower(message)
	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	seen := make(map[string]bool, len(tokens))
	var keywords []string
	for _, tok := range tokens {
		if len(tok) < 3 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}
