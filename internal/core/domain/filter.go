package domain

import "strings"

// RefusalMessage is returned verbatim whenever the content filter
// rejects an input.
const RefusalMessage = "Îmi pare rău, dar nu pot răspunde la mesaje care conțin limbaj nepotrivit. Te rog să reformulezi întrebarea într-un mod respectuos."

// flaggedTerms is the static denylist. Matching is substring, not
// word-boundary: an input merely containing a flagged term inside a
// longer word is rejected too. Deliberately blunt.
var flaggedTerms = []string{
	"prost", "idiot", "stupid", "fuck", "shit", "damn",
}

// ContentFilter rejects or passes raw user input against the denylist.
// Stateless and side-effect free.
type ContentFilter struct{}

// NewContentFilter creates a ContentFilter.
func NewContentFilter() ContentFilter {
	return ContentFilter{}
}

// Check returns (false, RefusalMessage) when any flagged term occurs in
// the lower-cased input, and (true, unmodified input) otherwise.
func (ContentFilter) Check(text string) (bool, string) {
	lowered := strings.ToLower(text)
	for _, term := range flaggedTerms {
		if strings.Contains(lowered, term) {
			return false, RefusalMessage
		}
	}
	return true, text
}
