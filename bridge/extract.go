package bridge

import "strings"

// namePhrase is the fixed introduction pattern the bridge recognizes.
const namePhrase = "my name is"

// ExtractName detects a name introduction in the message. The match is
// case-insensitive and the extracted name is everything after the phrase,
// trimmed and lowercased, with no further validation.
func ExtractName(message string) (string, bool) {
	lower := strings.ToLower(message)

	idx := strings.Index(lower, namePhrase)
	if idx < 0 {
		return "", false
	}

	name := strings.TrimSpace(lower[idx+len(namePhrase):])
	if name == "" {
		return "", false
	}

	return name, true
}
