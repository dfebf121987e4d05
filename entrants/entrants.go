package entrants

import "strings"

// Parse turns free-form text into an ordered entrant list.
//
// A single line splits on commas when any are present, otherwise on
// semicolons, otherwise on whitespace runs. Multi-line input splits on
// newlines first and then applies the same separator priority per line.
// Tokens are trimmed and empty tokens dropped. Duplicates are preserved:
// two entrants may share a display name, and dropping one would silently
// change their odds.
func Parse(text string) []string {
	results := []string{}

	if !strings.Contains(text, "\n") {
		return appendLine(results, text)
	}

	for _, line := range strings.Split(text, "\n") {
		results = appendLine(results, line)
	}
	return results
}

// appendLine splits one line on comma, then semicolon, then whitespace,
// in that priority order, and appends the trimmed non-empty tokens.
func appendLine(dst []string, line string) []string {
	var tokens []string
	switch {
	case strings.Contains(line, ","):
		tokens = strings.Split(line, ",")
	case strings.Contains(line, ";"):
		tokens = strings.Split(line, ";")
	default:
		tokens = strings.Fields(line)
	}

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			dst = append(dst, tok)
		}
	}
	return dst
}

// Join renders an entrant list back into editor text, one name per line.
func Join(list []string) string {
	return strings.Join(list, "\n")
}
