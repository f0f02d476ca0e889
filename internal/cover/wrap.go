package cover

import (
	"strings"
	"unicode/utf8"
)

// WrapText packs words greedily into lines of at most maxChars runes. A word
// longer than maxChars is put on a line of its own rather than split.
func WrapText(text string, maxChars int) []string {
	var (
		lines   []string
		current []string
		length  int
	)

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if length+n+1 <= maxChars {
			current = append(current, word)
			length += n + 1
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
		length = n
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
