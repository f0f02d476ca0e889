package extract

import "strings"

const HeadingMarker = "KAVRAMSAL TANIM"

// SelectDescription picks the descriptive paragraph of a document.
//
// It is a positional heuristic, not a parser: the paragraph after the first
// one containing marker (case-insensitive), otherwise the third paragraph,
// otherwise the second, otherwise "". The first paragraph is assumed to be
// the title.
func SelectDescription(paragraphs []string, marker string) string {
	needle := strings.ToUpper(marker)
	for i, p := range paragraphs {
		if needle != "" && strings.Contains(strings.ToUpper(p), needle) {
			if i+1 < len(paragraphs) {
				return paragraphs[i+1]
			}
			break
		}
	}

	switch {
	case len(paragraphs) > 2:
		return paragraphs[2]
	case len(paragraphs) > 1:
		return paragraphs[1]
	}
	return ""
}
