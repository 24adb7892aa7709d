package chunking

import (
	"regexp"
	"strings"
)

// headingPattern matches a Markdown ATX heading line. The marker depth is not kept.
var headingPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// Section is a run of document text under the most recent heading.
type Section struct {
	Title string // Heading text, empty when no heading precedes the body
	Body  string // Trimmed body text, never empty
}

// SplitSections partitions document text into sections at heading boundaries.
//
// Text before the first heading becomes an untitled section. A heading that is
// immediately followed by another heading produces no section. A document
// that produces no sections otherwise (no headings, or headings only) yields a
// single untitled section holding the trimmed text, and a blank document
// yields none.
func SplitSections(text string) []Section {
	var sections []Section
	lastEnd := 0
	lastTitle := ""

	for _, m := range headingPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if start > lastEnd {
			if body := strings.TrimSpace(text[lastEnd:start]); body != "" {
				sections = append(sections, Section{Title: lastTitle, Body: body})
			}
		}
		lastTitle = strings.TrimSpace(text[m[4]:m[5]])
		lastEnd = end
	}

	if lastEnd < len(text) {
		if body := strings.TrimSpace(text[lastEnd:]); body != "" {
			sections = append(sections, Section{Title: lastTitle, Body: body})
		}
	}

	if len(sections) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			sections = append(sections, Section{Body: trimmed})
		}
	}

	return sections
}
