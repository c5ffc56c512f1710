package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// listMarker matches the numbering or bullet prefix models put on list
// output ("1. ", "2) ", "- ", "* ").
var listMarker = regexp.MustCompile(`^\s*(?:\d{1,2}\s*[.)]|[-*•])\s*`)

// parseHeadlineList turns raw model output into a renumbered headline
// list of at most count entries. Every non-empty line has its list
// marker stripped; when stripping leaves nothing usable the raw
// non-empty lines stand in. The surviving lines are renumbered
// "1."..."N." so the output shape never depends on how the model chose
// to number its own.
func parseHeadlineList(raw string, count int) []string {
	var nonEmpty []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}

	cleaned := make([]string, 0, len(nonEmpty))
	for _, line := range nonEmpty {
		if stripped := strings.TrimSpace(listMarker.ReplaceAllString(line, "")); stripped != "" {
			cleaned = append(cleaned, stripped)
		}
	}
	if len(cleaned) == 0 {
		cleaned = nonEmpty
	}

	if len(cleaned) > count {
		cleaned = cleaned[:count]
	}

	out := make([]string, len(cleaned))
	for i, h := range cleaned {
		out[i] = fmt.Sprintf("%d. %s", i+1, h)
	}
	return out
}
