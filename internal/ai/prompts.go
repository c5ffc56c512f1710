package ai

import (
	"fmt"
	"strings"
)

// Prompt templates for the generation gateway. Prompt text is opaque to
// the rest of the service; only the builders below know its shape.

const summarizeTemplate = `Summarize the following news article into %s.
Ensure the summary is concise, captures the main points, and is suitable for a news brief.

Article:
---
%s
---
Summary:
`

const headlineTemplate = `Generate %d distinct news headlines for the following text.
The headlines should be %s.
Present each headline on a new line, prefixed with a number (e.g., "1. Headline").

Text:
---
%s
---
Headlines:
`

const analysisTemplate = `Analyze the following collection of news headlines from various sources. Provide your analysis in the following structured format. If a category or theme is not applicable, state 'N/A'.

---
Overall Dominant Theme:
[One concise sentence (max 25 words) describing the main overarching topic or trend across ALL headlines.]

Categorized Headlines:
[For EACH headline, assign ONE primary category from (Politics, Sports, Tech, General News, Other) and ONE sentiment (Positive, Negative, Neutral). Use the exact format:
- [Category]: [Sentiment]: [Headline Text]
]

Common Themes/Keywords:
[List 3 to 5 common themes or keywords that frequently appear across these headlines, separated by commas. Focus on high-level concepts.]
---

News Headlines for Analysis:
%s
`

func summarizePrompt(articleText, summaryLength string) string {
	return fmt.Sprintf(summarizeTemplate, summaryLength, articleText)
}

func headlinePrompt(textContent string, count int, style string) string {
	return fmt.Sprintf(headlineTemplate, count, style, textContent)
}

func analysisPrompt(headlines []string) string {
	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		if h = strings.TrimSpace(h); h != "" {
			lines = append(lines, "- "+h)
		}
	}
	return fmt.Sprintf(analysisTemplate, strings.Join(lines, "\n"))
}
