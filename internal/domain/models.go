package domain

import "time"

// Domain contains the value types shared across the harvest pipeline.

// Headline is one normalized (title, link) pair extracted from a source.
// Title is whitespace-collapsed and non-empty; Link is always absolute.
type Headline struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SourceResult collects the outcome of a single source fetch. A failed
// fetch carries an Error string instead of headlines; it never aborts
// the surrounding harvest.
type SourceResult struct {
	Source    string     `json:"source"`
	Headlines []Headline `json:"headlines"`
	Error     string     `json:"error,omitempty"`
}

// Report is the order-preserving fan-in of one harvest run. Results
// appear in source registry order regardless of completion order.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Results     []SourceResult `json:"results"`
}

// AllHeadlines flattens every headline across sources, preserving
// report order.
func (r Report) AllHeadlines() []Headline {
	var out []Headline
	for _, res := range r.Results {
		out = append(out, res.Headlines...)
	}
	return out
}

// HeadlineCount returns the total number of headlines in the report.
func (r Report) HeadlineCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Headlines)
	}
	return n
}
