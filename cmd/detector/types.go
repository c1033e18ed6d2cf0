// cmd/detector/types.go
package main

import "github.com/M0105R/FakeNewsDetector/internal/classifier"

// Fact-check verdicts derived from the publisher's textual rating
const (
	VerdictPositive = "positive"
	VerdictNegative = "negative"
	VerdictUnknown  = "unknown"
)

// FactCheckClaim is a single claim-review record from the fact-check
// service, annotated with a keyword-derived verdict.
type FactCheckClaim struct {
	Claim     string `json:"claim"`
	Claimant  string `json:"claimant,omitempty"`
	Rating    string `json:"rating"`
	Publisher string `json:"publisher,omitempty"`
	URL       string `json:"url,omitempty"`
	Published string `json:"published,omitempty"`
	Verdict   string `json:"verdict"`
	Method    string `json:"method"`
}

// Headline is one RSS entry flattened for classification
type Headline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Text   string `json:"text"` // "title. summary" with markup stripped
}

// FeedError records a per-feed failure without aborting the batch
type FeedError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// HeadlineCard is a headline plus whatever analysis was available for it:
// fact-check results when found, local classification otherwise.
type HeadlineCard struct {
	Headline
	FactChecks     []FactCheckClaim   `json:"fact_checks,omitempty"`
	Classification *classifier.Result `json:"classification,omitempty"`
	Warning        string             `json:"warning,omitempty"`
}
