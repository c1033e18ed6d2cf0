// cmd/detector/constants.go
package main

import "time"

// VERSION is the application version
const VERSION = "1.0.0"

// Classification limits
const (
	MinTextLength    = 20   // shortest text worth classifying
	MinArticleLength = 50   // shortest extraction considered usable
	MinThreshold     = 0.50 // slider lower bound
	MaxThreshold     = 0.99 // slider upper bound
)

// Headline fetching limits
const (
	MaxPerSourceLimit = 10
	FactCheckQueryMax = 300 // chars of text sent to the fact-check API
)

// Network timeouts
const (
	FactCheckTimeout = 15 * time.Second
	FeedTimeout      = 15 * time.Second
	ExtractTimeout   = 10 * time.Second
)
