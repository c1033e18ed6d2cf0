// cmd/detector/handlers.go
package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/M0105R/FakeNewsDetector/internal/classifier"
)

// analyzeRequest is the payload for a single-article analysis
type analyzeRequest struct {
	Mode         string  `json:"mode"` // "text" or "url"
	Text         string  `json:"text"`
	URL          string  `json:"url"`
	Threshold    float64 `json:"threshold"`
	UseFactCheck bool    `json:"use_factcheck"`
}

// analyzeResponse is the outcome of a single-article analysis
type analyzeResponse struct {
	Warning        string             `json:"warning,omitempty"`
	FactChecks     []FactCheckClaim   `json:"fact_checks,omitempty"`
	Classification *classifier.Result `json:"classification,omitempty"`
	ExtractedChars int                `json:"extracted_chars,omitempty"`
}

// headlinesRequest is the payload for a headline refresh
type headlinesRequest struct {
	MaxPerSource int     `json:"max_per_source"`
	Threshold    float64 `json:"threshold"`
	UseFactCheck bool    `json:"use_factcheck"`
}

// headlinesResponse is a batch of analyzed headline cards
type headlinesResponse struct {
	Cards  []HeadlineCard `json:"cards"`
	Errors []FeedError    `json:"errors,omitempty"`
}

// handleAnalyze classifies one pasted text or article URL
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithHTTPError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	threshold := s.normalizeThreshold(req.Threshold)
	resp := analyzeResponse{}

	text := req.Text
	if req.Mode == "url" {
		if strings.TrimSpace(req.URL) == "" {
			respondWithHTTPError(w, http.StatusBadRequest, "Enter a URL first")
			return
		}

		extracted, err := s.extractor.Extract(r.Context(), req.URL)
		if err != nil {
			Logger().Warning("Extraction failed for %s: %v", req.URL, err)
			RecordError(err)
		}
		if extracted == "" {
			resp.Warning = "Could not extract article text from URL; paste text manually for best results."
			respondWithJSON(w, http.StatusOK, resp)
			return
		}
		text = extracted
		resp.ExtractedChars = len(extracted)
	}

	if len(strings.TrimSpace(text)) < MinTextLength {
		resp.Warning = "Provide article text (or a valid URL with extractable content)."
		respondWithJSON(w, http.StatusOK, resp)
		return
	}

	if req.UseFactCheck && s.cfg.EnableFactCheck {
		resp.FactChecks = s.factChecker.Search(r.Context(), text)
	}

	// Fall back to the local model when the fact-check service had nothing
	if len(resp.FactChecks) == 0 {
		if s.classifier == nil {
			Logger().Warning("Classification requested but model unavailable: %v", s.classifierErr)
			respondWithHTTPError(w, http.StatusServiceUnavailable, "Local model not available for fallback classification")
			return
		}

		result, err := s.classifier.Classify(text, threshold)
		if err != nil {
			respondWithHTTPError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Classification = result
		IncrementCounter("classifications")
	}

	s.hub.Broadcast("analysis", resp)
	respondWithJSON(w, http.StatusOK, resp)
}

// handleHeadlines fetches and analyzes the latest headlines
func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req headlinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithHTTPError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	maxPerSource := req.MaxPerSource
	if maxPerSource == 0 {
		maxPerSource = s.cfg.MaxPerSource
	}
	maxPerSource = clampInt(maxPerSource, 1, MaxPerSourceLimit)
	threshold := s.normalizeThreshold(req.Threshold)

	fetched := s.fetcher.FetchAll(r.Context(), s.sources, maxPerSource)

	resp := headlinesResponse{Errors: fetched.Errors}
	for _, headline := range fetched.Headlines {
		card := HeadlineCard{Headline: headline}

		if req.UseFactCheck && s.cfg.EnableFactCheck {
			card.FactChecks = s.factChecker.Search(r.Context(), headline.Title)
		}

		if len(card.FactChecks) == 0 {
			if s.classifier == nil {
				card.Warning = "Local model not available for fallback classification."
			} else if result, err := s.classifier.Classify(headline.Text, threshold); err == nil {
				card.Classification = result
				IncrementCounter("classifications")
			} else {
				card.Warning = err.Error()
			}
		}

		resp.Cards = append(resp.Cards, card)
	}

	s.hub.Broadcast("headlines", resp)
	respondWithJSON(w, http.StatusOK, resp)
}

// handleSources returns the feed catalog
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.sources)
}

// handleStatus returns runtime status including recent boundary failures
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"version":           VERSION,
		"uptime":            FormatDuration(time.Since(processStart)),
		"model_available":   s.ModelAvailable(),
		"factcheck_enabled": s.cfg.EnableFactCheck && s.factChecker.Enabled(),
		"sources":           len(s.sources),
		"ws_clients":        s.hub.ClientCount(),
		"error_count":       CounterValue("errors"),
		"recent_errors":     RecentErrors(10),
	})
}

// handleConfig returns the configuration with secrets redacted
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.cfg.Redacted())
}

// handleMetrics returns process metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, collectMetrics())
}

// normalizeThreshold applies the default and slider bounds
func (s *Server) normalizeThreshold(threshold float64) float64 {
	if threshold == 0 {
		threshold = s.cfg.DefaultThreshold
	}
	return clampFloat(threshold, MinThreshold, MaxThreshold)
}
