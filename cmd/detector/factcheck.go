// cmd/detector/factcheck.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
)

const factCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// claimsSearchResponse mirrors the claims:search JSON payload
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
			PublishedDate string `json:"publishedDate"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// FactChecker queries the Google Fact Check Tools API and normalizes the
// results. Every failure path yields an empty list: the service being
// unavailable must never take the tool down.
type FactChecker struct {
	client         *http.Client
	cache          *gocache.Cache
	endpoint       string
	apiKey         string
	pageSize       int
	openaiKey      string
	openaiFallback bool
}

// NewFactChecker creates a fact checker from config
func NewFactChecker(cfg *Config) *FactChecker {
	return &FactChecker{
		client:         &http.Client{Timeout: FactCheckTimeout},
		cache:          gocache.New(cfg.FactCheckCacheTTL, 2*cfg.FactCheckCacheTTL),
		endpoint:       factCheckEndpoint,
		apiKey:         cfg.FactCheckAPIKey,
		pageSize:       cfg.FactCheckPageSize,
		openaiKey:      cfg.OpenAIAPIKey,
		openaiFallback: cfg.EnableOpenAIFallback,
	}
}

// Enabled reports whether the checker has a key to work with
func (fc *FactChecker) Enabled() bool {
	return fc.apiKey != ""
}

// Search returns claim reviews for a query, ordered as the upstream
// service returned them. Missing key or any transport/parse failure
// yields an empty slice.
func (fc *FactChecker) Search(ctx context.Context, query string) []FactCheckClaim {
	if fc.apiKey == "" || strings.TrimSpace(query) == "" {
		return nil
	}

	query = truncate(query, FactCheckQueryMax)

	if cached, found := fc.cache.Get(query); found {
		IncrementCounter("factcheck_cache_hits")
		return cached.([]FactCheckClaim)
	}

	claims, err := fc.search(ctx, query)
	if err != nil {
		Logger().Warning("Fact check lookup failed: %v", err)
		RecordError(err)
		return nil
	}

	if len(claims) == 0 && fc.openaiFallback && fc.openaiKey != "" {
		if claim, err := fc.checkWithOpenAI(ctx, query); err == nil {
			claims = append(claims, *claim)
		} else {
			Logger().Warning("OpenAI fact check fallback failed: %v", err)
		}
	}

	fc.cache.Set(query, claims, gocache.DefaultExpiration)
	IncrementCounter("factcheck_queries")
	return claims
}

// search performs the claims:search request
func (fc *FactChecker) search(ctx context.Context, query string) ([]FactCheckClaim, error) {
	params := url.Values{}
	params.Set("key", fc.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(fc.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fc.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewFactCheckError(ErrFactCheckRequest, "failed to build request", err)
	}

	resp, err := fc.client.Do(req)
	if err != nil {
		return nil, NewFactCheckError(ErrFactCheckRequest, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewFactCheckError(ErrFactCheckRequest,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFactCheckError(ErrFactCheckRequest, "failed to read response", err)
	}

	var parsed claimsSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, NewFactCheckError(ErrFactCheckParse, "failed to parse response", err)
	}

	var claims []FactCheckClaim
	for _, c := range parsed.Claims {
		claim := FactCheckClaim{
			Claim:    c.Text,
			Claimant: c.Claimant,
			Method:   "Google Fact Check Tools",
		}
		if len(c.ClaimReview) > 0 {
			review := c.ClaimReview[0]
			claim.Rating = review.TextualRating
			claim.Publisher = review.Publisher.Name
			claim.URL = review.URL
			claim.Published = review.PublishedDate
		}
		claim.Verdict = classifyRating(claim.Rating)
		claims = append(claims, claim)
	}

	return claims, nil
}

// classifyRating maps a publisher's free-text rating onto a verdict by
// keyword matching.
func classifyRating(rating string) string {
	r := strings.ToLower(rating)
	switch {
	case strings.Contains(r, "false") || strings.Contains(r, "pants on fire"):
		return VerdictNegative
	case strings.Contains(r, "true") || strings.Contains(r, "correct") || strings.Contains(r, "accurate"):
		return VerdictPositive
	default:
		return VerdictUnknown
	}
}

// checkWithOpenAI asks the chat API for a rating when the fact-check
// service had nothing. The answer is surfaced as a synthetic review.
func (fc *FactChecker) checkWithOpenAI(ctx context.Context, claim string) (*FactCheckClaim, error) {
	client := openai.NewClient(fc.openaiKey)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	systemPrompt := `You are a fact-checking assistant. Rate the claim as one of:
True, Mostly True, Mixed, Mostly False, False, Unverifiable.
Respond as JSON: {"rating": "...", "explanation": "..."}`

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Fact check this claim: " + claim},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, NewFactCheckError(ErrFactCheckRequest, "OpenAI request failed", err)
	}

	var parsed struct {
		Rating      string `json:"rating"`
		Explanation string `json:"explanation"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, NewFactCheckError(ErrFactCheckParse, "failed to parse OpenAI response", err)
	}

	return &FactCheckClaim{
		Claim:     claim,
		Rating:    parsed.Rating,
		Publisher: "OpenAI (model opinion)",
		Verdict:   classifyRating(parsed.Rating),
		Method:    "OpenAI fallback",
	}, nil
}
