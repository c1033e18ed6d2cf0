// cmd/detector/extract.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls article text out of a web page
type Extractor struct {
	client      *http.Client
	robots      *robotsChecker
	limiter     *hostLimiter
	userAgent   string
	checkRobots bool
	minLength   int
}

// NewExtractor creates an article text extractor
func NewExtractor(cfg *Config, limiter *hostLimiter) *Extractor {
	return &Extractor{
		client:      &http.Client{Timeout: ExtractTimeout},
		robots:      newRobotsChecker(cfg.UserAgent, ExtractTimeout),
		limiter:     limiter,
		userAgent:   cfg.UserAgent,
		checkRobots: cfg.EnableRobotsCheck,
		minLength:   MinArticleLength,
	}
}

// Extract fetches rawURL and returns the concatenated paragraph text.
// An empty string with a nil error means the page yielded nothing usable.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", NewExtractError(ErrExtractBadURL, "URL must be http or https", err)
	}

	if e.checkRobots && !e.robots.Allowed(ctx, rawURL) {
		return "", NewExtractError(ErrExtractDisallowed, "fetch disallowed by robots.txt", nil)
	}

	if err := e.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", NewExtractError(ErrExtractFetch, "failed to build request", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", NewExtractError(ErrExtractFetch, "failed to fetch page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewExtractError(ErrExtractFetch,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", NewExtractError(ErrExtractFetch, "failed to parse page", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, "\n\n")
	if len(text) < e.minLength {
		return "", nil
	}

	IncrementCounter("articles_extracted")
	return text, nil
}
