// cmd/detector/rss.go
package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// HeadlineFetcher retrieves headlines from RSS feeds
type HeadlineFetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	limiter   *hostLimiter
	userAgent string
}

// FetchResult holds the flattened headlines from one retrieval plus any
// per-feed failures; one broken feed never aborts the rest.
type FetchResult struct {
	Headlines []Headline  `json:"headlines"`
	Errors    []FeedError `json:"errors,omitempty"`
}

// NewHeadlineFetcher creates a headline fetcher
func NewHeadlineFetcher(cfg *Config, limiter *hostLimiter) *HeadlineFetcher {
	return &HeadlineFetcher{
		client:    &http.Client{Timeout: FeedTimeout},
		parser:    gofeed.NewParser(),
		limiter:   limiter,
		userAgent: cfg.UserAgent,
	}
}

// FetchAll retrieves up to maxPerSource entries from every active source.
// No deduplication or cross-source ordering is applied.
func (f *HeadlineFetcher) FetchAll(ctx context.Context, sources []Source, maxPerSource int) *FetchResult {
	result := &FetchResult{}

	for _, src := range sources {
		if src.Paused {
			continue
		}

		headlines, err := f.FetchSource(ctx, src, maxPerSource)
		if err != nil {
			Logger().Warning("Feed fetch failed for %s: %v", src.Name, err)
			RecordError(NewFeedError(ErrFeedFetch, fmt.Sprintf("fetch %s failed", src.Name), err))
			result.Errors = append(result.Errors, FeedError{
				Source:  src.Name,
				Message: err.Error(),
			})
			continue
		}

		result.Headlines = append(result.Headlines, headlines...)
	}

	AddCounter("headlines_fetched", int64(len(result.Headlines)))
	return result
}

// FetchSource retrieves headlines from a single feed
func (f *HeadlineFetcher) FetchSource(ctx context.Context, src Source, maxPerSource int) ([]Headline, error) {
	if err := f.limiter.Wait(ctx, src.URL); err != nil {
		return nil, err
	}

	feed, err := f.fetchFeed(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	var headlines []Headline
	for _, item := range feed.Items {
		if len(headlines) >= maxPerSource {
			break
		}
		if item.Title == "" {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		text := item.Title + "."
		if stripped := stripHTML(summary); stripped != "" {
			text += " " + stripped
		}

		headlines = append(headlines, Headline{
			Source: src.Name,
			Title:  item.Title,
			Link:   item.Link,
			Text:   text,
		})
	}

	return headlines, nil
}

// fetchFeed retrieves and parses one RSS feed
func (f *HeadlineFetcher) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, NewFeedError(ErrFeedParse, "failed to parse feed", err)
	}
	return feed, nil
}
