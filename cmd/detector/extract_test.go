package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(checkRobots bool) *Extractor {
	return &Extractor{
		client:      &http.Client{Timeout: 5 * time.Second},
		robots:      newRobotsChecker("test-agent", 5*time.Second),
		limiter:     newHostLimiter(1000, 100),
		userAgent:   "test-agent",
		checkRobots: checkRobots,
		minLength:   MinArticleLength,
	}
}

const articleHTML = `<html><body>
<nav>Site navigation</nav>
<article>
<p>The first paragraph of the article body, long enough to matter.</p>
<p>A second paragraph with additional reporting and detail.</p>
</article>
<footer><p>Contact us</p></footer>
</body></html>`

func TestExtractConcatenatesParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := newTestExtractor(false)
	text, err := e.Extract(context.Background(), srv.URL+"/story")
	require.NoError(t, err)

	parts := strings.Split(text, "\n\n")
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0], "first paragraph")
	assert.Contains(t, parts[1], "second paragraph")
	// Paragraphs only; nav text is not included
	assert.NotContains(t, text, "Site navigation")
}

func TestExtractShortTextIsUnusable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Too short.</p></body></html>`))
	}))
	defer srv.Close()

	e := newTestExtractor(false)
	text, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractRejectsNonHTTPSchemes(t *testing.T) {
	e := newTestExtractor(false)

	for _, raw := range []string{"ftp://example.com/file", "file:///etc/passwd", "not a url", ""} {
		_, err := e.Extract(context.Background(), raw)
		require.Error(t, err, raw)

		var de *DetectorError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, ErrExtractBadURL, de.Code)
	}
}

func TestExtractFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "paywalled", http.StatusForbidden)
	}))
	defer srv.Close()

	e := newTestExtractor(false)
	text, err := e.Extract(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestExtractHonorsRobotsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := newTestExtractor(true)

	_, err := e.Extract(context.Background(), srv.URL+"/private/story")
	require.Error(t, err)
	var de *DetectorError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrExtractDisallowed, de.Code)

	// Paths outside the disallow rule still work
	text, err := e.Extract(context.Background(), srv.URL+"/public/story")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestExtractMissingRobotsAllowsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := newTestExtractor(true)
	text, err := e.Extract(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
