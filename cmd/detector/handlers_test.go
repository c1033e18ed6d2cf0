package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0105R/FakeNewsDetector/internal/classifier"
)

func testConfig() *Config {
	return &Config{
		ListenAddr:        ":0",
		UserAgent:         "test-agent",
		EnableFactCheck:   true,
		DefaultThreshold:  0.62,
		MaxPerSource:      5,
		FactCheckPageSize: 5,
		FactCheckCacheTTL: time.Minute,
		FetchRatePerHost:  1000,
		FetchBurst:        100,
	}
}

// fixedClassifier returns a classifier whose REAL probability is pinned
// to p for any input.
func fixedClassifier(t *testing.T, p float64) *classifier.Classifier {
	t.Helper()
	vec := &classifier.Vectorizer{
		Vocabulary: map[string]int{"stocks": 0},
		IDF:        []float64{1.0},
		Lowercase:  true,
		Norm:       "l2",
	}
	model := &classifier.LinearModel{
		Classes:   []string{"FAKE", "REAL"},
		Coef:      [][]float64{{0}},
		Intercept: []float64{math.Log(p / (1 - p))},
	}
	clf, err := classifier.New(vec, model)
	require.NoError(t, err)
	return clf
}

func postJSON(t *testing.T, s *Server, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeTextVerdict(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{
		Mode:      "text",
		Text:      "Stocks rally on strong earnings.",
		Threshold: 0.62,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Classification)
	assert.Equal(t, "REAL", resp.Classification.Label)
	assert.InDelta(t, 0.71, resp.Classification.Confidence, 1e-9)
	assert.Empty(t, resp.Warning)
}

func TestAnalyzeHighThresholdFlipsToFake(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{
		Mode:      "text",
		Text:      "Stocks rally on strong earnings.",
		Threshold: 0.90,
	})

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Classification)
	assert.Equal(t, "FAKE", resp.Classification.Label)
	// Confidence still reports the REAL probability
	assert.InDelta(t, 0.71, resp.Classification.Confidence, 1e-9)
}

func TestAnalyzeShortTextWarns(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{Mode: "text", Text: "too short"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Classification)
	assert.Contains(t, resp.Warning, "Provide article text")
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	s := NewServer(testConfig(), nil, fmt.Errorf("artifact missing"), nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{
		Mode: "text",
		Text: "Stocks rally on strong earnings.",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not available")
}

func TestAnalyzeURLModeRequiresURL(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{Mode: "url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeURLModeExtractsAndClassifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{Mode: "url", URL: srv.URL + "/story"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Classification)
	assert.Greater(t, resp.ExtractedChars, MinArticleLength)
}

func TestAnalyzeURLModeUnextractableWarns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Tiny.</p></body></html>`))
	}))
	defer srv.Close()

	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, nil)

	rec := postJSON(t, s, "/api/analyze", analyzeRequest{Mode: "url", URL: srv.URL})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Classification)
	assert.Contains(t, resp.Warning, "Could not extract article text")
}

func TestHeadlinesEndToEnd(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody(3)))
	}))
	defer feed.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer bad.Close()

	sources := []Source{
		{Name: "Working", URL: feed.URL},
		{Name: "Broken", URL: bad.URL},
	}
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, sources)

	rec := postJSON(t, s, "/api/headlines", headlinesRequest{MaxPerSource: 2, Threshold: 0.62})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp headlinesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Cards, 2)
	for _, card := range resp.Cards {
		assert.Equal(t, "Working", card.Source)
		require.NotNil(t, card.Classification)
		assert.Equal(t, "REAL", card.Classification.Label)
	}

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Broken", resp.Errors[0].Source)
}

func TestConfigEndpointRedactsSecrets(t *testing.T) {
	cfg := testConfig()
	cfg.FactCheckAPIKey = "super-secret"
	cfg.OpenAIAPIKey = "also-secret"
	s := NewServer(cfg, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), "super-secret")
	assert.NotContains(t, rec.Body.String(), "also-secret")
	assert.Contains(t, rec.Body.String(), "[REDACTED]")
}

func TestStatusEndpoint(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, DefaultSources())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["model_available"])
	assert.Equal(t, float64(6), status["sources"])
}

func TestIndexRenders(t *testing.T) {
	s := NewServer(testConfig(), fixedClassifier(t, 0.71), nil, DefaultSources())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fake News Detector")
	assert.Contains(t, rec.Body.String(), "0.62")
}

func TestNormalizeThreshold(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	assert.InDelta(t, 0.62, s.normalizeThreshold(0), 1e-12)    // default
	assert.InDelta(t, 0.50, s.normalizeThreshold(0.10), 1e-12) // clamped low
	assert.InDelta(t, 0.99, s.normalizeThreshold(1.50), 1e-12) // clamped high
	assert.InDelta(t, 0.75, s.normalizeThreshold(0.75), 1e-12)
}
