package classifier

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVectorizer() *Vectorizer {
	return &Vectorizer{
		Vocabulary: map[string]int{
			"stocks": 0, "rally": 1, "strong": 2, "earnings": 3,
			"hoax": 4, "shocking": 5, "miracle": 6, "cure": 7,
		},
		IDF:       []float64{1, 1, 1, 1, 1.5, 1.5, 1.5, 1.5},
		Lowercase: true,
		Norm:      "l2",
	}
}

func testModel() *LinearModel {
	return &LinearModel{
		Classes: []string{"FAKE", "REAL"},
		Coef: [][]float64{
			{1.2, 1.0, 0.8, 1.1, -2.0, -1.8, -2.2, -1.5},
		},
		Intercept: []float64{0.1},
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(testVectorizer(), testModel())
	require.NoError(t, err)
	return c
}

func TestClassifyReturnsValidVerdict(t *testing.T) {
	c := newTestClassifier(t)

	texts := []string{
		"Stocks rally on strong earnings today across global markets.",
		"SHOCKING miracle cure the government does not want you to know.",
		"Completely out of vocabulary sentence with unknown words only.",
	}

	for _, text := range texts {
		res, err := c.Classify(text, DefaultThreshold)
		require.NoError(t, err, text)

		assert.Contains(t, []string{LabelReal, LabelFake}, res.Label)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 1.0)

		var total float64
		for _, p := range res.Probabilities {
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestClassifyThresholdMonotonicity(t *testing.T) {
	c := newTestClassifier(t)

	// Raising the threshold must never turn FAKE into REAL.
	texts := []string{
		"Stocks rally on strong earnings.",
		"Shocking hoax miracle cure revealed.",
	}

	for _, text := range texts {
		sawFake := false
		for threshold := 0.50; threshold <= 0.99; threshold += 0.01 {
			res, err := c.Classify(text, threshold)
			require.NoError(t, err)
			if sawFake {
				assert.Equal(t, LabelFake, res.Label,
					"text %q flipped back to REAL at threshold %.2f", text, threshold)
			}
			if res.Label == LabelFake {
				sawFake = true
			}
		}
	}
}

func TestClassifyKnownConfidence(t *testing.T) {
	// Zero coefficients pin the decision value to the intercept, so the
	// REAL probability is exactly sigmoid(intercept).
	model := &LinearModel{
		Classes:   []string{"FAKE", "REAL"},
		Coef:      [][]float64{make([]float64, 8)},
		Intercept: []float64{math.Log(0.71 / 0.29)},
	}
	c, err := New(testVectorizer(), model)
	require.NoError(t, err)

	res, err := c.Classify("Stocks rally on strong earnings.", 0.62)
	require.NoError(t, err)

	assert.Equal(t, LabelReal, res.Label)
	assert.InDelta(t, 0.71, res.Confidence, 1e-9)
}

func TestClassifyRealLabelCaseVariants(t *testing.T) {
	model := testModel()
	model.Classes = []string{"Fake", "Real"}
	c, err := New(testVectorizer(), model)
	require.NoError(t, err)

	res, err := c.Classify("Stocks rally on strong earnings.", 0.0)
	require.NoError(t, err)

	assert.Equal(t, LabelReal, res.Label)
	assert.InDelta(t, res.Probabilities["Real"], res.Confidence, 1e-12)
}

func TestClassifyEmptyText(t *testing.T) {
	c := newTestClassifier(t)

	_, err := c.Classify("   ", DefaultThreshold)
	assert.Error(t, err)
}

func TestClassifyMulticlassProbabilities(t *testing.T) {
	model := &LinearModel{
		Classes: []string{"FAKE", "REAL", "SATIRE"},
		Coef: [][]float64{
			{-1, -1, -1, -1, 2, 2, 2, 2},
			{1, 1, 1, 1, -2, -2, -2, -2},
			{0, 0, 0, 0, 0.5, 0.5, 0.5, 0.5},
		},
		Intercept: []float64{0, 0, 0},
	}
	c, err := New(testVectorizer(), model)
	require.NoError(t, err)

	res, err := c.Classify("Stocks rally on strong earnings.", DefaultThreshold)
	require.NoError(t, err)

	require.Len(t, res.Probabilities, 3)
	var total float64
	for _, p := range res.Probabilities {
		assert.GreaterOrEqual(t, p, 0.0)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestNewRejectsMismatchedArtifacts(t *testing.T) {
	model := testModel()
	model.Coef = [][]float64{{1, 2, 3}} // wrong width

	_, err := New(testVectorizer(), model)
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	vecPath := filepath.Join(dir, "vectorizer.json")
	modelPath := filepath.Join(dir, "model.json")

	writeJSON(t, vecPath, `{
		"vocabulary": {"stocks": 0, "hoax": 1},
		"idf": [1.0, 1.5],
		"lowercase": true,
		"norm": "l2"
	}`)
	writeJSON(t, modelPath, `{
		"classes": ["FAKE", "REAL"],
		"coef": [[0.5, -0.5]],
		"intercept": [0.0]
	}`)

	c, err := Load(vecPath, modelPath)
	require.NoError(t, err)

	res, err := c.Classify("Stocks climbed again.", 0.5)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Label)
}

func TestLoadMissingArtifact(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing2.json"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedShapes(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"idf mismatch":  `{"vocabulary": {"a": 0, "b": 1}, "idf": [1.0], "norm": "l2"}`,
		"bad index":     `{"vocabulary": {"a": 5}, "idf": [1.0], "norm": "l2"}`,
		"empty vocab":   `{"vocabulary": {}, "idf": [], "norm": "l2"}`,
		"not even json": `{`,
	}

	for name, body := range cases {
		path := filepath.Join(dir, "vec.json")
		writeJSON(t, path, body)
		_, err := LoadVectorizer(path)
		assert.Error(t, err, name)
	}

	modelCases := map[string]string{
		"one class":      `{"classes": ["REAL"], "coef": [[1.0]], "intercept": [0.0]}`,
		"row mismatch":   `{"classes": ["FAKE", "REAL"], "coef": [[1.0], [2.0]], "intercept": [0.0, 0.0]}`,
		"ragged rows":    `{"classes": ["A", "B", "C"], "coef": [[1.0], [2.0, 3.0], [4.0]], "intercept": [0, 0, 0]}`,
		"bad intercepts": `{"classes": ["FAKE", "REAL"], "coef": [[1.0]], "intercept": []}`,
	}

	for name, body := range modelCases {
		path := filepath.Join(dir, "model.json")
		writeJSON(t, path, body)
		_, err := LoadLinearModel(path)
		assert.Error(t, err, name)
	}
}

func writeJSON(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}
