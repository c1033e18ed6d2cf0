// Package classifier scores news text as REAL or FAKE using a pair of
// pre-trained artifacts: a TF-IDF vectorizer and a linear model. Both are
// produced and versioned by an external training process; this package
// only checks that their shapes are compatible.
package classifier

import (
	"fmt"
	"strings"
)

// Verdict labels emitted by Classify.
const (
	LabelReal = "REAL"
	LabelFake = "FAKE"
)

// DefaultThreshold is the minimum REAL-class probability required to
// label text REAL.
const DefaultThreshold = 0.62

// Result holds the outcome of a single classification. Confidence is the
// REAL-class probability regardless of the emitted label.
type Result struct {
	Label         string             `json:"label"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Classifier combines the two artifacts into an immutable scorer. Build
// one at process start and pass it to consumers; it is safe for
// concurrent use since nothing mutates it after construction.
type Classifier struct {
	vec   *Vectorizer
	model *LinearModel
}

// New builds a Classifier from already-loaded artifacts, verifying that
// their feature spaces line up.
func New(vec *Vectorizer, model *LinearModel) (*Classifier, error) {
	if vec == nil || model == nil {
		return nil, fmt.Errorf("classifier requires both artifacts")
	}
	if vec.NumFeatures() != model.NumFeatures() {
		return nil, fmt.Errorf("artifact mismatch: vectorizer has %d features, model expects %d",
			vec.NumFeatures(), model.NumFeatures())
	}
	return &Classifier{vec: vec, model: model}, nil
}

// Load reads both artifacts from disk and builds a Classifier.
func Load(vectorizerPath, modelPath string) (*Classifier, error) {
	vec, err := LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}
	model, err := LoadLinearModel(modelPath)
	if err != nil {
		return nil, err
	}
	return New(vec, model)
}

// Classes returns the model's class labels.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.model.Classes))
	copy(out, c.model.Classes)
	return out
}

// Classify labels text REAL when its REAL-class probability meets the
// threshold, FAKE otherwise. Empty input is an error; length limits are
// enforced by callers.
func (c *Classifier) Classify(text string, threshold float64) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	probs := c.model.PredictProba(c.vec.Transform(text))
	realProb := realProbability(probs)

	label := LabelFake
	if realProb >= threshold {
		label = LabelReal
	}

	return &Result{
		Label:         label,
		Confidence:    realProb,
		Probabilities: probs,
	}, nil
}

// realProbability finds the probability mass assigned to the REAL class,
// tolerating case variants of the label ("REAL", "Real", "real").
func realProbability(probs map[string]float64) float64 {
	if p, ok := probs[LabelReal]; ok {
		return p
	}
	for class, p := range probs {
		if strings.EqualFold(class, LabelReal) {
			return p
		}
	}
	return 0
}
