package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LinearModel is a trained linear classifier exported to JSON by the
// training process. For a binary model Coef holds a single row and the
// decision is sigmoid against Classes[1]; for more classes one row per
// class is expected and probabilities come from a softmax.
type LinearModel struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// LoadLinearModel reads a classifier artifact from disk.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	return &m, nil
}

// validate checks internal shape consistency
func (m *LinearModel) validate() error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("need at least two classes, got %d", len(m.Classes))
	}
	if len(m.Coef) == 0 {
		return fmt.Errorf("empty coefficient matrix")
	}

	wantRows := len(m.Classes)
	if len(m.Classes) == 2 {
		wantRows = 1
	}
	if len(m.Coef) != wantRows {
		return fmt.Errorf("expected %d coefficient rows for %d classes, got %d", wantRows, len(m.Classes), len(m.Coef))
	}
	if len(m.Intercept) != wantRows {
		return fmt.Errorf("expected %d intercepts, got %d", wantRows, len(m.Intercept))
	}

	width := len(m.Coef[0])
	for i, row := range m.Coef {
		if len(row) != width {
			return fmt.Errorf("coefficient row %d has width %d, expected %d", i, len(row), width)
		}
	}
	return nil
}

// NumFeatures returns the expected input dimensionality.
func (m *LinearModel) NumFeatures() int {
	return len(m.Coef[0])
}

// PredictProba returns the per-class probability distribution for a
// sparse feature vector.
func (m *LinearModel) PredictProba(x map[int]float64) map[string]float64 {
	probs := make(map[string]float64, len(m.Classes))

	if len(m.Classes) == 2 {
		// Binary: one decision value, sigmoid gives p(Classes[1])
		p := sigmoid(m.decision(0, x))
		probs[m.Classes[0]] = 1 - p
		probs[m.Classes[1]] = p
		return probs
	}

	// Multiclass: softmax over per-class decision values
	scores := make([]float64, len(m.Classes))
	maxScore := math.Inf(-1)
	for i := range m.Classes {
		scores[i] = m.decision(i, x)
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}

	var total float64
	for i := range scores {
		scores[i] = math.Exp(scores[i] - maxScore)
		total += scores[i]
	}
	for i, class := range m.Classes {
		probs[class] = scores[i] / total
	}
	return probs
}

// decision computes the raw score for coefficient row i
func (m *LinearModel) decision(i int, x map[int]float64) float64 {
	score := m.Intercept[i]
	row := m.Coef[i]
	for idx, val := range x {
		if idx >= 0 && idx < len(row) {
			score += row[idx] * val
		}
	}
	return score
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
