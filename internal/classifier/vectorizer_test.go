package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformBasic(t *testing.T) {
	v := &Vectorizer{
		Vocabulary: map[string]int{"stocks": 0, "rally": 1},
		IDF:        []float64{2.0, 3.0},
		Lowercase:  true,
	}

	vec := v.Transform("Stocks rally as STOCKS climb")

	// "stocks" twice, "rally" once, weighted by idf
	assert.InDelta(t, 4.0, vec[0], 1e-12)
	assert.InDelta(t, 3.0, vec[1], 1e-12)
	assert.Len(t, vec, 2)
}

func TestTransformUnknownTermsDropped(t *testing.T) {
	v := &Vectorizer{
		Vocabulary: map[string]int{"stocks": 0},
		IDF:        []float64{1.0},
		Lowercase:  true,
	}

	vec := v.Transform("entirely unknown vocabulary here")
	assert.Empty(t, vec)
}

func TestTransformL2Norm(t *testing.T) {
	v := &Vectorizer{
		Vocabulary: map[string]int{"stocks": 0, "rally": 1},
		IDF:        []float64{1.0, 1.0},
		Lowercase:  true,
		Norm:       "l2",
	}

	vec := v.Transform("stocks rally")

	var total float64
	for _, val := range vec {
		total += val * val
	}
	assert.InDelta(t, 1.0, math.Sqrt(total), 1e-12)
}

func TestTransformStripAccents(t *testing.T) {
	v := &Vectorizer{
		Vocabulary:   map[string]int{"cafe": 0},
		IDF:          []float64{1.0},
		Lowercase:    true,
		StripAccents: true,
	}

	vec := v.Transform("Café")
	assert.Contains(t, vec, 0)
}

func TestTransformShortTokensIgnored(t *testing.T) {
	// Token pattern requires at least two word characters.
	v := &Vectorizer{
		Vocabulary: map[string]int{"a": 0, "is": 1},
		IDF:        []float64{1.0, 1.0},
		Lowercase:  true,
	}

	vec := v.Transform("a is a")
	assert.NotContains(t, vec, 0)
	assert.Contains(t, vec, 1)
}

func TestTransformSublinearTF(t *testing.T) {
	v := &Vectorizer{
		Vocabulary:  map[string]int{"stocks": 0},
		IDF:         []float64{1.0},
		Lowercase:   true,
		SublinearTF: true,
	}

	vec := v.Transform("stocks stocks stocks")
	require.Contains(t, vec, 0)
	assert.InDelta(t, 1+math.Log(3), vec[0], 1e-12)
}
