package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches word tokens of two or more characters, the same
// pattern the training side uses to build the vocabulary.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer maps raw text into the TF-IDF feature space of the trained
// model. It is exported to JSON by the training process and treated as
// opaque here beyond shape validation.
type Vectorizer struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    bool           `json:"lowercase"`
	StripAccents bool           `json:"strip_accents"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         string         `json:"norm"`
}

// LoadVectorizer reads a vectorizer artifact from disk.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer artifact: %w", err)
	}

	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vectorizer artifact: %w", err)
	}

	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("invalid vectorizer artifact: %w", err)
	}

	return &v, nil
}

// validate checks internal shape consistency
func (v *Vectorizer) validate() error {
	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	if len(v.IDF) != len(v.Vocabulary) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(v.IDF), len(v.Vocabulary))
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("term %q has out-of-range index %d", term, idx)
		}
	}
	return nil
}

// NumFeatures returns the dimensionality of the feature space.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

// Transform converts text into a sparse TF-IDF vector keyed by feature
// index. Unknown terms are dropped.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	if v.StripAccents {
		text = stripAccents(text)
	}
	if v.Lowercase {
		text = strings.ToLower(text)
	}

	// Term counts
	vec := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if idx, ok := v.Vocabulary[token]; ok {
			vec[idx]++
		}
	}

	for idx, count := range vec {
		tf := count
		if v.SublinearTF {
			tf = 1 + math.Log(count)
		}
		vec[idx] = tf * v.IDF[idx]
	}

	v.normalize(vec)
	return vec
}

// normalize applies the configured norm in place
func (v *Vectorizer) normalize(vec map[int]float64) {
	var total float64
	switch v.Norm {
	case "l2":
		for _, val := range vec {
			total += val * val
		}
		total = math.Sqrt(total)
	case "l1":
		for _, val := range vec {
			total += math.Abs(val)
		}
	default:
		return
	}

	if total == 0 {
		return
	}
	for idx, val := range vec {
		vec[idx] = val / total
	}
}

// stripAccents removes combining marks after canonical decomposition, so
// "café" and "cafe" land on the same vocabulary entry.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
