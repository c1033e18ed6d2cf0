// cmd/detector/sources.go
package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Source is one named RSS feed
type Source struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Paused bool   `yaml:"paused,omitempty" json:"paused,omitempty"`
}

// DefaultSources returns the built-in feed catalog
func DefaultSources() []Source {
	return []Source{
		{Name: "Reuters", URL: "http://feeds.reuters.com/reuters/topNews"},
		{Name: "BBC", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "CNN", URL: "http://rss.cnn.com/rss/edition.rss"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
		{Name: "NYTimes", URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml"},
		{Name: "Times of India", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms"},
	}
}

// LoadSources reads the feed catalog from a YAML file. A missing file
// falls back to the built-in catalog; a malformed one is an error.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, NewConfigError(ErrConfigValidation, "failed to read sources file", err)
	}

	var doc struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewConfigError(ErrConfigValidation, "failed to parse sources file", err)
	}

	var sources []Source
	for _, src := range doc.Sources {
		if src.Name == "" || src.URL == "" {
			continue
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return DefaultSources(), nil
	}
	return sources, nil
}
