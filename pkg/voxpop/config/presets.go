package config

import (
	"fmt"
	"sort"

	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Built-in profiles for the two dashboard variants.
const (
	// PresetReviews reads user/clean_text columns and filters on sentiment.
	PresetReviews = "reviews"
	// PresetTopics reads username/text columns, filters on sentiment and
	// year, and charts topic clusters.
	PresetTopics = "topics"
)

var presets = map[string]func() *Profile{
	PresetReviews: func() *Profile {
		return &Profile{
			Name:       PresetReviews,
			Title:      "VoxPop: Brand Sentiment Intelligence Dashboard",
			Columns:    map[string]string{},
			Dimensions: []string{ColumnSentiment},
			Sentiment: SentimentConfig{
				Negative: "0",
				Labels:   map[string]string{"0": "Negative", "1": "Neutral", "2": "Positive"},
			},
			Limits: Limits{TopKeywords: 10, TopTopics: 0, WordCloudTerms: 200, RecentRows: 10},
			Text: TextConfig{
				NormalizeWordCloud: true,
				StripMarkup:        true,
				Stopwords:          DefaultStopwords(),
			},
			Recent: RecentConfig{
				Columns: []string{ColumnDate, ColumnUser, ColumnSentiment, ColumnText},
				SortBy:  ColumnDate,
			},
		}
	},
	PresetTopics: func() *Profile {
		return &Profile{
			Name:  PresetTopics,
			Title: "VoxPop: Topic & Sentiment Explorer",
			Columns: map[string]string{
				"username": ColumnUser,
				"text":     ColumnText,
			},
			Dimensions: []string{ColumnSentiment, ColumnYear},
			Sentiment: SentimentConfig{
				Negative: "0",
				Labels:   map[string]string{"0": "Negative", "1": "Neutral", "2": "Positive"},
			},
			Limits: Limits{TopKeywords: 10, TopTopics: 5, WordCloudTerms: 200, RecentRows: 10},
			Text: TextConfig{
				NormalizeWordCloud: true,
				StripMarkup:        true,
				Stopwords:          DefaultStopwords(),
			},
			Recent: RecentConfig{
				Columns: []string{ColumnDate, ColumnUser, ColumnSentiment, ColumnTopic, ColumnText},
				SortBy:  ColumnDate,
			},
		}
	},
}

// Preset returns a fresh copy of a built-in profile.
func Preset(name string) (*Profile, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, internalerr.ErrNotFound)
	}
	return build(), nil
}

// PresetNames lists the built-in profiles.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
