package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Canonical column names the dashboard reads. Source files are mapped onto
// these through Profile.Columns.
const (
	ColumnSentiment  = "sentiment"
	ColumnUser       = "user"
	ColumnAngerScore = "anger_score"
	ColumnText       = "clean_text"
	ColumnDate       = "date"
	ColumnYear       = "year"
	ColumnTopic      = "topic_cluster"
)

// Profile describes one dashboard deployment: how the input columns are
// named, which dimensions the sidebar filters on, and chart limits.
type Profile struct {
	Name  string `yaml:"name" validate:"required"`
	Title string `yaml:"title"`

	// Columns maps source header names onto canonical names,
	// e.g. {username: user, text: clean_text}.
	Columns map[string]string `yaml:"columns" validate:"dive,keys,required,endkeys,required"`

	// Dimensions are the filterable columns, in sidebar order.
	Dimensions []string `yaml:"dimensions" validate:"required,min=1,unique,dive,required"`

	Sentiment SentimentConfig `yaml:"sentiment"`
	Limits    Limits          `yaml:"limits"`
	Text      TextConfig      `yaml:"text"`
	Recent    RecentConfig    `yaml:"recent"`
	Source    SourceConfig    `yaml:"source"`
}

// SentimentConfig names the negative class and display labels.
type SentimentConfig struct {
	// Negative is the sentiment value whose reviews feed the word cloud.
	Negative string `yaml:"negative" validate:"required"`
	// Labels maps sentiment values to display names, e.g. {"0": "Negative"}.
	Labels map[string]string `yaml:"labels"`
}

// Limits bounds the size of chart tables.
type Limits struct {
	TopKeywords    int `yaml:"top_keywords" validate:"gte=0"`
	TopTopics      int `yaml:"top_topics" validate:"gte=0"`
	WordCloudTerms int `yaml:"word_cloud_terms" validate:"gte=0"`
	RecentRows     int `yaml:"recent_rows" validate:"gte=0"`
}

// TextConfig controls tokenization of review text.
type TextConfig struct {
	// NormalizeWordCloud folds case and drops stopwords for the word cloud.
	NormalizeWordCloud bool `yaml:"normalize_word_cloud"`
	// NormalizeKeywords does the same for the keyword table, which otherwise
	// splits on whitespace only.
	NormalizeKeywords bool     `yaml:"normalize_keywords"`
	StripMarkup       bool     `yaml:"strip_markup"`
	Stopwords         []string `yaml:"stopwords"`
	// StoplistPath points at a YAML stoplist merged into Stopwords.
	StoplistPath string `yaml:"stoplist_path"`
	// KeepWords are taken back out of the merged stoplist, e.g. "not" for
	// a sentiment dashboard built on the default English list.
	KeepWords []string `yaml:"keep_words"`
}

// RecentConfig configures the recent reviews table.
type RecentConfig struct {
	Columns []string `yaml:"columns"`
	SortBy  string   `yaml:"sort_by"`
}

// SourceConfig selects the sheet or table for workbook and database inputs.
type SourceConfig struct {
	Sheet string `yaml:"sheet"`
	Table string `yaml:"table"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the profile for structural errors.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("profile %q: %s: %w", p.Name, strings.Join(msgs, "; "), internalerr.ErrInvalidConfig)
		}
		return fmt.Errorf("profile %q: %v: %w", p.Name, err, internalerr.ErrInvalidConfig)
	}
	return nil
}

// SentimentLabel returns the display label of a sentiment value. A value
// spelled differently from its label key ("0.0" for "0") falls back to
// the numeric match.
func (p *Profile) SentimentLabel(value string) string {
	if l, ok := p.Sentiment.Labels[value]; ok && l != "" {
		return l
	}
	want, ok := dataset.Text(value).Canonical()
	if !ok {
		return value
	}
	for k, l := range p.Sentiment.Labels {
		if key, _ := dataset.Text(k).Canonical(); key == want && l != "" {
			return l
		}
	}
	return value
}

// Stopwords returns the merged stopword list: inline words plus the
// stoplist file, if any.
func (p *Profile) Stopwords() ([]string, error) {
	words := append([]string{}, p.Text.Stopwords...)
	if p.Text.StoplistPath != "" {
		sl, err := LoadStoplist(p.Text.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		words = append(words, sl.Terms...)
	}
	return words, nil
}

// LoadProfile loads a dashboard profile from a YAML file. Fields left out
// of the file keep the values of the preset named by its "extends" key, or
// of the "reviews" preset.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("profile %s: %w", path, internalerr.ErrNotFound)
		}
		return nil, err
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile. See LoadProfile.
func ParseProfile(data []byte) (*Profile, error) {
	var head struct {
		Extends string `yaml:"extends"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse profile: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	base := head.Extends
	if base == "" {
		base = PresetReviews
	}
	p, err := Preset(base)
	if err != nil {
		return nil, err
	}
	// yaml.v3 merges into existing maps key by key. A profile that lists
	// columns replaces the preset mapping; labels still merge.
	if bytesHaveKey(data, "columns") {
		p.Columns = nil
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// bytesHaveKey reports whether the YAML document has a top-level key.
func bytesHaveKey(data []byte, key string) bool {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top[key]
	return ok
}

// Mapping returns the source-to-canonical column mapping in a stable order,
// for logging.
func (p *Profile) Mapping() []string {
	out := make([]string, 0, len(p.Columns))
	for src, dst := range p.Columns {
		out = append(out, src+"->"+dst)
	}
	sort.Strings(out)
	return out
}
