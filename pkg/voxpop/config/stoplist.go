package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// DefaultStopwords returns the English stopwords dropped from word clouds.
func DefaultStopwords() []string {
	return []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
		"and", "any", "are", "aren't", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "can't", "cannot",
		"could", "couldn't", "did", "didn't", "do", "does", "doesn't", "doing", "don't",
		"down", "during", "each", "else", "ever", "few", "for", "from", "further", "get",
		"had", "hadn't", "has", "hasn't", "have", "haven't", "having", "he", "her",
		"here", "hers", "herself", "him", "himself", "his", "how", "however", "i",
		"i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its", "itself",
		"just", "let's", "like", "me", "more", "most", "my", "myself", "no", "nor",
		"not", "of", "off", "on", "once", "only", "or", "other", "otherwise", "ought",
		"our", "ours", "ourselves", "out", "over", "own", "same", "shall", "she",
		"should", "shouldn't", "so", "some", "such", "than", "that", "that's", "the",
		"their", "theirs", "them", "themselves", "then", "there", "there's", "these",
		"they", "they're", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "wasn't", "we", "we're", "were", "weren't", "what",
		"when", "where", "which", "while", "who", "whom", "why", "with", "won't",
		"would", "wouldn't", "you", "you're", "your", "yours", "yourself", "yourselves",
	}
}
