package textmine

import "strings"

// Stoplist is a case-insensitive set of words excluded from word clouds.
type Stoplist struct {
	stops map[string]struct{}
}

// NewStoplist creates a stoplist from the given words.
func NewStoplist(words []string) *Stoplist {
	s := &Stoplist{stops: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Contains checks if a word is a stopword.
func (s *Stoplist) Contains(word string) bool {
	_, ok := s.stops[strings.ToLower(word)]
	return ok
}

// Add adds a word to the stoplist.
func (s *Stoplist) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		s.stops[word] = struct{}{}
	}
}

// Remove removes a word from the stoplist.
func (s *Stoplist) Remove(word string) {
	delete(s.stops, strings.ToLower(strings.TrimSpace(word)))
}

// Len returns the number of stopwords.
func (s *Stoplist) Len() int { return len(s.stops) }
