package rules

import (
	"regexp"
)

// Set is an ordered list of case-insensitive regular expressions.
type Set struct {
	name     string
	patterns []*regexp.Regexp
	sources  []string
}

// Compile builds a named Set. Each pattern is compiled case-insensitively
// and matched anywhere in the name (search, not full match). The first
// pattern that fails to compile invalidates the whole set.
func Compile(name string, patterns []string) (*Set, error) {
	s := &Set{
		name:     name,
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
		sources:  make([]string, 0, len(patterns)),
	}
	for i, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, &PatternError{Set: name, Index: i, Pattern: p, Err: err}
		}
		s.patterns = append(s.patterns, re)
		s.sources = append(s.sources, p)
	}
	return s, nil
}

// Match reports whether any pattern in the set matches name.
func (s *Set) Match(name string) bool {
	for _, re := range s.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Name returns the set name given to Compile.
func (s *Set) Name() string { return s.name }

// Len returns the number of patterns.
func (s *Set) Len() int { return len(s.patterns) }

// Patterns returns a copy of the source patterns in order.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}
