// Package matcher matches search terms and field patterns given on the
// command line. Plain terms match as case-insensitive substrings; terms with
// glob or regex metacharacters match as patterns.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Substring matches anywhere in the input.
	Substring
	// Auto detects the pattern type from its metacharacters.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Substring:
		return "substring"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether inputs match a compiled pattern.
type Matcher interface {
	Match(input string) bool
	// MatchAny reports whether any input matches.
	MatchAny(inputs ...string) bool
	Pattern() string
	Type() PatternType
}

type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
	lowered     string
}

// New compiles pattern. Matching is always case-insensitive.
func New(patternType PatternType, pattern string) (Matcher, error) {
	m := &matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		m.lowered = strings.ToLower(pattern)
		if _, err := filepath.Match(m.lowered, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		compiled, err := regexp.Compile("(?i)" + strings.TrimPrefix(pattern, "(?i)"))
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	case Substring:
		m.lowered = strings.ToLower(pattern)
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", m.patternType)
	}
	return m, nil
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string) Matcher {
	m, err := New(patternType, pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) Match(input string) bool {
	switch m.patternType {
	case Glob:
		matched, _ := filepath.Match(m.lowered, strings.ToLower(input))
		return matched
	case Regex:
		return m.compiled.MatchString(input)
	case Substring:
		return strings.Contains(strings.ToLower(input), m.lowered)
	}
	return false
}

func (m *matcher) MatchAny(inputs ...string) bool {
	for _, input := range inputs {
		if m.Match(input) {
			return true
		}
	}
	return false
}

func (m *matcher) Pattern() string {
	return m.pattern
}

func (m *matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType picks Regex for regex-only metacharacters, Glob for
// glob metacharacters and Substring otherwise.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\D", "\\W", "\\S",
		"(?:", "(?i)", "{", "}", "+", "|", "(", ")",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	if IsGlobPattern(pattern) {
		return Glob
	}
	return Substring
}

// IsGlobPattern checks if a string contains glob metacharacters.
func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

// MultiMatcher matches when any of its patterns match.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher compiles every pattern with the same type.
func NewMultiMatcher(patterns []string, patternType PatternType) (*MultiMatcher, error) {
	mm := &MultiMatcher{matchers: make([]Matcher, 0, len(patterns))}
	for _, pattern := range patterns {
		m, err := New(patternType, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to create matcher for pattern %q: %w", pattern, err)
		}
		mm.matchers = append(mm.matchers, m)
	}
	return mm, nil
}

// Match returns true if any pattern matches. An empty MultiMatcher matches
// everything.
func (mm *MultiMatcher) Match(input string) bool {
	if len(mm.matchers) == 0 {
		return true
	}
	for _, m := range mm.matchers {
		if m.Match(input) {
			return true
		}
	}
	return false
}
