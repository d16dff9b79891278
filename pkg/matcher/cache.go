// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

type cachedMatcher struct {
	matcher Matcher
	cache   map[string]bool
}

// WithCache adds cache to the matcher.
// The returned matcher is not safe for concurrent use.
func WithCache(m Matcher) Matcher {
	switch m.(type) {
	case falseMatcher, *cachedMatcher:
		return m
	default:
		return &cachedMatcher{matcher: m, cache: make(map[string]bool)}
	}
}

func (m *cachedMatcher) Match(b []byte) bool {
	return m.MatchString(string(b))
}

func (m *cachedMatcher) MatchString(s string) bool {
	if result, ok := m.cache[s]; ok {
		return result
	}
	result := m.matcher.MatchString(s)
	m.cache[s] = result
	return result
}
