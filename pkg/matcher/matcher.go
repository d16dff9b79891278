// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

// Matcher is an interface that wraps MatchString method.
type Matcher interface {
	// Match performs match against given []byte
	Match(b []byte) bool
	// MatchString performs match against given string
	MatchString(string) bool
}

type (
	falseMatcher struct{}
	anyMatcher   []Matcher
)

// FALSE returns a matcher which always returns false
func FALSE() Matcher {
	return falseMatcher{}
}

// Or returns a matcher which returns true if any of its sub-matchers returns true.
// Sub-matchers are tried in order.
func Or(ms ...Matcher) Matcher {
	switch len(ms) {
	case 0:
		return FALSE()
	case 1:
		return ms[0]
	default:
		return anyMatcher(ms)
	}
}

func (falseMatcher) Match(_ []byte) bool       { return false }
func (falseMatcher) MatchString(_ string) bool { return false }

func (m anyMatcher) Match(b []byte) bool {
	return m.MatchString(string(b))
}

func (m anyMatcher) MatchString(s string) bool {
	for _, v := range m {
		if v.MatchString(s) {
			return true
		}
	}
	return false
}
