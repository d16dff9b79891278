// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"strings"
)

type (
	// Wildcard is a compiled wildcard pattern. It is immutable.
	Wildcard struct {
		expr   string
		Parts  []Part
		AnyEnd bool
	}
	// Part is a literal run of a pattern.
	// AnyPrefixed parts may start anywhere after the current position, others must start at it.
	Part struct {
		Text        string
		AnyPrefixed bool
	}
)

// Compile splits the pattern on '*' into literal parts.
func Compile(pattern string) *Wildcard {
	w := &Wildcard{expr: pattern}
	if pattern == "" {
		return w
	}

	var part Part
	var sb strings.Builder

	for i := 0; i < len(pattern); i++ {
		if c := pattern[i]; c != '*' {
			sb.WriteByte(c)
			continue
		}
		if sb.Len() > 0 {
			part.Text = sb.String()
			w.Parts = append(w.Parts, part)
			sb.Reset()
		}
		part.AnyPrefixed = true
	}

	if sb.Len() > 0 {
		part.Text = sb.String()
		w.Parts = append(w.Parts, part)
		part.AnyPrefixed = false
	} else {
		w.AnyEnd = part.AnyPrefixed
	}

	return w
}

// String returns the source pattern.
func (w *Wildcard) String() string {
	return w.expr
}

func (w *Wildcard) Match(b []byte) bool {
	return w.MatchString(string(b))
}

func (w *Wildcard) MatchString(s string) bool {
	pos := 0

	for _, part := range w.Parts {
		rest := s[pos:]
		if part.AnyPrefixed {
			idx := strings.Index(rest, part.Text)
			if idx == -1 {
				return false
			}
			pos += idx
		} else if !strings.HasPrefix(rest, part.Text) {
			return false
		}
		pos += len(part.Text)
	}

	return pos == len(s) || w.AnyEnd
}
