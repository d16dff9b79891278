// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gtaska/graphtail/pkg/matcher"
)

// groupScanner walks the value of the 'groups' key:
//
//	groups:  { '{' body '}' }
//	body:    { 'i(' pattern ')' | 'h(' name ')(' id { ',' id } ')' | '!' option [ '=' value ] }
type groupScanner struct {
	s   string
	pos int
}

func parseGroups(s string) ([]*GroupSpec, error) {
	sc := &groupScanner{s: s}
	var groups []*GroupSpec

	for !sc.eof() {
		c := sc.next()
		if c != '{' {
			return nil, sc.errorf("unexpected '%c' in groups definition (expected '{')", c)
		}
		g, err := sc.parseGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, nil
}

func (sc *groupScanner) parseGroup() (*GroupSpec, error) {
	g := &GroupSpec{}

	for {
		if sc.eof() {
			return nil, sc.errorf("unterminated group definition (expected '}')")
		}

		switch c := sc.next(); c {
		case '}':
			if g.Histogram != nil && len(g.Inputs) > 0 {
				return nil, sc.errorf("histogram group '%s' can not have inputs", g.Histogram.Name)
			}
			return g, nil
		case 'i':
			pattern, err := sc.parseParens("input")
			if err != nil {
				return nil, err
			}
			if pattern == "" {
				return nil, sc.errorf("empty group input")
			}
			g.Inputs = append(g.Inputs, matcher.Compile(pattern))
		case 'h':
			if g.Histogram != nil {
				return nil, sc.errorf("multiple histograms in group")
			}
			h, err := sc.parseHistogram()
			if err != nil {
				return nil, err
			}
			g.Histogram = h
		case '!':
			if err := sc.parseOption(&g.Config); err != nil {
				return nil, err
			}
		default:
			return nil, sc.errorf("unexpected '%c' in group definition", c)
		}
	}
}

func (sc *groupScanner) parseHistogram() (*HistogramSpec, error) {
	name, err := sc.parseParens("histogram name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, sc.errorf("empty histogram name")
	}

	list, err := sc.parseParens("histogram columns")
	if err != nil {
		return nil, err
	}

	h := &HistogramSpec{Name: name}
	seen := make(map[string]bool)

	for _, id := range strings.Split(list, ",") {
		if id == "" {
			return nil, sc.errorf("empty column in histogram '%s'", name)
		}
		if seen[id] {
			return nil, sc.errorf("duplicate column '%s' in histogram '%s'", id, name)
		}
		seen[id] = true
		h.IDs = append(h.IDs, id)
	}

	return h, nil
}

func (sc *groupScanner) parseOption(cfg *GroupConfig) error {
	start := sc.pos
	for !sc.eof() && !strings.ContainsRune("=!}", rune(sc.peek())) {
		sc.pos++
	}
	name := sc.s[start:sc.pos]
	if name == "" {
		return sc.errorf("empty option name")
	}

	var value string
	if !sc.eof() && sc.peek() == '=' {
		sc.pos++
		start = sc.pos
		for !sc.eof() && !strings.ContainsRune("!}", rune(sc.peek())) {
			sc.pos++
		}
		value = sc.s[start:sc.pos]
	}

	if err := cfg.applyOption(name, value); err != nil {
		if errors.Is(err, errUnknownOption) {
			return sc.errorf("invalid group option '%s'", name)
		}
		return fmt.Errorf("group option: %w", err)
	}
	return nil
}

// parseParens reads '(' text ')' and returns text. There is no escaping of ')'.
func (sc *groupScanner) parseParens(what string) (string, error) {
	if sc.eof() {
		return "", sc.errorf("unexpected end of %s definition (expected '(')", what)
	}
	if c := sc.next(); c != '(' {
		return "", sc.errorf("unexpected '%c' in %s definition (expected '(')", c, what)
	}

	end := strings.IndexByte(sc.s[sc.pos:], ')')
	if end == -1 {
		return "", sc.errorf("unterminated %s definition (expected ')')", what)
	}

	v := sc.s[sc.pos : sc.pos+end]
	sc.pos += end + 1

	return v, nil
}

func (sc *groupScanner) eof() bool  { return sc.pos >= len(sc.s) }
func (sc *groupScanner) peek() byte { return sc.s[sc.pos] }

func (sc *groupScanner) next() byte {
	c := sc.s[sc.pos]
	sc.pos++
	return c
}

func (sc *groupScanner) errorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s (offset %d)", ErrGroupSyntax, fmt.Sprintf(format, a...), sc.pos)
}
