// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
	cases := []struct {
		expr     string
		expected *Wildcard
	}{
		{"", &Wildcard{expr: ""}},
		{"*", &Wildcard{expr: "*", AnyEnd: true}},
		{"**", &Wildcard{expr: "**", AnyEnd: true}},
		{"abc", &Wildcard{expr: "abc", Parts: []Part{{Text: "abc"}}}},
		{"a*c", &Wildcard{expr: "a*c", Parts: []Part{{Text: "a"}, {Text: "c", AnyPrefixed: true}}}},
		{"a*c*", &Wildcard{expr: "a*c*", Parts: []Part{{Text: "a"}, {Text: "c", AnyPrefixed: true}}, AnyEnd: true}},
		{"*foo", &Wildcard{expr: "*foo", Parts: []Part{{Text: "foo", AnyPrefixed: true}}}},
		{"a**b", &Wildcard{expr: "a**b", Parts: []Part{{Text: "a"}, {Text: "b", AnyPrefixed: true}}}},
	}

	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.expected, Compile(c.expr))
		})
	}
}

func TestWildcard_MatchString(t *testing.T) {
	cases := []struct {
		expected bool
		expr     string
		line     string
	}{
		{true, "*", ""},
		{true, "*", "anything"},
		{true, "", ""},
		{false, "", "a"},
		{true, "abc", "abc"},
		{false, "abc", "abcd"},
		{false, "abc", "ab"},
		{false, "abc", "xabc"},
		{true, "a*c", "abc"},
		{true, "a*c", "aXXXc"},
		{true, "a*c", "ac"},
		{false, "a*c", "abcd"},
		{true, "a*c*", "abcd"},
		{true, "foo*", "foo123"},
		{true, "*foo*", "123foo123"},
		{true, "*foo", "123foo"},
		{true, "foo*bar", "foo baz bar"},
		{false, "foo*bar", "foo baz"},
		{true, "cpu_*_user", "cpu_0_user"},
		{false, "*aa", "aaa"},
		{false, "a*b*c", "acb"},
		{false, "*x*", "abc"},
	}

	for _, c := range cases {
		t.Run(c.expr+"~"+c.line, func(t *testing.T) {
			w := Compile(c.expr)
			assert.Equal(t, c.expected, w.MatchString(c.line))
			assert.Equal(t, c.expected, w.Match([]byte(c.line)))
		})
	}
}

func TestWildcard_String(t *testing.T) {
	assert.Equal(t, "a*b", Compile("a*b").String())
}

func BenchmarkWildcard_MatchString(b *testing.B) {
	benchmarks := []struct {
		expr string
		test string
	}{
		{"", ""},
		{"abc", "abcd"},
		{"*abc", "abcd"},
		{"abc*", "abcd"},
		{"*abc*", "abcd"},
		{"a*c*e", "abcde"},
	}
	for _, bm := range benchmarks {
		b.Run(bm.expr+"_raw", func(b *testing.B) {
			m := Compile(bm.expr)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.MatchString(bm.test)
			}
		})
		b.Run(bm.expr+"_cache", func(b *testing.B) {
			m := WithCache(Compile(bm.expr))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.MatchString(bm.test)
			}
		})
	}
}
