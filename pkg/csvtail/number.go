// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

import (
	"errors"
	"strconv"
)

// parseNumber rewrites ',' to '.' in place and converts the field.
// ok is false when the field is empty or has anything but digits and '.'.
// The value is taken from the longest numeric prefix, 0 if there is none.
func parseNumber(field []byte) (v float64, ok bool) {
	ok = len(field) > 0
	for i, c := range field {
		if c == ',' {
			field[i] = '.'
			c = '.'
		}
		if c != '.' && (c < '0' || c > '9') {
			ok = false
		}
	}
	if ok {
		if v, err := strconv.ParseFloat(string(field), 64); err == nil {
			return v, true
		}
	}
	return parsePrefix(field), ok
}

func parsePrefix(field []byte) float64 {
	i := 0
	for i < len(field) && isSpace(field[i]) {
		i++
	}
	start := i

	if i < len(field) && (field[i] == '+' || field[i] == '-') {
		i++
	}

	var digits int
	for i < len(field) && isDigit(field[i]) {
		i++
		digits++
	}
	if i < len(field) && field[i] == '.' {
		i++
		for i < len(field) && isDigit(field[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(field) && (field[i] == 'e' || field[i] == 'E') {
		j := i + 1
		if j < len(field) && (field[j] == '+' || field[j] == '-') {
			j++
		}
		if j < len(field) && isDigit(field[j]) {
			for j < len(field) && isDigit(field[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(string(field[start:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
