// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

// maxFieldLen is the number of bytes kept per field, the rest is dropped.
const maxFieldLen = 255

const (
	msgFieldTooLarge = "column value too large"
	msgNotNumber     = "non-numeric data encountered"
)

type action uint8

const (
	actionAppend action = iota
	actionEndColumn
	actionEndRow
)

// parser is the row/column state machine. It owns no I/O.
type parser struct {
	rowDelim    byte
	columnDelim byte

	field      []byte
	column     int
	hasHeaders bool
	headers    []string
	line       int
}

func newParser(rowDelim, columnDelim byte) *parser {
	return &parser{
		rowDelim:    rowDelim,
		columnDelim: columnDelim,
		field:       make([]byte, 0, maxFieldLen),
		line:        1,
	}
}

func (p *parser) classify(c byte) action {
	switch c {
	case p.columnDelim:
		return actionEndColumn
	case p.rowDelim:
		return actionEndRow
	default:
		return actionAppend
	}
}

// feed consumes data. Warnings go to warn, values to l.
// A *ColumnMismatchError stops the parser in the middle of data.
func (p *parser) feed(data []byte, l Listener, warn func(msg string)) error {
	for _, c := range data {
		switch p.classify(c) {
		case actionEndColumn:
			if err := p.flush(l, warn); err != nil {
				return err
			}
			p.column++
		case actionEndRow:
			if err := p.flush(l, warn); err != nil {
				return err
			}
			p.column = 0
			p.hasHeaders = true
		case actionAppend:
			if len(p.field) < maxFieldLen {
				p.field = append(p.field, c)
			} else {
				warn(msgFieldTooLarge)
			}
		}

		if c == '\n' {
			p.line++
		}
	}
	return nil
}

func (p *parser) flush(l Listener, warn func(msg string)) error {
	defer func() { p.field = p.field[:0] }()

	if !p.hasHeaders {
		p.headers = append(p.headers, string(p.field))
		return nil
	}

	if p.column >= len(p.headers) {
		return &ColumnMismatchError{Line: p.line, Column: p.column + 1, Headers: len(p.headers)}
	}

	v, ok := parseNumber(p.field)
	if !ok {
		warn(msgNotNumber)
	}
	l.OnData(p.headers[p.column], v)

	return nil
}

// reset forgets the headers and any partial row, announcing every header to l.
// The line counter is left alone, it restarts when the file is reopened.
func (p *parser) reset(l Listener) {
	for _, h := range p.headers {
		l.OnDataReset(h)
	}
	p.field = p.field[:0]
	p.column = 0
	p.hasHeaders = false
	p.headers = nil
}
