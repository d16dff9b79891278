// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strings"
)

type parseState int

const (
	stateInit parseState = iota
	stateIdentifier
	stateInputValue
	stateScalarValue
	stateBeginKeyword
	stateMultilineValue
)

type commentState int

const (
	commentNone commentState = iota
	commentLine
	commentBlock
)

const sentinel = 0

// ParseConfigFile reads a config file:
//
//	input <path>
//	<key> <value>
//	begin <key>
//	    <value spanning lines, whitespace is dropped>
//	end
//
// Comments use '//' and '/* */'.
func ParseConfigFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %v", err)
	}
	return parseConfigData(path, data)
}

type fileParser struct {
	path string
	data []byte
	line int

	state   parseState
	comment commentState
	word    []byte
	key     string
	value   []byte

	src *Source
}

func parseConfigData(path string, data []byte) (*Source, error) {
	buf := make([]byte, len(data)+1)
	copy(buf, data)
	buf[len(data)] = sentinel

	p := &fileParser{
		path: path,
		data: buf,
		line: 1,
		src:  &Source{Values: NewKeyValues()},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.src, nil
}

func (p *fileParser) run() error {
	for i := 0; i < len(p.data); i++ {
		c := p.data[i]

		skip, err := p.skipComment(i)
		if err != nil {
			return err
		}
		if skip > 0 {
			i += skip - 1
		} else {
			adv, err := p.step(i, c)
			if err != nil {
				return err
			}
			i += adv
		}

		// errors raised by a newline belong to the line it ends
		if c == '\n' {
			p.line++
		}
	}
	return nil
}

// skipComment returns how many bytes at i belong to a comment.
// The newline ending a '//' comment and the sentinel are left to the main state machine.
func (p *fileParser) skipComment(i int) (int, error) {
	c := p.data[i]
	last := i == len(p.data)-1

	switch p.comment {
	case commentLine:
		if c == '\n' || last {
			p.comment = commentNone
			return 0, nil
		}
		return 1, nil
	case commentBlock:
		if last {
			return 0, p.errorf("unterminated comment")
		}
		if c == '*' && p.data[i+1] == '/' {
			p.comment = commentNone
			return 2, nil
		}
		return 1, nil
	}

	if c == '/' && !last {
		switch p.data[i+1] {
		case '/':
			p.comment = commentLine
			return 2, nil
		case '*':
			p.comment = commentBlock
			return 2, nil
		}
	}
	return 0, nil
}

// step feeds one byte to the statement state machine and returns how many extra bytes it consumed.
func (p *fileParser) step(i int, c byte) (int, error) {
	switch p.state {
	case stateInit:
		switch {
		case isIdentChar(c):
			p.word = append(p.word[:0], c)
			p.state = stateIdentifier
		case !isSpace(c):
			return 0, p.errorf("unexpected character: '%c'", c)
		}

	case stateIdentifier:
		switch {
		case isIdentChar(c):
			p.word = append(p.word, c)
		case isSpace(c):
			return 0, p.endIdentifier(c)
		default:
			return 0, p.errorf("unexpected character in identifier: '%c'", c)
		}

	case stateInputValue:
		if c != '\n' && c != sentinel {
			p.value = append(p.value, c)
			break
		}
		v := strings.TrimSpace(string(p.value))
		if v == "" {
			return 0, p.errorf("missing input path")
		}
		p.src.Inputs = append(p.src.Inputs, v)
		p.reset()

	case stateScalarValue:
		if !isSpace(c) {
			p.value = append(p.value, c)
			break
		}
		if len(p.value) == 0 && !isLineEnd(c) {
			break
		}
		p.src.Values.Set(p.key, string(p.value))
		p.reset()

	case stateBeginKeyword:
		switch {
		case isIdentChar(c):
			p.word = append(p.word, c)
		case isSpace(c):
			if len(p.word) > 0 {
				p.key = string(p.word)
				p.value = p.value[:0]
				p.state = stateMultilineValue
			} else if isLineEnd(c) {
				return 0, p.errorf("missing name in begin statement")
			}
		default:
			return 0, p.errorf("unexpected character in begin statement: '%c'", c)
		}

	case stateMultilineValue:
		switch {
		case p.isEndStatement(i):
			p.src.Values.Set(p.key, string(p.value))
			p.reset()
			return len("end") - 1, nil
		case c == sentinel:
			return 0, p.errorf("unterminated 'begin %s' statement (expected 'end')", p.key)
		case !isSpace(c):
			p.value = append(p.value, c)
		}
	}

	return 0, nil
}

func (p *fileParser) endIdentifier(c byte) error {
	word := string(p.word)
	p.word = p.word[:0]

	switch word {
	case "input":
		if isLineEnd(c) {
			return p.errorf("missing input path")
		}
		p.value = p.value[:0]
		p.state = stateInputValue
	case "begin":
		if isLineEnd(c) {
			return p.errorf("missing name in begin statement")
		}
		p.state = stateBeginKeyword
	case "end":
		return p.errorf("'end' without 'begin'")
	default:
		p.key = word
		p.value = p.value[:0]
		if isLineEnd(c) {
			// a key alone on its line is a flag
			p.src.Values.Set(p.key, "")
			p.reset()
			return nil
		}
		p.state = stateScalarValue
	}
	return nil
}

// isEndStatement reports whether an 'end' token terminated by whitespace or EOF starts at i.
func (p *fileParser) isEndStatement(i int) bool {
	if i+3 >= len(p.data) || string(p.data[i:i+3]) != "end" {
		return false
	}
	if i > 0 && !isSpace(p.data[i-1]) {
		return false
	}
	return isSpace(p.data[i+3])
}

func (p *fileParser) reset() {
	p.state = stateInit
	p.key = ""
	p.word = p.word[:0]
	p.value = p.value[:0]
}

func (p *fileParser) errorf(format string, a ...any) error {
	return &SyntaxError{Path: p.path, Line: p.line, Msg: fmt.Sprintf(format, a...)}
}

func isIdentChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', sentinel:
		return true
	}
	return false
}

func isLineEnd(c byte) bool {
	return c == '\n' || c == sentinel
}
