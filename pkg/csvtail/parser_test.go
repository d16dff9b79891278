// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) OnData(id string, value float64) {
	r.events = append(r.events, fmt.Sprintf("%s=%g", id, value))
}

func (r *recorder) OnDataReset(id string) {
	r.events = append(r.events, "reset "+id)
}

type warnings []string

func (w *warnings) add(msg string) { *w = append(*w, msg) }

func TestParser_classify(t *testing.T) {
	p := newParser('\n', ';')

	assert.Equal(t, actionEndColumn, p.classify(';'))
	assert.Equal(t, actionEndRow, p.classify('\n'))
	assert.Equal(t, actionAppend, p.classify(','))
	assert.Equal(t, actionAppend, p.classify('\r'))
}

func TestParser_feed(t *testing.T) {
	tests := map[string]struct {
		rowDelim     byte
		columnDelim  byte
		chunks       []string
		wantEvents   []string
		wantWarnings []string
		wantHeaders  []string
	}{
		"header and rows": {
			rowDelim:    '\n',
			columnDelim: ';',
			chunks:      []string{"a;b\n1;2\n3;4\n"},
			wantEvents:  []string{"a=1", "b=2", "a=3", "b=4"},
			wantHeaders: []string{"a", "b"},
		},
		"fields split across chunks": {
			rowDelim:    '\n',
			columnDelim: ';',
			chunks:      []string{"al", "pha;be", "ta\n1", "0;2", "0\n"},
			wantEvents:  []string{"alpha=10", "beta=20"},
			wantHeaders: []string{"alpha", "beta"},
		},
		"partial row is held back": {
			rowDelim:    '\n',
			columnDelim: ';',
			chunks:      []string{"a;b\n1;2"},
			wantEvents:  []string{"a=1"},
			wantHeaders: []string{"a", "b"},
		},
		"custom delimiters": {
			rowDelim:    '|',
			columnDelim: ',',
			chunks:      []string{"x,y|5,6|"},
			wantEvents:  []string{"x=5", "y=6"},
			wantHeaders: []string{"x", "y"},
		},
		"short row": {
			rowDelim:    '\n',
			columnDelim: ';',
			chunks:      []string{"a;b;c\n1\n"},
			wantEvents:  []string{"a=1"},
			wantHeaders: []string{"a", "b", "c"},
		},
		"non numeric value": {
			rowDelim:     '\n',
			columnDelim:  ';',
			chunks:       []string{"a\nfoo\n\n"},
			wantEvents:   []string{"a=0", "a=0"},
			wantWarnings: []string{msgNotNumber, msgNotNumber},
			wantHeaders:  []string{"a"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p := newParser(test.rowDelim, test.columnDelim)
			var rec recorder
			var warns warnings

			for _, chunk := range test.chunks {
				require.NoError(t, p.feed([]byte(chunk), &rec, warns.add))
			}

			assert.Equal(t, test.wantEvents, rec.events)
			assert.Equal(t, test.wantHeaders, p.headers)
			assert.Equal(t, []string(test.wantWarnings), []string(warns))
		})
	}
}

func TestParser_feed_fieldTooLarge(t *testing.T) {
	p := newParser('\n', ';')
	var rec recorder
	var warns warnings

	long := strings.Repeat("x", maxFieldLen+10)
	require.NoError(t, p.feed([]byte(long+";b\n"), &rec, warns.add))

	require.Len(t, p.headers, 2)
	assert.Len(t, p.headers[0], maxFieldLen)
	assert.Equal(t, "b", p.headers[1])
	assert.Len(t, warns, 10)
	assert.Equal(t, msgFieldTooLarge, warns[0])
}

func TestParser_feed_columnMismatch(t *testing.T) {
	p := newParser('\n', ';')
	var rec recorder
	var warns warnings

	err := p.feed([]byte("a;b\n1;2\n3;4;5\n"), &rec, warns.add)

	var mismatch *ColumnMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Line)
	assert.Equal(t, 3, mismatch.Column)
	assert.Equal(t, 2, mismatch.Headers)
	assert.Equal(t, []string{"a=1", "b=2", "a=3", "b=4"}, rec.events)
}

func TestParser_lineCounter(t *testing.T) {
	p := newParser('|', ';')
	var rec recorder
	var warns warnings

	require.NoError(t, p.feed([]byte("a|\n1|x\n|"), &rec, warns.add))

	assert.Equal(t, 3, p.line)
	assert.Equal(t, []string{"a=1", "a=0"}, rec.events)
}

func TestParser_reset(t *testing.T) {
	p := newParser('\n', ';')
	var rec recorder
	var warns warnings

	require.NoError(t, p.feed([]byte("a;b\n1;"), &rec, warns.add))
	p.reset(&rec)

	assert.Equal(t, []string{"a=1", "reset a", "reset b"}, rec.events)
	assert.False(t, p.hasHeaders)
	assert.Empty(t, p.headers)
	assert.Zero(t, p.column)

	rec.events = nil
	require.NoError(t, p.feed([]byte("c\n7\n"), &rec, warns.add))
	assert.Equal(t, []string{"c=7"}, rec.events)
}
