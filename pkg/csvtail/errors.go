// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

import "fmt"

// ColumnMismatchError reports a row wider than the header row.
type ColumnMismatchError struct {
	Path    string
	Line    int
	Column  int
	Headers int
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("%s (line %d): header/column count mismatch: column %d of %d",
		e.Path, e.Line, e.Column, e.Headers)
}
