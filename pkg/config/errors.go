// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyArgument      = errors.New("empty argument")
	ErrDuplicateEqualSign = errors.New("multiple equal signs")
	ErrEqualSignPlacement = errors.New("invalid placement of equal sign")
	ErrArgumentSyntax     = errors.New("argument syntax error")
	ErrUnknownKey         = errors.New("invalid configuration item")
	ErrInvalidValue       = errors.New("invalid value")
	ErrGroupSyntax        = errors.New("group definition syntax error")

	errUnknownOption = errors.New("unknown option")
)

// SyntaxError is a config file grammar violation.
type SyntaxError struct {
	Path string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}
