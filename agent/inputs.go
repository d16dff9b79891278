// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mitchellh/go-homedir"
)

// expandInputs expands '~' and glob patterns. Plain paths are kept even when
// the file does not exist yet, patterns are resolved once.
func (a *Agent) expandInputs(inputs []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, input := range inputs {
		p, err := homedir.Expand(input)
		if err != nil {
			return nil, fmt.Errorf("input '%s': %v", input, err)
		}

		if !isGlob(p) {
			add(p)
			continue
		}

		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("input '%s': bad pattern", input)
		}

		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("input '%s': %v", input, err)
		}
		if len(matches) == 0 {
			a.Warningf("input pattern '%s' matches no files", input)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
