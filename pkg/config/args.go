// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
)

type HelpMode int

const (
	HelpNone HelpMode = iota
	HelpText
	HelpMarkdown
)

type (
	// KeyValues is a flat key/value table that remembers insertion order.
	KeyValues struct {
		keys   []string
		values map[string]string
	}

	// Source is what a command line or a config file contributes.
	Source struct {
		Values *KeyValues
		Inputs []string
	}

	Args struct {
		Source
		Help HelpMode
	}
)

func NewKeyValues() *KeyValues {
	return &KeyValues{values: make(map[string]string)}
}

// Set stores the value unless the key is already present. The first definition wins.
func (kv *KeyValues) Set(key, value string) bool {
	if _, ok := kv.values[key]; ok {
		return false
	}
	kv.keys = append(kv.keys, key)
	kv.values[key] = value
	return true
}

func (kv *KeyValues) Get(key string) (string, bool) {
	v, ok := kv.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (kv *KeyValues) Keys() []string {
	return kv.keys
}

func (kv *KeyValues) Len() int {
	return len(kv.keys)
}

func (kv *KeyValues) merge(other *KeyValues) {
	for _, k := range other.keys {
		kv.Set(k, other.values[k])
	}
}

// ParseArgs parses command line arguments (without the program name).
// "--key" and "--key=value" become key/value pairs, other arguments are input paths.
// "--config=path" loads a config file into the same table. "--help[=markdown]" anywhere
// stops parsing.
func ParseArgs(args []string) (*Args, error) {
	if mode, ok, err := findHelp(args); ok || err != nil {
		return &Args{Source: Source{Values: NewKeyValues()}, Help: mode}, err
	}

	a := &Args{Source: Source{Values: NewKeyValues()}}

	for _, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("command-line argument syntax error: %w", ErrEmptyArgument)
		}
		if arg[0] != '-' {
			a.Inputs = append(a.Inputs, arg)
			continue
		}

		key, value, err := parseArgument(arg)
		if err != nil {
			return nil, err
		}

		if key != "config" {
			a.Values.Set(key, value)
			continue
		}

		if value == "" {
			return nil, fmt.Errorf("command-line argument syntax error: %s: %w (missing path)", arg, ErrArgumentSyntax)
		}
		path, err := homedir.Expand(value)
		if err != nil {
			return nil, fmt.Errorf("config path '%s': %v", value, err)
		}
		src, err := ParseConfigFile(path)
		if err != nil {
			return nil, err
		}
		a.Values.merge(src.Values)
		a.Inputs = append(a.Inputs, src.Inputs...)
	}

	return a, nil
}

func findHelp(args []string) (HelpMode, bool, error) {
	for _, arg := range args {
		switch {
		case arg == "--help":
			return HelpText, true, nil
		case strings.HasPrefix(arg, "--help="):
			if v := strings.TrimPrefix(arg, "--help="); v != "markdown" {
				return HelpNone, true, fmt.Errorf("command-line argument syntax error: %s: %w (unknown help format)", arg, ErrArgumentSyntax)
			}
			return HelpMarkdown, true, nil
		}
	}
	return HelpNone, false, nil
}

// parseArgument splits "--key=value" into key and value.
func parseArgument(arg string) (string, string, error) {
	if !strings.HasPrefix(arg, "--") {
		return "", "", fmt.Errorf("command-line argument syntax error: %s: %w (expected '--')", arg, ErrArgumentSyntax)
	}

	s := arg[2:]
	if s == "" {
		return "", "", fmt.Errorf("command-line argument syntax error: %s: %w", arg, ErrEmptyArgument)
	}

	switch n := strings.Count(s, "="); {
	case n == 0:
		return s, "", nil
	case n > 1:
		return "", "", fmt.Errorf("command-line argument syntax error: %s: %w", arg, ErrDuplicateEqualSign)
	}

	idx := strings.IndexByte(s, '=')
	if idx == 0 || idx == len(s)-1 {
		return "", "", fmt.Errorf("command-line argument syntax error: %s: %w", arg, ErrEqualSignPlacement)
	}

	return s[:idx], s[idx+1:], nil
}
