// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strconv"
)

// GroupOptions lists the options accepted both as global defaults and as '!option' inside a group.
var GroupOptions = []string{"x_step", "y_min", "y_max", "histogram_threshold", "is_size"}

func (c *GroupConfig) applyOption(name, value string) error {
	switch name {
	case "x_step":
		v, err := parseUint(name, value)
		if err != nil {
			return err
		}
		c.XStep = &v
	case "y_min":
		v, err := parseFloat(name, value)
		if err != nil {
			return err
		}
		c.YMin = &v
	case "y_max":
		v, err := parseFloat(name, value)
		if err != nil {
			return err
		}
		c.YMax = &v
	case "histogram_threshold":
		v, err := parseFloat(name, value)
		if err != nil {
			return err
		}
		c.HistogramThreshold = &v
	case "is_size":
		v, err := parseFlag(name, value)
		if err != nil {
			return err
		}
		c.IsSize = &v
	default:
		return fmt.Errorf("%w: %s", errUnknownOption, name)
	}
	return nil
}

func parseUint(name, value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: '%s' is not an unsigned integer", ErrInvalidValue, name, value)
	}
	return uint32(v), nil
}

func parseFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: '%s' is not a number", ErrInvalidValue, name, value)
	}
	return v, nil
}

// parseFlag treats a missing value ("--is_size", "!is_size") as true.
func parseFlag(name, value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s: '%s' is not a boolean", ErrInvalidValue, name, value)
	}
	return v, nil
}
