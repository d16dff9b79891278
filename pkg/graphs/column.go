// SPDX-License-Identifier: GPL-3.0-or-later

package graphs

// Column is the series of values seen for one id, with running statistics.
type Column struct {
	ID     string
	Values []float64
	Min    float64
	Max    float64
	Sum    float64
}

func newColumn(id string) *Column {
	return &Column{ID: id}
}

func (c *Column) Add(v float64) {
	if len(c.Values) == 0 {
		c.Min, c.Max = v, v
	} else {
		c.Min = min(c.Min, v)
		c.Max = max(c.Max, v)
	}
	c.Sum += v
	c.Values = append(c.Values, v)
}

// Reset drops all values. The column keeps its id.
func (c *Column) Reset() {
	c.Values = nil
	c.Min, c.Max, c.Sum = 0, 0, 0
}

func (c *Column) Len() int { return len(c.Values) }

func (c *Column) Avg() float64 {
	if len(c.Values) == 0 {
		return 0
	}
	return c.Sum / float64(len(c.Values))
}

func (c *Column) Last() (float64, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}
	return c.Values[len(c.Values)-1], true
}
