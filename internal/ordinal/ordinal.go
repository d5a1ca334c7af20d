// Package ordinal produces the sequential section labels ("01", "02", ...) shown
// next to homepage headings.
package ordinal

import "strconv"

// Counter hands out ordinal labels in document order. A Counter belongs to a
// single render pass and must not be shared between goroutines.
type Counter struct {
	value int
}

// New returns a counter whose first label is "01".
func New() *Counter {
	return &Counter{value: 1}
}

// Next returns the current label and advances the counter.
// Values below 10 are zero-padded to two digits; larger values are not padded.
func (c *Counter) Next() string {
	s := strconv.Itoa(c.value)
	c.value++
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}

